// Package theme assigns display themes to sessions by name.
//
// Assignment is deterministic: the same session name always maps to the
// same palette entry, so a session keeps its colors across detach,
// reconnect, and relaunch without any persisted name→theme mapping.
// Distinct names may share a theme; collisions are expected with a small
// fixed palette.
package theme

// Theme is a named set of display colors applied to a session's status
// line. Values are hex color strings consumed by tmux and by lipgloss.
type Theme struct {
	Name       string
	Background string
	Foreground string
	Accent     string
}

// Palette is an ordered, immutable list of themes. The zero index is the
// theme assigned to the empty session name.
type Palette []Theme

// builtin is the fixed palette. Order matters: the hash indexes into it,
// so reordering entries reassigns every session's colors.
var builtin = Palette{
	{Name: "nord", Background: "#2E3440", Foreground: "#D8DEE9", Accent: "#88C0D0"},
	{Name: "dracula", Background: "#282A36", Foreground: "#F8F8F2", Accent: "#BD93F9"},
	{Name: "gruvbox", Background: "#282828", Foreground: "#EBDBB2", Accent: "#FABD2F"},
	{Name: "tokyo-night", Background: "#1A1B26", Foreground: "#C0CAF5", Accent: "#7AA2F7"},
	{Name: "catppuccin", Background: "#1E1E2E", Foreground: "#CDD6F4", Accent: "#CBA6F7"},
	{Name: "solarized", Background: "#002B36", Foreground: "#839496", Accent: "#B58900"},
	{Name: "rose-pine", Background: "#191724", Foreground: "#E0DEF4", Accent: "#EBBCBA"},
	{Name: "everforest", Background: "#2D353B", Foreground: "#D3C6AA", Accent: "#A7C080"},
	{Name: "kanagawa", Background: "#1F1F28", Foreground: "#DCD7BA", Accent: "#7E9CD8"},
}

// DefaultPalette returns the built-in palette. Callers must not mutate
// the returned slice; it is shared process-wide state.
func DefaultPalette() Palette {
	return builtin
}

// hash computes the 31-multiplier polynomial rolling hash of name with
// 32-bit signed wraparound on every step. The wraparound is part of the
// contract: assignments must reproduce the reference tool's exactly.
func hash(name string) int32 {
	var h int32
	for _, r := range name {
		h = h*31 + int32(r)
	}
	return h
}

// IndexFor returns the palette index assigned to name. The absolute
// value is taken in 64-bit so a hash of MinInt32 cannot wrap again.
func (p Palette) IndexFor(name string) int {
	h := int64(hash(name))
	if h < 0 {
		h = -h
	}
	return int(h % int64(len(p)))
}

// For returns the theme assigned to name. Total over all strings: the
// empty name hashes to zero and receives the first palette entry.
func (p Palette) For(name string) Theme {
	return p[p.IndexFor(name)]
}

// ByName returns the theme with the given name, or false if no palette
// entry carries it.
func (p Palette) ByName(name string) (Theme, bool) {
	for _, t := range p {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}
