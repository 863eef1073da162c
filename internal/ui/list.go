package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/loom-sh/loom/internal/keys"
	"github.com/loom-sh/loom/internal/session"
)

// List represents the left panel with the session list
type List struct {
	sessions    []session.Session
	selectedIdx int
	width       int
	height      int
	focused     bool
	scrollOff   int
}

// NewList creates a new session list
func NewList() *List {
	return &List{focused: true}
}

// SetSize sets the list dimensions
func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the list width
func (l *List) Width() int {
	return l.width
}

// SetFocused sets the focus state
func (l *List) SetFocused(focused bool) {
	l.focused = focused
}

// IsFocused returns the focus state
func (l *List) IsFocused() bool {
	return l.focused
}

// SetSessions replaces the session list, clamping the selection so it stays
// on a valid row after sessions come and go.
func (l *List) SetSessions(sessions []session.Session) {
	// Keep the cursor on the same session when it survives a reload
	var selectedName string
	if cur := l.Selected(); cur != nil {
		selectedName = cur.Name
	}

	l.sessions = sessions

	if selectedName != "" {
		for i, sess := range sessions {
			if sess.Name == selectedName {
				l.selectedIdx = i
				return
			}
		}
	}
	if l.selectedIdx >= len(sessions) {
		l.selectedIdx = len(sessions) - 1
	}
	if l.selectedIdx < 0 {
		l.selectedIdx = 0
	}
}

// Sessions returns the current session list
func (l *List) Sessions() []session.Session {
	return l.sessions
}

// Selected returns the currently selected session, or nil when the list
// is empty.
func (l *List) Selected() *session.Session {
	if len(l.sessions) == 0 || l.selectedIdx >= len(l.sessions) {
		return nil
	}
	return &l.sessions[l.selectedIdx]
}

// Select moves the cursor to the session with the given name, if present.
func (l *List) Select(name string) {
	for i, sess := range l.sessions {
		if sess.Name == name {
			l.selectedIdx = i
			l.ensureVisible()
			return
		}
	}
}

// Update handles navigation key presses
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !l.focused {
		return l, nil
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		if l.selectedIdx > 0 {
			l.selectedIdx--
			l.ensureVisible()
		}
	case keys.Down, "j":
		if l.selectedIdx < len(l.sessions)-1 {
			l.selectedIdx++
			l.ensureVisible()
		}
	case keys.Home:
		l.selectedIdx = 0
		l.ensureVisible()
	case keys.End:
		if len(l.sessions) > 0 {
			l.selectedIdx = len(l.sessions) - 1
			l.ensureVisible()
		}
	}

	return l, nil
}

// ensureVisible adjusts the scroll offset so the selection stays on screen
func (l *List) ensureVisible() {
	visible := l.visibleRows()
	if visible <= 0 {
		return
	}
	if l.selectedIdx < l.scrollOff {
		l.scrollOff = l.selectedIdx
	}
	if l.selectedIdx >= l.scrollOff+visible {
		l.scrollOff = l.selectedIdx - visible + 1
	}
}

// visibleRows returns how many session rows fit inside the panel
func (l *List) visibleRows() int {
	ctx := GetViewContext()
	// Title line sits above the rows
	return ctx.InnerHeight(l.height) - TitleHeight
}

// renderRow renders a single session row: theme swatch, name, and markers
func (l *List) renderRow(sess session.Session, selected bool) string {
	swatch := lipgloss.NewStyle().
		Foreground(lipgloss.Color(sess.Theme.Accent)).
		Render("●")

	name := sess.Name

	meta := fmt.Sprintf(" %dw", sess.Windows)
	attached := ""
	if sess.Attached {
		attached = " " + ListAttachedStyle.Render("◆")
	}

	innerWidth := GetViewContext().InnerWidth(l.width)

	style := ListItemStyle
	prefix := "  "
	if selected && l.focused {
		style = ListSelectedStyle
		prefix = "> "
	}

	// Truncate by display width so a long name cannot push the window
	// count and attach marker off the row. Reserve covers the prefix,
	// the swatch, the meta text, and the marker.
	reserved := 4 + runewidth.StringWidth(meta) + 2
	if maxName := innerWidth - reserved; maxName >= 4 && runewidth.StringWidth(name) > maxName {
		name = runewidth.Truncate(name, maxName, "…")
	}

	row := prefix + swatch + " " + name + ListMetaStyle.Render(meta) + attached
	return style.MaxWidth(innerWidth).Render(row)
}

// View renders the session list
func (l *List) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if l.focused {
		style = PanelFocusedStyle
	}

	title := PanelTitleStyle.Render(fmt.Sprintf("Sessions (%d)", len(l.sessions)))

	var content string
	if len(l.sessions) == 0 {
		content = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No sessions. Press 'n' to create one.")
	} else {
		visible := l.visibleRows()
		if visible < 1 {
			visible = 1
		}
		if l.scrollOff > len(l.sessions)-1 {
			l.scrollOff = len(l.sessions) - 1
		}

		end := l.scrollOff + visible
		if end > len(l.sessions) {
			end = len(l.sessions)
		}

		var rows string
		for i := l.scrollOff; i < end; i++ {
			rows += l.renderRow(l.sessions[i], i == l.selectedIdx)
			if i < end-1 {
				rows += "\n"
			}
		}
		content = rows
	}

	inner := lipgloss.JoinVertical(lipgloss.Left, title, content)

	// Clamp to the inner height so the border never gets pushed out
	lines := strings.Split(inner, "\n")
	if max := ctx.InnerHeight(l.height); len(lines) > max && max > 0 {
		inner = strings.Join(lines[:max], "\n")
	}

	// In lipgloss v2, Width/Height include borders, so pass full panel size
	return style.Width(l.width).Height(l.height).Render(inner)
}
