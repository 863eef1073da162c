package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// Gradient endpoints for the header background. These mirror ColorPrimary
// and ColorBg but are kept as hex strings for interpolation.
const (
	headerGradientStart = "#7C3AED"
	headerGradientEnd   = "#1F2937"
)

// Header represents the top header bar
type Header struct {
	width       int
	sessionName string
	themeName   string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetSessionName sets the selected session name to display
func (h *Header) SetSessionName(name string) {
	h.sessionName = name
}

// SetThemeName sets the selected session's theme name to display
func (h *Header) SetThemeName(name string) {
	h.themeName = name
}

// View renders the header
func (h *Header) View() string {
	// Build the content string (without styling)
	titleText := " loom"
	var rightText string
	if h.sessionName != "" {
		rightText = h.sessionName
		if h.themeName != "" {
			rightText += " (" + h.themeName + ")"
		}
		rightText += " "
	}

	// Pad in display cells so wide Unicode session names still line up
	// with the right edge
	if avail := h.width - runewidth.StringWidth(titleText); avail > 1 && runewidth.StringWidth(rightText) > avail {
		rightText = runewidth.Truncate(rightText, avail, "… ")
	}
	paddingLen := h.width - runewidth.StringWidth(titleText) - runewidth.StringWidth(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText

	return h.renderGradient(fullContent, h.themeName)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a gradient background.
// themeName is used to identify and mute the theme portion of the text.
func (h *Header) renderGradient(content string, themeName string) string {
	if len(content) == 0 {
		return ""
	}

	startR, startG, startB := parseHexColor(headerGradientStart)
	endR, endG, endB := parseHexColor(headerGradientEnd)

	// Find where the theme portion starts (if present)
	themeStart := -1
	if themeName != "" {
		themeMarker := "(" + themeName + ")"
		themeStart = strings.Index(content, themeMarker)
	}

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		// Calculate interpolation factor (0.0 to 1.0)
		t := float64(i) / float64(width)

		// Interpolate colors
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		inTheme := themeStart >= 0 && i >= themeStart

		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < 5) // Bold for the "loom" title

		if inTheme {
			style = style.Foreground(ColorTextMuted)
		} else {
			style = style.Foreground(ColorText)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
