package ui

import (
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/loom-sh/loom/internal/keys"
)

// Preview represents the right panel showing a capture of the selected
// session's active pane.
type Preview struct {
	viewport    viewport.Model
	width       int
	height      int
	focused     bool
	sessionName string
	hasSession  bool
	loading     bool
	content     string

	// Text selection state, in viewport-relative coordinates
	selectionStartCol   int
	selectionStartLine  int
	selectionEndCol     int
	selectionEndLine    int
	selectionActive     bool
	selectionFlashFrame int // 0 while flashing after a copy, -1 otherwise

	// Multi-click detection
	lastClickTime time.Time
	lastClickX    int
	lastClickY    int
	clickCount    int
}

// NewPreview creates a new preview panel
func NewPreview() *Preview {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &Preview{
		viewport:            vp,
		selectionStartCol:   -1,
		selectionStartLine:  -1,
		selectionEndCol:     -1,
		selectionEndLine:    -1,
		selectionFlashFrame: -1,
	}
}

// SetSize sets the preview panel dimensions
func (p *Preview) SetSize(width, height int) {
	p.width = width
	p.height = height

	ctx := GetViewContext()
	innerWidth := ctx.InnerWidth(width)
	innerHeight := ctx.InnerHeight(height) - TitleHeight
	if innerHeight < 1 {
		innerHeight = 1
	}

	p.viewport.SetWidth(innerWidth)
	p.viewport.SetHeight(innerHeight)
}

// SetFocused sets the focus state
func (p *Preview) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns the focus state
func (p *Preview) IsFocused() bool {
	return p.focused
}

// SetLoading marks the preview as waiting for a capture
func (p *Preview) SetLoading(loading bool) {
	p.loading = loading
}

// SetCapture replaces the preview content with a fresh pane capture
func (p *Preview) SetCapture(sessionName, content string) {
	p.sessionName = sessionName
	p.hasSession = true
	p.loading = false
	p.content = content
	p.SelectionClear()
	p.viewport.SetContent(content)
	p.viewport.GotoBottom()
}

// Clear empties the preview when no session is selected
func (p *Preview) Clear() {
	p.sessionName = ""
	p.hasSession = false
	p.loading = false
	p.content = ""
	p.SelectionClear()
	p.viewport.SetContent("")
}

// SessionName returns the session currently shown
func (p *Preview) SessionName() string {
	return p.sessionName
}

// Update handles scroll keys, mouse selection, and flash animation
func (p *Preview) Update(msg tea.Msg) (*Preview, tea.Cmd) {
	switch msg := msg.(type) {
	case SelectionFlashTickMsg:
		// Flash finished. Clear the selection so the highlight disappears.
		if p.selectionFlashFrame == 0 {
			p.selectionFlashFrame = -1
			p.SelectionClear()
		}
		return p, nil

	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			// Subtract the border to get viewport-relative coordinates
			return p, p.handleMouseClick(msg.X-1, msg.Y-1-TitleHeight)
		}
		return p, nil

	case tea.MouseMotionMsg:
		if msg.Button == tea.MouseLeft {
			p.EndSelection(msg.X-1, msg.Y-1-TitleHeight)
		}
		return p, nil

	case tea.MouseReleaseMsg:
		if p.selectionActive {
			p.SelectionStop()
			return p, p.CopySelectedText()
		}
		return p, nil

	case tea.KeyPressMsg:
		if !p.focused {
			// Page keys scroll the preview even when the list is focused
			switch msg.String() {
			case keys.PgUp, keys.PgDown, keys.CtrlU, keys.CtrlD:
				var cmd tea.Cmd
				p.viewport, cmd = p.viewport.Update(msg)
				return p, cmd
			}
			return p, nil
		}

		if msg.String() == keys.Escape && p.HasTextSelection() {
			p.SelectionClear()
			return p, nil
		}

		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return p, cmd
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the preview panel
func (p *Preview) View() string {
	style := PanelStyle
	if p.focused {
		style = PanelFocusedStyle
	}

	var title string
	var content string
	switch {
	case !p.hasSession:
		title = PanelTitleStyle.Render("Preview")
		content = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("Select a session to preview its pane.")
	case p.loading:
		title = PanelTitleStyle.Render("Preview: " + p.sessionName)
		content = StatusLoadingStyle.Render("Capturing pane...")
	default:
		title = PanelTitleStyle.Render("Preview: " + p.sessionName)
		content = p.selectionView(p.viewport.View())
	}

	inner := lipgloss.JoinVertical(lipgloss.Left, title, content)

	// In lipgloss v2, Width/Height include borders, so pass full panel size
	return style.Width(p.width).Height(p.height).Render(inner)
}
