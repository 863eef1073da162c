package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/loom-sh/loom/internal/ui"
)

// View renders the application
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// Split out from View so tests can assert on frame content directly.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Sync chrome with the current selection before rendering
	m.updateFooterContext()
	m.updateHeader()

	// Modal takes over the whole frame. Modal.View centers itself.
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.list.View(),
		m.preview.View(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		panels,
		m.footer.View(),
	)
}

// updateFooterContext updates the footer with current context for conditional bindings
func (m *Model) updateFooterContext() {
	hasSession := m.list.Selected() != nil
	m.footer.SetContext(hasSession, m.focus == FocusList)
}

// updateHeader reflects the current selection in the header
func (m *Model) updateHeader() {
	if sel := m.list.Selected(); sel != nil {
		m.header.SetSessionName(sel.Name)
		m.header.SetThemeName(sel.Theme.Name)
		return
	}
	m.header.SetSessionName("")
	m.header.SetThemeName("")
}

// updateSizes recalculates panel dimensions from the terminal size
func (m *Model) updateSizes() {
	vc := ui.GetViewContext()
	vc.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(vc.TerminalWidth)
	m.footer.SetWidth(vc.TerminalWidth)
	m.list.SetSize(vc.ListWidth, vc.ContentHeight)
	m.preview.SetSize(vc.PreviewWidth, vc.ContentHeight)
}
