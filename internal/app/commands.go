package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/loom-sh/loom/internal/session"
	"github.com/loom-sh/loom/internal/ui"
)

// sessionsLoadedMsg carries a fresh session listing
type sessionsLoadedMsg struct {
	sessions []session.Session
	err      error
}

// previewLoadedMsg carries a pane capture for the preview panel
type previewLoadedMsg struct {
	name    string
	content string
	err     error
}

// loadSessions lists sessions off the Update loop. tmux answers fast,
// but a hung server should not freeze the UI.
func (m *Model) loadSessions() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.manager.List(context.Background())
		return sessionsLoadedMsg{sessions: sessions, err: err}
	}
}

// loadPreview captures the named session's active pane
func (m *Model) loadPreview(name string) tea.Cmd {
	return func() tea.Msg {
		content, err := m.manager.Preview(context.Background(), name, ui.PreviewHistoryLines)
		return previewLoadedMsg{name: name, content: content, err: err}
	}
}

// refreshPreview marks the preview as loading and kicks off a capture
// for the currently selected session. Clears the preview when nothing
// is selected.
func (m *Model) refreshPreview() tea.Cmd {
	sel := m.list.Selected()
	if sel == nil {
		m.preview.Clear()
		return nil
	}
	m.preview.SetLoading(true)
	return m.loadPreview(sel.Name)
}
