// Package app wires the TUI together: the session list, the preview
// panel, the footer, and the modal stack, plus the keyboard routing
// between them. It owns no tmux logic itself; everything goes through
// the session manager.
package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/loom-sh/loom/internal/config"
	"github.com/loom-sh/loom/internal/logger"
	"github.com/loom-sh/loom/internal/session"
	"github.com/loom-sh/loom/internal/theme"
	"github.com/loom-sh/loom/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusList Focus = iota
	FocusPreview
)

// StartupModalMsg is sent on app start to trigger the welcome or
// reconnect modal
type StartupModalMsg struct{}

// Model is the main Bubble Tea model
type Model struct {
	store   *config.Store
	manager *session.Manager
	palette theme.Palette

	header  *ui.Header
	footer  *ui.Footer
	list    *ui.List
	preview *ui.Preview
	modal   *ui.Modal

	width  int
	height int
	focus  Focus

	// Name of the session to attach after the TUI exits. Attaching
	// has to happen outside the Bubble Tea program because tmux takes
	// over the terminal.
	pendingAttach string
}

// New creates a new app model
func New(store *config.Store, manager *session.Manager, palette theme.Palette) *Model {
	m := &Model{
		store:   store,
		manager: manager,
		palette: palette,
		header:  ui.NewHeader(),
		footer:  ui.NewFooter(),
		list:    ui.NewList(),
		preview: ui.NewPreview(),
		modal:   ui.NewModal(),
		focus:   FocusList,
	}

	m.list.SetFocused(true)

	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadSessions(),
		func() tea.Msg { return StartupModalMsg{} },
	)
}

// PendingAttach returns the session the user chose to attach to, or ""
// if the TUI exited without an attach request.
func (m *Model) PendingAttach() string {
	return m.pendingAttach
}

// toggleFocus switches focus between the session list and the preview.
// The preview can only take focus when a session is selected.
func (m *Model) toggleFocus() {
	if m.focus == FocusList {
		if m.list.Selected() == nil {
			return
		}
		m.focus = FocusPreview
		m.list.SetFocused(false)
		m.preview.SetFocused(true)
		return
	}
	m.focus = FocusList
	m.list.SetFocused(true)
	m.preview.SetFocused(false)
}

// handleStartupModals shows the first-run welcome, then offers to
// reconnect to the most recent session.
func (m *Model) handleStartupModals() (tea.Model, tea.Cmd) {
	if m.store.IsFirstRun() {
		logger.Log("App: First run, showing welcome modal")
		m.modal.Show(ui.NewWelcomeState())
		return m, nil
	}

	cfg := m.store.Load()
	if cfg.Preferences.ReconnectToRecent {
		if name, ok := m.manager.LastSession(context.Background()); ok {
			logger.Log("App: Offering reconnect to %s", name)
			m.modal.Show(ui.NewConfirmReconnectState(name))
		}
	}
	return m, nil
}
