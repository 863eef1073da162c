package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/loom-sh/loom/internal/keys"
	"github.com/loom-sh/loom/internal/logger"
	"github.com/loom-sh/loom/internal/ui"
)

// handleModalKey routes modal key events to the appropriate handler based
// on modal state type.
//
// Modal handlers are organized by domain:
//   - modal_handlers_session.go: Session lifecycle (new/rename/annotate/kill/theme)
//   - modal_handlers_config.go: Configuration (project folders, preferences)
//   - This file: startup modals (welcome, reconnect)
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *ui.WelcomeState:
		return m.handleWelcomeModal(key, s)
	case *ui.ConfirmReconnectState:
		return m.handleConfirmReconnectModal(key, msg, s)

	// Session modals (modal_handlers_session.go)
	case *ui.NewSessionState:
		return m.handleNewSessionModal(key, msg, s)
	case *ui.RenameSessionState:
		return m.handleRenameSessionModal(key, msg, s)
	case *ui.AnnotateState:
		return m.handleAnnotateModal(key, msg, s)
	case *ui.ConfirmKillState:
		return m.handleConfirmKillModal(key, msg, s)
	case *ui.ThemePickerState:
		return m.handleThemePickerModal(key, msg, s)

	// Config modals (modal_handlers_config.go)
	case *ui.AddFolderState:
		return m.handleAddFolderModal(key, msg, s)
	case *ui.RemoveFolderState:
		return m.handleRemoveFolderModal(key, msg, s)
	case *ui.PreferencesState:
		return m.handlePreferencesModal(key, msg, s)
	}

	// Default: update modal input (for text-based modals)
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleWelcomeModal handles key events for the first-run welcome modal
func (m *Model) handleWelcomeModal(key string, _ *ui.WelcomeState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Enter, keys.Escape:
		if err := m.store.MarkFirstRunComplete(); err != nil {
			logger.Warn("App: Could not save first-run flag: %v", err)
		}
		m.modal.Hide()
		// The reconnect prompt may still apply
		return m.handleStartupModals()
	}
	return m, nil
}

// handleConfirmReconnectModal handles the reconnect-to-recent prompt
func (m *Model) handleConfirmReconnectModal(key string, msg tea.KeyPressMsg, state *ui.ConfirmReconnectState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		m.modal.Hide()
		if state.ShouldReconnect() {
			logger.Log("App: Reconnecting to %s", state.SessionName)
			m.pendingAttach = state.SessionName
			return m, tea.Quit
		}
		return m, nil
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}
