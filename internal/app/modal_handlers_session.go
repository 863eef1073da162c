package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/loom-sh/loom/internal/keys"
	"github.com/loom-sh/loom/internal/session"
	"github.com/loom-sh/loom/internal/ui"
)

// handleNewSessionModal handles key events for the new-session modal
func (m *Model) handleNewSessionModal(key string, msg tea.KeyPressMsg, state *ui.NewSessionState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		name := state.GetName()
		if err := session.ValidateSessionName(name); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}

		dir := ""
		if folderName := state.GetSelectedFolder(); folderName != "" {
			folder := m.store.Load().FolderByName(folderName)
			if folder == nil {
				m.modal.SetError("Folder not found: " + folderName)
				return m, nil
			}
			dir = folder.Path
		}

		layout := m.store.Load().Layout()
		if err := m.manager.Create(context.Background(), name, dir, layout); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}

		m.modal.Hide()
		return m, tea.Batch(m.loadSessions(), m.ShowFlashSuccess("Created "+name))
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleRenameSessionModal handles key events for the rename modal
func (m *Model) handleRenameSessionModal(key string, msg tea.KeyPressMsg, state *ui.RenameSessionState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		newName := state.GetNewName()
		if newName == state.OldName {
			m.modal.Hide()
			return m, nil
		}

		if err := m.manager.Rename(context.Background(), state.OldName, newName); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}

		m.modal.Hide()
		return m, tea.Batch(m.loadSessions(), m.ShowFlashSuccess("Renamed to "+newName))
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleAnnotateModal handles key events for the session note editor
func (m *Model) handleAnnotateModal(key string, msg tea.KeyPressMsg, state *ui.AnnotateState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		note := state.GetNote()
		if err := m.manager.SetNote(context.Background(), state.SessionName, note); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}

		m.modal.Hide()
		return m, m.ShowFlashSuccess("Note saved")
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleConfirmKillModal handles key events for the kill confirmation
func (m *Model) handleConfirmKillModal(key string, msg tea.KeyPressMsg, state *ui.ConfirmKillState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		if !state.ShouldKill() {
			m.modal.Hide()
			return m, nil
		}

		if err := m.manager.Destroy(context.Background(), state.SessionName); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}

		m.modal.Hide()
		return m, tea.Batch(m.loadSessions(), m.ShowFlashSuccess("Killed "+state.SessionName))
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleThemePickerModal handles key events for the theme picker
func (m *Model) handleThemePickerModal(key string, msg tea.KeyPressMsg, state *ui.ThemePickerState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		th := state.GetSelectedTheme()
		if th.Name == "" {
			m.modal.Hide()
			return m, nil
		}

		if err := m.manager.SetTheme(context.Background(), state.SessionName, th); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}

		m.modal.Hide()
		return m, tea.Batch(m.loadSessions(), m.ShowFlashSuccess("Theme set to "+th.Name))
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}
