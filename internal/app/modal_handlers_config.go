package app

import (
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/loom-sh/loom/internal/config"
	"github.com/loom-sh/loom/internal/keys"
	"github.com/loom-sh/loom/internal/ui"
)

// expandHome resolves a leading ~/ in user-entered paths.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// handleAddFolderModal handles key events for the add-folder modal
func (m *Model) handleAddFolderModal(key string, msg tea.KeyPressMsg, state *ui.AddFolderState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		name := state.GetName()
		if name == "" {
			m.modal.SetError("Folder name cannot be empty")
			return m, nil
		}
		path := expandHome(state.GetPath())
		if path == "" {
			m.modal.SetError("Folder path cannot be empty")
			return m, nil
		}
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			m.modal.SetError("Not a directory: " + path)
			return m, nil
		}

		folder := config.ProjectFolder{Name: name, Path: path}
		if err := m.store.AddProjectFolder(folder); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}

		m.modal.Hide()
		return m, m.ShowFlashSuccess("Added folder " + name)
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleRemoveFolderModal handles key events for the remove-folder modal
func (m *Model) handleRemoveFolderModal(key string, msg tea.KeyPressMsg, state *ui.RemoveFolderState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		idx := state.GetSelectedIndex()
		if idx < 0 {
			m.modal.Hide()
			return m, nil
		}

		name := state.Folders[idx].Name
		if err := m.store.RemoveProjectFolder(idx); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}

		m.modal.Hide()
		return m, m.ShowFlashSuccess("Removed folder " + name)
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handlePreferencesModal handles key events for the preferences form.
// Navigation and toggling inside the form belong to huh; only escape
// and final submission are intercepted here.
func (m *Model) handlePreferencesModal(key string, msg tea.KeyPressMsg, state *ui.PreferencesState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		prefs := config.Preferences{
			DefaultLayout:     state.GetLayout(),
			AutoMenu:          state.GetAutoMenu(),
			ReconnectToRecent: state.GetReconnect(),
		}
		if err := m.store.SetPreferences(prefs); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}

		m.modal.Hide()
		return m, m.ShowFlashSuccess("Preferences saved")
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}
