package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/loom-sh/loom/internal/keys"
	"github.com/loom-sh/loom/internal/logger"
	"github.com/loom-sh/loom/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function
// that routes all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}
		// Key not handled, let it fall through to the focused panel

	case StartupModalMsg:
		return m.handleStartupModals()

	case sessionsLoadedMsg:
		return m.handleSessionsLoaded(msg)

	case previewLoadedMsg:
		return m.handlePreviewLoaded(msg)
	}

	// Update modal
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Handle tick messages - these go to their owners regardless of focus
	if cmd := m.handleTickMessages(msg); cmd != nil {
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Route scroll/mouse events to the preview panel
	if cmd := m.routeScrollAndMouseEvents(msg); cmd != nil {
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Update focused panel for other messages
	if m.focus == FocusList {
		before := m.selectedName()
		list, cmd := m.list.Update(msg)
		m.list = list
		cmds = append(cmds, cmd)
		// Selection moved, load the new session's capture
		if m.selectedName() != before {
			cmds = append(cmds, m.refreshPreview())
		}
	} else {
		preview, cmd := m.preview.Update(msg)
		m.preview = preview
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles all keyboard input.
// Returns (model, cmd) if the key was handled, or (nil, nil) if it
// should fall through to the focused panel.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	logger.Log("App: KeyPressMsg received: key=%q, focus=%v, modalVisible=%v", msg.String(), m.focus, m.modal.IsVisible())

	// Handle modal first if visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	key := msg.String()

	// ctrl+c always quits
	if key == keys.CtrlC {
		return m, tea.Quit
	}

	switch key {
	case "q":
		return m, tea.Quit
	case keys.Tab:
		m.toggleFocus()
		return m, nil
	}

	if m.focus == FocusPreview {
		if key == keys.CtrlY {
			return m.copyCapture()
		}
		// Scrolling keys belong to the preview's viewport
		return nil, nil
	}

	return m.handleListKeys(key)
}

// handleListKeys handles keys while the session list has focus
func (m *Model) handleListKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n":
		m.modal.Show(ui.NewNewSessionState(m.folderNames()))
		return m, nil
	case "f":
		m.modal.Show(ui.NewAddFolderState())
		return m, nil
	case "F":
		m.modal.Show(ui.NewRemoveFolderState(m.folderDisplays()))
		return m, nil
	case "p":
		cfg := m.store.Load()
		m.modal.Show(ui.NewPreferencesState(cfg.Layout(), cfg.Preferences.AutoMenu, cfg.Preferences.ReconnectToRecent))
		return m, nil
	}

	// The rest operate on the selected session
	sel := m.list.Selected()
	if sel == nil {
		return nil, nil
	}

	switch key {
	case keys.Enter:
		logger.Log("App: Attach requested for %s", sel.Name)
		m.pendingAttach = sel.Name
		return m, tea.Quit
	case "r":
		m.modal.Show(ui.NewRenameSessionState(sel.Name))
		return m, nil
	case "a":
		note, err := m.manager.Note(context.Background(), sel.Name)
		if err != nil {
			// Open the editor empty rather than blocking the annotate flow
			logger.Warn("App: Could not read note for %s: %v", sel.Name, err)
			note = ""
		}
		m.modal.Show(ui.NewAnnotateState(sel.Name, note))
		return m, nil
	case "t":
		m.modal.Show(ui.NewThemePickerState(sel.Name, m.palette, sel.Theme.Name))
		return m, nil
	case "x":
		m.modal.Show(ui.NewConfirmKillState(sel.Name))
		return m, nil
	}

	return nil, nil
}

// copyCapture copies the full preview capture and confirms via flash
func (m *Model) copyCapture() (tea.Model, tea.Cmd) {
	cmd := m.preview.CopyAll()
	if cmd == nil {
		return m, nil
	}
	return m, tea.Batch(cmd, m.ShowFlashSuccess("Copied capture to clipboard"))
}

// handleSessionsLoaded refreshes the list from a completed listing
func (m *Model) handleSessionsLoaded(msg sessionsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		logger.Error("App: Session list failed: %v", msg.err)
		return m, m.ShowFlashError("Could not list sessions: " + msg.err.Error())
	}

	m.list.SetSessions(msg.sessions)

	// Focus can't stay on the preview when the selection went away
	if m.list.Selected() == nil && m.focus == FocusPreview {
		m.toggleFocus()
	}

	return m, m.refreshPreview()
}

// handlePreviewLoaded installs a completed pane capture
func (m *Model) handlePreviewLoaded(msg previewLoadedMsg) (tea.Model, tea.Cmd) {
	// Discard captures for sessions no longer selected
	sel := m.list.Selected()
	if sel == nil || sel.Name != msg.name {
		return m, nil
	}

	if msg.err != nil {
		logger.Warn("App: Preview capture failed for %s: %v", msg.name, msg.err)
		m.preview.SetCapture(msg.name, "Could not capture pane: "+msg.err.Error())
		return m, nil
	}

	m.preview.SetCapture(msg.name, msg.content)
	return m, nil
}

// handleTickMessages handles tick and clipboard messages for animations
// and timers
func (m *Model) handleTickMessages(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case ui.SelectionFlashTickMsg:
		preview, cmd := m.preview.Update(msg)
		m.preview = preview
		return cmd
	case ui.FlashTickMsg:
		// Check if flash message has expired
		if m.footer.ClearIfExpired() {
			// Flash cleared, no need to continue ticking
			return nil
		}
		// Flash still active, continue ticking
		if m.footer.HasFlash() {
			return ui.FlashTick()
		}
		return nil
	case ui.ClipboardErrorMsg:
		// Show error message when clipboard write fails
		m.footer.SetFlash("Failed to copy to clipboard", ui.FlashError)
		return ui.FlashTick()
	}
	return nil
}

// routeScrollAndMouseEvents routes scroll keys and mouse events to the
// preview panel. Returns a command if the event was handled, nil
// otherwise.
func (m *Model) routeScrollAndMouseEvents(msg tea.Msg) tea.Cmd {
	// Route scroll keys to the preview even when the list is focused
	if m.focus == FocusList {
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			switch keyMsg.String() {
			case keys.PgUp, keys.PgDown, keys.CtrlU, keys.CtrlD:
				preview, cmd := m.preview.Update(keyMsg)
				m.preview = preview
				return cmd
			}
		}
	}

	listWidth := m.list.Width()

	switch mouseMsg := msg.(type) {
	case tea.MouseWheelMsg:
		if mouseMsg.X > listWidth {
			preview, cmd := m.preview.Update(mouseMsg)
			m.preview = preview
			return cmd
		}

	case tea.MouseClickMsg:
		if mouseMsg.X > listWidth {
			preview, cmd := m.preview.Update(m.adjustMouseClickMsg(mouseMsg, listWidth))
			m.preview = preview
			return cmd
		}

	case tea.MouseMotionMsg:
		if mouseMsg.X > listWidth {
			preview, cmd := m.preview.Update(m.adjustMouseMotionMsg(mouseMsg, listWidth))
			m.preview = preview
			return cmd
		}

	case tea.MouseReleaseMsg:
		if mouseMsg.X > listWidth {
			preview, cmd := m.preview.Update(m.adjustMouseReleaseMsg(mouseMsg, listWidth))
			m.preview = preview
			return cmd
		}
	}

	return nil
}

// adjustMouseClickMsg adjusts mouse click coordinates for the preview panel.
// X is adjusted by subtracting the list width, Y by subtracting the header height.
func (m *Model) adjustMouseClickMsg(msg tea.MouseClickMsg, listWidth int) tea.MouseClickMsg {
	return tea.MouseClickMsg{
		X:      msg.X - listWidth,
		Y:      msg.Y - ui.HeaderHeight,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}

// adjustMouseMotionMsg adjusts mouse motion coordinates for the preview panel.
func (m *Model) adjustMouseMotionMsg(msg tea.MouseMotionMsg, listWidth int) tea.MouseMotionMsg {
	return tea.MouseMotionMsg{
		X:      msg.X - listWidth,
		Y:      msg.Y - ui.HeaderHeight,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}

// adjustMouseReleaseMsg adjusts mouse release coordinates for the preview panel.
func (m *Model) adjustMouseReleaseMsg(msg tea.MouseReleaseMsg, listWidth int) tea.MouseReleaseMsg {
	return tea.MouseReleaseMsg{
		X:      msg.X - listWidth,
		Y:      msg.Y - ui.HeaderHeight,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}

// selectedName returns the selected session's name, or ""
func (m *Model) selectedName() string {
	if sel := m.list.Selected(); sel != nil {
		return sel.Name
	}
	return ""
}

// folderNames returns the configured project folder names
func (m *Model) folderNames() []string {
	cfg := m.store.Load()
	names := make([]string, 0, len(cfg.ProjectFolders))
	for _, f := range cfg.ProjectFolders {
		names = append(names, f.Name)
	}
	return names
}

// folderDisplays returns the configured folders for the remove modal
func (m *Model) folderDisplays() []ui.FolderDisplay {
	cfg := m.store.Load()
	folders := make([]ui.FolderDisplay, 0, len(cfg.ProjectFolders))
	for _, f := range cfg.ProjectFolders {
		folders = append(folders, ui.FolderDisplay{Name: f.Name, Path: f.Path})
	}
	return folders
}
