package ui

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/loom-sh/loom/internal/theme"
)

// =============================================================================
// NewSessionState - State for the New Session modal
// =============================================================================

// standaloneOption is the first entry in the folder list. It creates the
// session in the home directory instead of a project folder.
const standaloneOption = "(standalone)"

type NewSessionState struct {
	NameInput     textinput.Model
	FolderOptions []string
	FolderIndex   int
	Focus         int // 0=name input, 1=folder list
}

func (*NewSessionState) modalState() {}

func (s *NewSessionState) Title() string { return "New Session" }

func (s *NewSessionState) Help() string {
	return "Tab: start folder  Enter: create  Esc: cancel"
}

func (s *NewSessionState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	// Session name input section
	nameLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render("Session name:")

	nameInputStyle := lipgloss.NewStyle()
	if s.Focus == 0 {
		nameInputStyle = nameInputStyle.BorderLeft(true).BorderStyle(lipgloss.NormalBorder()).BorderForeground(ColorPrimary).PaddingLeft(1)
	} else {
		nameInputStyle = nameInputStyle.PaddingLeft(2)
	}
	nameView := nameInputStyle.Render(s.NameInput.View())

	// Start folder selection section
	folderLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("Start in:")

	var folderList string
	for i, folder := range s.FolderOptions {
		style := ListItemStyle
		prefix := "  "
		if s.Focus == 1 && i == s.FolderIndex {
			style = ListSelectedStyle
			prefix = "> "
		} else if i == s.FolderIndex {
			prefix = "● "
		}
		folderList += style.Render(prefix+truncateString(folder, 40)) + "\n"
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, nameLabel, nameView, folderLabel, folderList, help)
}

func (s *NewSessionState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			if s.Focus == 1 && s.FolderIndex > 0 {
				s.FolderIndex--
			}
		case "down", "j":
			if s.Focus == 1 && s.FolderIndex < len(s.FolderOptions)-1 {
				s.FolderIndex++
			}
		case "tab":
			if s.Focus == 0 {
				s.Focus = 1
				s.NameInput.Blur()
			} else {
				s.Focus = 0
				s.NameInput.Focus()
			}
			return s, nil
		case "shift+tab":
			if s.Focus == 1 {
				s.Focus = 0
				s.NameInput.Focus()
			}
			return s, nil
		}
	}

	// Handle name input updates when focused
	if s.Focus == 0 {
		var cmd tea.Cmd
		s.NameInput, cmd = s.NameInput.Update(msg)
		return s, cmd
	}

	return s, nil
}

// GetName returns the entered session name
func (s *NewSessionState) GetName() string {
	return strings.TrimSpace(s.NameInput.Value())
}

// GetSelectedFolder returns the selected folder name, or "" for standalone
func (s *NewSessionState) GetSelectedFolder() string {
	if s.FolderIndex <= 0 || s.FolderIndex >= len(s.FolderOptions) {
		return ""
	}
	return s.FolderOptions[s.FolderIndex]
}

// NewNewSessionState creates a new NewSessionState with proper initialization
func NewNewSessionState(folders []string) *NewSessionState {
	ti := textinput.New()
	ti.Placeholder = "e.g. api-server"
	ti.CharLimit = ModalInputCharLimit
	ti.SetWidth(ModalInputWidth)
	ti.Focus()

	return &NewSessionState{
		NameInput:     ti,
		FolderOptions: append([]string{standaloneOption}, folders...),
		FolderIndex:   0,
		Focus:         0,
	}
}

// =============================================================================
// RenameSessionState - State for the Rename Session modal
// =============================================================================

type RenameSessionState struct {
	OldName string
	Input   textinput.Model
}

func (*RenameSessionState) modalState() {}

func (s *RenameSessionState) Title() string { return "Rename Session" }

func (s *RenameSessionState) Help() string {
	return "Enter to rename, Esc to cancel"
}

func (s *RenameSessionState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	currentLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render("Current name:")

	currentName := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render(s.OldName)

	newLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render("New name:")

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, currentLabel, currentName, newLabel, s.Input.View(), help)
}

func (s *RenameSessionState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// GetNewName returns the entered replacement name
func (s *RenameSessionState) GetNewName() string {
	return strings.TrimSpace(s.Input.Value())
}

// NewRenameSessionState creates a new RenameSessionState prefilled with the
// current name
func NewRenameSessionState(oldName string) *RenameSessionState {
	ti := textinput.New()
	ti.CharLimit = ModalInputCharLimit
	ti.SetWidth(ModalInputWidth)
	ti.SetValue(oldName)
	ti.Focus()

	return &RenameSessionState{
		OldName: oldName,
		Input:   ti,
	}
}

// =============================================================================
// AnnotateState - State for the session note modal
// =============================================================================

type AnnotateState struct {
	SessionName string
	Textarea    textarea.Model
}

func (*AnnotateState) modalState() {}

func (s *AnnotateState) Title() string { return "Edit Note" }

func (s *AnnotateState) Help() string {
	return "Enter: save  Esc: cancel"
}

func (s *AnnotateState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	sessionLabel := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render(s.SessionName)

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, sessionLabel, s.Textarea.View(), help)
}

func (s *AnnotateState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Textarea, cmd = s.Textarea.Update(msg)
	return s, cmd
}

// GetNote returns the note text. Newlines survive here; the session layer
// flattens them before writing to tmux.
func (s *AnnotateState) GetNote() string {
	return strings.TrimSpace(s.Textarea.Value())
}

// NewAnnotateState creates a new AnnotateState prefilled with the current note
func NewAnnotateState(sessionName, note string) *AnnotateState {
	ta := textarea.New()
	ta.Placeholder = "What's happening in this session?"
	ta.CharLimit = ModalInputCharLimit
	ta.SetHeight(NoteInputHeight)
	ta.SetWidth(ModalInputWidth)
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetValue(note)
	ta.Focus()

	return &AnnotateState{
		SessionName: sessionName,
		Textarea:    ta,
	}
}

// =============================================================================
// ConfirmKillState - State for the Kill Session confirmation modal
// =============================================================================

type ConfirmKillState struct {
	SessionName   string
	Options       []string
	SelectedIndex int
}

func (*ConfirmKillState) modalState() {}

func (s *ConfirmKillState) Title() string { return "Kill Session?" }

func (s *ConfirmKillState) Help() string {
	return "↑/↓ to select, Enter to confirm, Esc to cancel"
}

func (s *ConfirmKillState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	// Show session name prominently
	sessionLabel := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render(s.SessionName)

	message := lipgloss.NewStyle().
		Foreground(ColorText).
		MarginBottom(1).
		Render("This will terminate the session and everything running in it.")

	var optionList string
	for i, opt := range s.Options {
		style := ListItemStyle
		prefix := "  "
		if i == s.SelectedIndex {
			style = ListSelectedStyle
			prefix = "> "
		}
		optionList += style.Render(prefix+opt) + "\n"
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, sessionLabel, message, optionList, help)
}

func (s *ConfirmKillState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case "down", "j":
			if s.SelectedIndex < len(s.Options)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// ShouldKill returns true if the user selected to kill the session
func (s *ConfirmKillState) ShouldKill() bool {
	return s.SelectedIndex == 1 // "Kill session" is index 1
}

// NewConfirmKillState creates a new ConfirmKillState
func NewConfirmKillState(sessionName string) *ConfirmKillState {
	return &ConfirmKillState{
		SessionName:   sessionName,
		Options:       []string{"Cancel", "Kill session"},
		SelectedIndex: 0,
	}
}

// =============================================================================
// ConfirmReconnectState - State for the reconnect-on-startup modal
// =============================================================================

type ConfirmReconnectState struct {
	SessionName   string
	Options       []string
	SelectedIndex int
}

func (*ConfirmReconnectState) modalState() {}

func (s *ConfirmReconnectState) Title() string { return "Welcome back" }

func (s *ConfirmReconnectState) Help() string {
	return "↑/↓ to select, Enter to confirm, Esc to cancel"
}

func (s *ConfirmReconnectState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	message := lipgloss.NewStyle().
		Foreground(ColorText).
		Render("You were last attached to:")

	sessionLabel := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render(s.SessionName)

	var optionList string
	for i, opt := range s.Options {
		style := ListItemStyle
		prefix := "  "
		if i == s.SelectedIndex {
			style = ListSelectedStyle
			prefix = "> "
		}
		optionList += style.Render(prefix+opt) + "\n"
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, message, sessionLabel, optionList, help)
}

func (s *ConfirmReconnectState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case "down", "j":
			if s.SelectedIndex < len(s.Options)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// ShouldReconnect returns true if the user selected to reattach
func (s *ConfirmReconnectState) ShouldReconnect() bool {
	return s.SelectedIndex == 0 // "Reconnect" is index 0
}

// NewConfirmReconnectState creates a new ConfirmReconnectState
func NewConfirmReconnectState(sessionName string) *ConfirmReconnectState {
	return &ConfirmReconnectState{
		SessionName:   sessionName,
		Options:       []string{"Reconnect", "Stay here"},
		SelectedIndex: 0,
	}
}

// =============================================================================
// ThemePickerState - State for the theme picker modal
// =============================================================================

type ThemePickerState struct {
	SessionName   string
	Palette       theme.Palette
	SelectedIndex int
	Current       string
}

func (*ThemePickerState) modalState() {}

func (s *ThemePickerState) Title() string { return "Select Theme" }

func (s *ThemePickerState) Help() string {
	return "↑/↓ to select, Enter to apply, Esc to cancel"
}

func (s *ThemePickerState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	sessionLabel := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render(s.SessionName)

	var content string
	for i, t := range s.Palette {
		style := ListItemStyle
		prefix := "  "
		suffix := ""

		if i == s.SelectedIndex {
			style = ListSelectedStyle
			prefix = "> "
		}

		if t.Name == s.Current {
			suffix = " (current)"
		}

		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Render("●")
		content += style.Render(prefix) + swatch + " " + style.Render(t.Name+suffix) + "\n"
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, sessionLabel, content, help)
}

func (s *ThemePickerState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case "down", "j":
			if s.SelectedIndex < len(s.Palette)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// GetSelectedTheme returns the selected theme
func (s *ThemePickerState) GetSelectedTheme() theme.Theme {
	if len(s.Palette) == 0 || s.SelectedIndex >= len(s.Palette) {
		return theme.Theme{}
	}
	return s.Palette[s.SelectedIndex]
}

// NewThemePickerState creates a new ThemePickerState with the cursor on the
// session's current theme
func NewThemePickerState(sessionName string, palette theme.Palette, current string) *ThemePickerState {
	selectedIndex := 0
	for i, t := range palette {
		if t.Name == current {
			selectedIndex = i
			break
		}
	}

	return &ThemePickerState{
		SessionName:   sessionName,
		Palette:       palette,
		SelectedIndex: selectedIndex,
		Current:       current,
	}
}
