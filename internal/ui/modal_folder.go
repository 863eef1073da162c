package ui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// FolderDisplay represents a project folder for display in modals
type FolderDisplay struct {
	Name string
	Path string
}

// =============================================================================
// AddFolderState - State for the Add Project Folder modal
// =============================================================================

type AddFolderState struct {
	NameInput textinput.Model
	PathInput textinput.Model
	Focus     int // 0=name, 1=path
}

func (*AddFolderState) modalState() {}

func (s *AddFolderState) Title() string { return "Add Project Folder" }

func (s *AddFolderState) Help() string {
	return "Tab: next field  Enter: add  Esc: cancel"
}

func (s *AddFolderState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	nameLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render("Name:")

	nameInputStyle := lipgloss.NewStyle()
	if s.Focus == 0 {
		nameInputStyle = nameInputStyle.BorderLeft(true).BorderStyle(lipgloss.NormalBorder()).BorderForeground(ColorPrimary).PaddingLeft(1)
	} else {
		nameInputStyle = nameInputStyle.PaddingLeft(2)
	}
	nameView := nameInputStyle.Render(s.NameInput.View())

	pathLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("Path:")

	pathInputStyle := lipgloss.NewStyle()
	if s.Focus == 1 {
		pathInputStyle = pathInputStyle.BorderLeft(true).BorderStyle(lipgloss.NormalBorder()).BorderForeground(ColorPrimary).PaddingLeft(1)
	} else {
		pathInputStyle = pathInputStyle.PaddingLeft(2)
	}
	pathView := pathInputStyle.Render(s.PathInput.View())

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, nameLabel, nameView, pathLabel, pathView, help)
}

func (s *AddFolderState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "tab":
			if s.Focus == 0 {
				s.Focus = 1
				s.NameInput.Blur()
				s.PathInput.Focus()
			} else {
				s.Focus = 0
				s.PathInput.Blur()
				s.NameInput.Focus()
			}
			return s, nil
		case "shift+tab":
			if s.Focus == 1 {
				s.Focus = 0
				s.PathInput.Blur()
				s.NameInput.Focus()
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	if s.Focus == 0 {
		s.NameInput, cmd = s.NameInput.Update(msg)
	} else {
		s.PathInput, cmd = s.PathInput.Update(msg)
	}
	return s, cmd
}

// GetName returns the entered folder name
func (s *AddFolderState) GetName() string {
	return strings.TrimSpace(s.NameInput.Value())
}

// GetPath returns the entered folder path
func (s *AddFolderState) GetPath() string {
	return strings.TrimSpace(s.PathInput.Value())
}

// NewAddFolderState creates a new AddFolderState with proper initialization
func NewAddFolderState() *AddFolderState {
	nameInput := textinput.New()
	nameInput.Placeholder = "e.g. api-server"
	nameInput.CharLimit = 50
	nameInput.SetWidth(ModalInputWidth)
	nameInput.Focus()

	pathInput := textinput.New()
	pathInput.Placeholder = "/path/to/project"
	pathInput.CharLimit = ModalInputCharLimit
	pathInput.SetWidth(ModalInputWidth)

	return &AddFolderState{
		NameInput: nameInput,
		PathInput: pathInput,
		Focus:     0,
	}
}

// =============================================================================
// RemoveFolderState - State for the Remove Project Folder modal
// =============================================================================

type RemoveFolderState struct {
	Folders       []FolderDisplay
	SelectedIndex int
}

func (*RemoveFolderState) modalState() {}

func (s *RemoveFolderState) Title() string { return "Remove Project Folder" }

func (s *RemoveFolderState) Help() string {
	return "↑/↓ to select, Enter to remove, Esc to cancel"
}

func (s *RemoveFolderState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	var content string
	if len(s.Folders) == 0 {
		content = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No project folders configured.")
	} else {
		for i, folder := range s.Folders {
			style := ListItemStyle
			prefix := "  "
			if i == s.SelectedIndex {
				style = ListSelectedStyle
				prefix = "> "
			}
			path := lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Render("  " + truncatePath(folder.Path, 35))
			content += style.Render(prefix+folder.Name) + path + "\n"
		}
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
}

func (s *RemoveFolderState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case "down", "j":
			if s.SelectedIndex < len(s.Folders)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// GetSelectedIndex returns the index of the folder to remove, or -1 when the
// list is empty
func (s *RemoveFolderState) GetSelectedIndex() int {
	if len(s.Folders) == 0 || s.SelectedIndex >= len(s.Folders) {
		return -1
	}
	return s.SelectedIndex
}

// NewRemoveFolderState creates a new RemoveFolderState
func NewRemoveFolderState(folders []FolderDisplay) *RemoveFolderState {
	return &RemoveFolderState{
		Folders:       folders,
		SelectedIndex: 0,
	}
}
