package ui

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// PreferencesState - State for the Preferences modal
// =============================================================================

type PreferencesState struct {
	// Bound form values
	layout    string
	autoMenu  bool
	reconnect bool

	form        *huh.Form
	initialized bool
}

func (*PreferencesState) modalState() {}

func (s *PreferencesState) Title() string { return "Preferences" }

func (s *PreferencesState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *PreferencesState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *PreferencesState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, &s.initialized, msg)
	return s, cmd
}

// GetLayout returns the selected default layout ("single" or "split")
func (s *PreferencesState) GetLayout() string {
	return s.layout
}

// GetAutoMenu returns whether the script menu opens automatically
func (s *PreferencesState) GetAutoMenu() bool {
	return s.autoMenu
}

// GetReconnect returns whether startup offers to reattach the last session
func (s *PreferencesState) GetReconnect() bool {
	return s.reconnect
}

// NewPreferencesState creates a new PreferencesState with the current
// preference values bound to the form.
func NewPreferencesState(layout string, autoMenu, reconnect bool) *PreferencesState {
	s := &PreferencesState{
		layout:    layout,
		autoMenu:  autoMenu,
		reconnect: reconnect,
	}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Default layout").
			Description("Pane arrangement for new sessions").
			Options(
				huh.NewOption("Single pane", "single"),
				huh.NewOption("Editor + shell split", "split"),
			).
			Value(&s.layout),
		huh.NewConfirm().
			Title("Auto script menu").
			Description("Offer package.json scripts when attaching a project session").
			Affirmative("Yes").
			Negative("No").
			Value(&s.autoMenu),
		huh.NewConfirm().
			Title("Reconnect to recent").
			Description("Offer to reattach your last session on startup").
			Affirmative("Yes").
			Negative("No").
			Value(&s.reconnect),
	)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 10)

	initHuhForm(s.form)
	return s
}
