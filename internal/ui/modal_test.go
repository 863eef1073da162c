package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/loom-sh/loom/internal/theme"
)

func TestNewModal(t *testing.T) {
	m := NewModal()

	if m.IsVisible() {
		t.Error("Expected new modal to be hidden")
	}
	if m.State != nil {
		t.Error("Expected nil state on a new modal")
	}
}

func TestModal_ShowHide(t *testing.T) {
	m := NewModal()

	m.Show(NewWelcomeState())
	if !m.IsVisible() {
		t.Error("Expected modal to be visible after Show")
	}

	m.Hide()
	if m.IsVisible() {
		t.Error("Expected modal to be hidden after Hide")
	}
	if m.State != nil {
		t.Error("Expected state cleared after Hide")
	}
}

func TestModal_Error(t *testing.T) {
	m := NewModal()
	m.Show(NewWelcomeState())

	m.SetError("something broke")
	if m.GetError() != "something broke" {
		t.Errorf("Expected error message, got %q", m.GetError())
	}

	// Showing a new modal clears the previous error
	m.Show(NewWelcomeState())
	if m.GetError() != "" {
		t.Errorf("Expected error cleared by Show, got %q", m.GetError())
	}
}

func TestModal_Update_DelegatesToState(t *testing.T) {
	m := NewModal()
	m.Show(NewConfirmKillState("api-server"))

	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	state, ok := m.State.(*ConfirmKillState)
	if !ok {
		t.Fatal("Expected ConfirmKillState")
	}
	if state.SelectedIndex != 1 {
		t.Errorf("Expected selection to move to 1, got %d", state.SelectedIndex)
	}
}

func TestModal_Update_HiddenIsNoop(t *testing.T) {
	m := NewModal()

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if cmd != nil {
		t.Error("Expected no command from a hidden modal")
	}
}

func TestModal_View_Hidden(t *testing.T) {
	m := NewModal()

	if m.View(80, 24) != "" {
		t.Error("Expected empty view when hidden")
	}
}

func TestModal_View_ShowsError(t *testing.T) {
	m := NewModal()
	m.Show(NewConfirmKillState("api-server"))
	m.SetError("name already taken")

	view := stripANSI(m.View(120, 40))
	if !strings.Contains(view, "name already taken") {
		t.Error("Expected error message in the view")
	}
}

func TestWelcomeState_Render(t *testing.T) {
	s := NewWelcomeState()

	view := stripANSI(s.Render())
	if !strings.Contains(view, "Welcome to Loom!") {
		t.Error("Expected welcome title")
	}
	if !strings.Contains(view, "Create a new session") {
		t.Error("Expected getting started shortcuts")
	}
	if !strings.Contains(view, "github.com/loom-sh/loom/issues") {
		t.Error("Expected issues link")
	}
}

func TestNewSessionState_FolderOptions(t *testing.T) {
	s := NewNewSessionState([]string{"api", "web"})

	if len(s.FolderOptions) != 3 {
		t.Fatalf("Expected 3 options, got %d", len(s.FolderOptions))
	}
	if s.FolderOptions[0] != standaloneOption {
		t.Errorf("Expected standalone first, got %q", s.FolderOptions[0])
	}
}

func TestNewSessionState_GetSelectedFolder(t *testing.T) {
	s := NewNewSessionState([]string{"api", "web"})

	// Standalone maps to no folder
	if got := s.GetSelectedFolder(); got != "" {
		t.Errorf("Expected empty folder for standalone, got %q", got)
	}

	s.FolderIndex = 2
	if got := s.GetSelectedFolder(); got != "web" {
		t.Errorf("Expected web, got %q", got)
	}
}

func TestNewSessionState_GetName_Trimmed(t *testing.T) {
	s := NewNewSessionState(nil)
	s.NameInput.SetValue("  api-server  ")

	if got := s.GetName(); got != "api-server" {
		t.Errorf("Expected trimmed name, got %q", got)
	}
}

func TestNewSessionState_TabSwitchesFocus(t *testing.T) {
	s := NewNewSessionState([]string{"api"})

	if s.Focus != 0 {
		t.Fatalf("Expected focus to start on the name input, got %d", s.Focus)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.Focus != 1 {
		t.Errorf("Expected focus 1 after tab, got %d", s.Focus)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.Focus != 0 {
		t.Errorf("Expected focus 0 after shift+tab, got %d", s.Focus)
	}
}

func TestNewSessionState_FolderNavigation(t *testing.T) {
	s := NewNewSessionState([]string{"api", "web"})

	// Folder keys only apply once the list has focus
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.FolderIndex != 0 {
		t.Errorf("Expected folder index unchanged while name focused, got %d", s.FolderIndex)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.FolderIndex != 1 {
		t.Errorf("Expected folder index 1, got %d", s.FolderIndex)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.FolderIndex != 2 {
		t.Errorf("Expected folder index clamped at 2, got %d", s.FolderIndex)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.FolderIndex != 1 {
		t.Errorf("Expected folder index 1 after up, got %d", s.FolderIndex)
	}
}

func TestRenameSessionState_Prefilled(t *testing.T) {
	s := NewRenameSessionState("old-name")

	if s.OldName != "old-name" {
		t.Errorf("Expected old name stored, got %q", s.OldName)
	}
	if got := s.GetNewName(); got != "old-name" {
		t.Errorf("Expected input prefilled with old name, got %q", got)
	}
}

func TestRenameSessionState_GetNewName_Trimmed(t *testing.T) {
	s := NewRenameSessionState("old-name")
	s.Input.SetValue("  fresh  ")

	if got := s.GetNewName(); got != "fresh" {
		t.Errorf("Expected trimmed name, got %q", got)
	}
}

func TestAnnotateState_Prefilled(t *testing.T) {
	s := NewAnnotateState("api-server", "fixing the login bug")

	if s.SessionName != "api-server" {
		t.Errorf("Expected session name stored, got %q", s.SessionName)
	}
	if got := s.GetNote(); got != "fixing the login bug" {
		t.Errorf("Expected prefilled note, got %q", got)
	}
}

func TestAnnotateState_GetNote_Trimmed(t *testing.T) {
	s := NewAnnotateState("api-server", "")
	s.Textarea.SetValue("  note text  ")

	if got := s.GetNote(); got != "note text" {
		t.Errorf("Expected trimmed note, got %q", got)
	}
}

func TestConfirmKillState_DefaultsToCancel(t *testing.T) {
	s := NewConfirmKillState("api-server")

	if s.ShouldKill() {
		t.Error("Expected default selection to be Cancel")
	}
}

func TestConfirmKillState_Navigation(t *testing.T) {
	s := NewConfirmKillState("api-server")

	s.Update(tea.KeyPressMsg{Code: -1, Text: "j"})
	if !s.ShouldKill() {
		t.Error("Expected kill after moving down")
	}

	// Already at the bottom
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.SelectedIndex != 1 {
		t.Errorf("Expected selection to stay at 1, got %d", s.SelectedIndex)
	}

	s.Update(tea.KeyPressMsg{Code: -1, Text: "k"})
	if s.ShouldKill() {
		t.Error("Expected cancel after moving back up")
	}
}

func TestConfirmKillState_Render(t *testing.T) {
	s := NewConfirmKillState("api-server")

	view := stripANSI(s.Render())
	if !strings.Contains(view, "api-server") {
		t.Error("Expected session name in the view")
	}
	if !strings.Contains(view, "Kill session") {
		t.Error("Expected kill option in the view")
	}
}

func TestConfirmReconnectState_DefaultsToReconnect(t *testing.T) {
	s := NewConfirmReconnectState("api-server")

	if !s.ShouldReconnect() {
		t.Error("Expected default selection to be Reconnect")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.ShouldReconnect() {
		t.Error("Expected stay-here after moving down")
	}
}

func TestThemePickerState_StartsOnCurrentTheme(t *testing.T) {
	palette := theme.DefaultPalette()
	s := NewThemePickerState("api-server", palette, "gruvbox")

	if got := s.GetSelectedTheme().Name; got != "gruvbox" {
		t.Errorf("Expected cursor on gruvbox, got %q", got)
	}
}

func TestThemePickerState_UnknownCurrentDefaultsToFirst(t *testing.T) {
	palette := theme.DefaultPalette()
	s := NewThemePickerState("api-server", palette, "no-such-theme")

	if s.SelectedIndex != 0 {
		t.Errorf("Expected index 0 for unknown theme, got %d", s.SelectedIndex)
	}
}

func TestThemePickerState_Navigation(t *testing.T) {
	palette := theme.DefaultPalette()
	s := NewThemePickerState("api-server", palette, "")

	s.Update(tea.KeyPressMsg{Code: -1, Text: "j"})
	if s.SelectedIndex != 1 {
		t.Errorf("Expected index 1, got %d", s.SelectedIndex)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.SelectedIndex != 0 {
		t.Errorf("Expected index clamped at 0, got %d", s.SelectedIndex)
	}
}

func TestThemePickerState_GetSelectedTheme_EmptyPalette(t *testing.T) {
	s := &ThemePickerState{}

	if got := s.GetSelectedTheme(); got.Name != "" {
		t.Errorf("Expected zero theme for empty palette, got %q", got.Name)
	}
}

func TestThemePickerState_Render_MarksCurrent(t *testing.T) {
	palette := theme.DefaultPalette()
	s := NewThemePickerState("api-server", palette, "nord")

	view := stripANSI(s.Render())
	if !strings.Contains(view, "nord (current)") {
		t.Error("Expected current theme marker")
	}
}

func TestAddFolderState_TabCyclesFocus(t *testing.T) {
	s := NewAddFolderState()

	if s.Focus != 0 {
		t.Fatalf("Expected focus to start on the name input, got %d", s.Focus)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.Focus != 1 {
		t.Errorf("Expected focus 1 after tab, got %d", s.Focus)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.Focus != 0 {
		t.Errorf("Expected focus to wrap back to 0, got %d", s.Focus)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.Focus != 1 {
		t.Errorf("Expected focus 1 after shift+tab, got %d", s.Focus)
	}
}

func TestAddFolderState_Getters_Trimmed(t *testing.T) {
	s := NewAddFolderState()
	s.NameInput.SetValue("  api  ")
	s.PathInput.SetValue("  /home/dev/api  ")

	if got := s.GetName(); got != "api" {
		t.Errorf("Expected trimmed name, got %q", got)
	}
	if got := s.GetPath(); got != "/home/dev/api" {
		t.Errorf("Expected trimmed path, got %q", got)
	}
}

func TestRemoveFolderState_Empty(t *testing.T) {
	s := NewRemoveFolderState(nil)

	if got := s.GetSelectedIndex(); got != -1 {
		t.Errorf("Expected -1 for empty folder list, got %d", got)
	}

	view := stripANSI(s.Render())
	if !strings.Contains(view, "No project folders") {
		t.Error("Expected empty state message")
	}
}

func TestRemoveFolderState_Navigation(t *testing.T) {
	s := NewRemoveFolderState([]FolderDisplay{
		{Name: "api", Path: "/home/dev/api"},
		{Name: "web", Path: "/home/dev/web"},
	})

	if got := s.GetSelectedIndex(); got != 0 {
		t.Errorf("Expected index 0, got %d", got)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if got := s.GetSelectedIndex(); got != 1 {
		t.Errorf("Expected index 1, got %d", got)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if got := s.GetSelectedIndex(); got != 1 {
		t.Errorf("Expected index clamped at 1, got %d", got)
	}
}

func TestRemoveFolderState_Render(t *testing.T) {
	s := NewRemoveFolderState([]FolderDisplay{
		{Name: "api", Path: "/home/dev/api"},
	})

	view := stripANSI(s.Render())
	if !strings.Contains(view, "api") {
		t.Error("Expected folder name in the view")
	}
	if !strings.Contains(view, "/home/dev/api") {
		t.Error("Expected folder path in the view")
	}
}

func TestPreferencesState_Getters(t *testing.T) {
	s := NewPreferencesState("split", true, false)

	if got := s.GetLayout(); got != "split" {
		t.Errorf("Expected layout split, got %q", got)
	}
	if !s.GetAutoMenu() {
		t.Error("Expected auto menu enabled")
	}
	if s.GetReconnect() {
		t.Error("Expected reconnect disabled")
	}
}

func TestPreferencesState_Render(t *testing.T) {
	s := NewPreferencesState("single", false, true)

	view := stripANSI(s.Render())
	if !strings.Contains(view, "Preferences") {
		t.Error("Expected modal title")
	}
	if !strings.Contains(view, "Default layout") {
		t.Error("Expected layout field label")
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"/short", 20, "/short"},
		{"/home/dev/projects/very-long-name", 15, "...ry-long-name"},
	}

	for _, tt := range tests {
		if got := truncatePath(tt.input, tt.maxLen); got != tt.expected {
			t.Errorf("truncatePath(%q, %d): expected %q, got %q", tt.input, tt.maxLen, tt.expected, got)
		}
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 20, "short"},
		{"a-very-long-session-name", 10, "a-very-..."},
		// Wide runes take two cells, so fewer of them fit
		{"日本語のセッション", 8, "日本..."},
	}

	for _, tt := range tests {
		if got := truncateString(tt.input, tt.maxLen); got != tt.expected {
			t.Errorf("truncateString(%q, %d): expected %q, got %q", tt.input, tt.maxLen, tt.expected, got)
		}
	}
}
