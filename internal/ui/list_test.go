package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/loom-sh/loom/internal/session"
	"github.com/loom-sh/loom/internal/theme"
)

func testSessions() []session.Session {
	return []session.Session{
		{Name: "alpha", Windows: 2, Theme: theme.Theme{Name: "nord", Accent: "#88C0D0"}},
		{Name: "beta", Windows: 1, Attached: true, Theme: theme.Theme{Name: "dracula", Accent: "#BD93F9"}},
		{Name: "gamma", Windows: 3, Theme: theme.Theme{Name: "gruvbox", Accent: "#FABD2F"}},
	}
}

func TestNewList(t *testing.T) {
	l := NewList()

	if !l.IsFocused() {
		t.Error("Expected new list to be focused")
	}
	if len(l.Sessions()) != 0 {
		t.Errorf("Expected no sessions, got %d", len(l.Sessions()))
	}
	if l.Selected() != nil {
		t.Error("Expected Selected to be nil for empty list")
	}
}

func TestList_SetSize(t *testing.T) {
	l := NewList()
	l.SetSize(40, 20)

	if l.Width() != 40 {
		t.Errorf("Expected width 40, got %d", l.Width())
	}
	if l.height != 20 {
		t.Errorf("Expected height 20, got %d", l.height)
	}
}

func TestList_FocusState(t *testing.T) {
	l := NewList()

	l.SetFocused(false)
	if l.IsFocused() {
		t.Error("Expected list to be unfocused")
	}

	l.SetFocused(true)
	if !l.IsFocused() {
		t.Error("Expected list to be focused")
	}
}

func TestList_SetSessions(t *testing.T) {
	l := NewList()
	l.SetSessions(testSessions())

	if len(l.Sessions()) != 3 {
		t.Errorf("Expected 3 sessions, got %d", len(l.Sessions()))
	}
	if sel := l.Selected(); sel == nil || sel.Name != "alpha" {
		t.Error("Expected selection to start on the first session")
	}
}

func TestList_SetSessions_PreservesCursorByName(t *testing.T) {
	l := NewList()
	l.SetSessions(testSessions())
	l.Select("gamma")

	// Reload with a different ordering, the cursor should follow the name
	l.SetSessions([]session.Session{
		{Name: "gamma", Windows: 3},
		{Name: "alpha", Windows: 2},
	})

	if sel := l.Selected(); sel == nil || sel.Name != "gamma" {
		t.Error("Expected cursor to stay on gamma after reload")
	}
	if l.selectedIdx != 0 {
		t.Errorf("Expected selectedIdx 0, got %d", l.selectedIdx)
	}
}

func TestList_SetSessions_ClampsSelection(t *testing.T) {
	l := NewList()
	l.SetSessions(testSessions())
	l.Select("gamma")

	// The selected session went away and the list shrank
	l.SetSessions([]session.Session{
		{Name: "alpha", Windows: 2},
	})

	if l.selectedIdx != 0 {
		t.Errorf("Expected selectedIdx clamped to 0, got %d", l.selectedIdx)
	}
	if sel := l.Selected(); sel == nil || sel.Name != "alpha" {
		t.Error("Expected selection to land on the remaining session")
	}
}

func TestList_SetSessions_Empty(t *testing.T) {
	l := NewList()
	l.SetSessions(testSessions())
	l.Select("beta")

	l.SetSessions(nil)

	if l.Selected() != nil {
		t.Error("Expected Selected to be nil after clearing sessions")
	}
	if l.selectedIdx != 0 {
		t.Errorf("Expected selectedIdx reset to 0, got %d", l.selectedIdx)
	}
}

func TestList_Select(t *testing.T) {
	l := NewList()
	l.SetSessions(testSessions())

	l.Select("beta")
	if sel := l.Selected(); sel == nil || sel.Name != "beta" {
		t.Error("Expected Select to move the cursor to beta")
	}

	// Unknown names leave the cursor where it is
	l.Select("nope")
	if sel := l.Selected(); sel == nil || sel.Name != "beta" {
		t.Error("Expected cursor to stay put for an unknown name")
	}
}

func TestList_Update_Navigation(t *testing.T) {
	l := NewList()
	l.SetSessions(testSessions())

	l.Update(tea.KeyPressMsg{Code: -1, Text: "j"})
	if l.selectedIdx != 1 {
		t.Errorf("Expected selectedIdx 1 after j, got %d", l.selectedIdx)
	}

	l.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if l.selectedIdx != 2 {
		t.Errorf("Expected selectedIdx 2 after down, got %d", l.selectedIdx)
	}

	// Already at the bottom, stays there
	l.Update(tea.KeyPressMsg{Code: -1, Text: "j"})
	if l.selectedIdx != 2 {
		t.Errorf("Expected selectedIdx to stay at 2, got %d", l.selectedIdx)
	}

	l.Update(tea.KeyPressMsg{Code: -1, Text: "k"})
	if l.selectedIdx != 1 {
		t.Errorf("Expected selectedIdx 1 after k, got %d", l.selectedIdx)
	}

	l.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if l.selectedIdx != 0 {
		t.Errorf("Expected selectedIdx 0 after up, got %d", l.selectedIdx)
	}

	// Already at the top, stays there
	l.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if l.selectedIdx != 0 {
		t.Errorf("Expected selectedIdx to stay at 0, got %d", l.selectedIdx)
	}

	l.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
	if l.selectedIdx != 2 {
		t.Errorf("Expected selectedIdx 2 after end, got %d", l.selectedIdx)
	}

	l.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	if l.selectedIdx != 0 {
		t.Errorf("Expected selectedIdx 0 after home, got %d", l.selectedIdx)
	}
}

func TestList_Update_IgnoredWhenUnfocused(t *testing.T) {
	l := NewList()
	l.SetSessions(testSessions())
	l.SetFocused(false)

	l.Update(tea.KeyPressMsg{Code: -1, Text: "j"})
	if l.selectedIdx != 0 {
		t.Errorf("Expected unfocused list to ignore keys, got selectedIdx %d", l.selectedIdx)
	}
}

func TestList_Update_EmptyList(t *testing.T) {
	l := NewList()

	l.Update(tea.KeyPressMsg{Code: -1, Text: "j"})
	l.Update(tea.KeyPressMsg{Code: tea.KeyEnd})

	if l.selectedIdx != 0 {
		t.Errorf("Expected selectedIdx to stay 0 on empty list, got %d", l.selectedIdx)
	}
}

func TestList_View_NoSessions(t *testing.T) {
	GetViewContext().UpdateTerminalSize(120, 40)

	l := NewList()
	l.SetSize(40, 20)

	view := stripANSI(l.View())
	if !strings.Contains(view, "Sessions (0)") {
		t.Error("Expected view to show empty session count")
	}
	if !strings.Contains(view, "No sessions") {
		t.Error("Expected view to show the empty state hint")
	}
}

func TestList_View_WithSessions(t *testing.T) {
	GetViewContext().UpdateTerminalSize(120, 40)

	l := NewList()
	l.SetSize(40, 20)
	l.SetSessions(testSessions())

	view := stripANSI(l.View())
	if !strings.Contains(view, "Sessions (3)") {
		t.Error("Expected view to show the session count")
	}
	if !strings.Contains(view, "alpha") {
		t.Error("Expected view to contain alpha")
	}
	if !strings.Contains(view, "beta") {
		t.Error("Expected view to contain beta")
	}
	if !strings.Contains(view, "◆") {
		t.Error("Expected attached marker for beta")
	}
	if !strings.Contains(view, "2w") {
		t.Error("Expected window count for alpha")
	}
	if !strings.Contains(view, "> ") {
		t.Error("Expected cursor prefix on the selected row")
	}
}

func TestList_View_TruncatesLongNames(t *testing.T) {
	GetViewContext().UpdateTerminalSize(120, 40)

	l := NewList()
	l.SetSize(30, 20)
	long := strings.Repeat("session-name-", 5)
	l.SetSessions([]session.Session{{Name: long, Windows: 4}})

	view := stripANSI(l.View())
	if strings.Contains(view, long) {
		t.Error("Expected the long name to be truncated")
	}
	if !strings.Contains(view, "…") {
		t.Error("Expected an ellipsis on the truncated name")
	}
	if !strings.Contains(view, "4w") {
		t.Error("Window count should survive a long name")
	}
}

func TestList_View_ScrollKeepsSelectionVisible(t *testing.T) {
	GetViewContext().UpdateTerminalSize(120, 40)

	l := NewList()
	l.SetSize(40, 8)

	var sessions []session.Session
	for _, name := range []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"} {
		sessions = append(sessions, session.Session{Name: name, Windows: 1})
	}
	l.SetSessions(sessions)

	l.Update(tea.KeyPressMsg{Code: tea.KeyEnd})

	view := stripANSI(l.View())
	if !strings.Contains(view, "ten") {
		t.Error("Expected the last session to be visible after jumping to the end")
	}
}
