package app

import (
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/loom-sh/loom/internal/config"
	pexec "github.com/loom-sh/loom/internal/exec"
	"github.com/loom-sh/loom/internal/keys"
	"github.com/loom-sh/loom/internal/session"
	"github.com/loom-sh/loom/internal/theme"
	"github.com/loom-sh/loom/internal/tmux"
)

// newTestModel creates a Model wired to a mock executor and a config
// store rooted in a temp dir. The first-run flag is cleared so the
// welcome modal stays out of the way; tests that want it use a fresh
// store instead.
func newTestModel(t *testing.T) (*Model, *pexec.MockExecutor, *config.Store) {
	t.Helper()

	mock := pexec.NewMockExecutor(nil)
	store := config.NewStoreAt(filepath.Join(t.TempDir(), "config.json"))
	if err := store.MarkFirstRunComplete(); err != nil {
		t.Fatalf("MarkFirstRunComplete() error = %v", err)
	}

	palette := theme.DefaultPalette()
	manager := session.NewManager(tmux.NewClient(mock), store, palette)

	return New(store, manager, palette), mock, store
}

// testSessions returns a fixed session listing for populating the list
func testSessions() []session.Session {
	palette := theme.DefaultPalette()
	return []session.Session{
		{Name: "alpha", Windows: 2, Theme: palette.For("alpha")},
		{Name: "beta", Windows: 1, Attached: true, Theme: palette.For("beta")},
		{Name: "gamma", Windows: 3, Theme: palette.For("gamma")},
	}
}

// loadedModel creates a sized model with the fixture sessions loaded
func loadedModel(t *testing.T) (*Model, *pexec.MockExecutor, *config.Store) {
	t.Helper()

	m, mock, store := newTestModel(t)
	m = setSize(m, 120, 40)
	result, _ := m.Update(sessionsLoadedMsg{sessions: testSessions()})
	return result.(*Model), mock, store
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "tab", "esc", "ctrl+c", "up", "down"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Backspace:
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Left:
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case keys.Right:
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case keys.Home:
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case keys.End:
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.Space:
		return tea.KeyPressMsg{Code: tea.KeySpace}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlD:
		return tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl}
	case keys.CtrlU:
		return tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl}
	case keys.CtrlY:
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	case keys.ShiftTab:
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	default:
		// Regular character - for single characters, set both Code and Text
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		// Fallback for unknown keys
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press to the model and returns the updated model.
func sendKey(m *Model, key string) *Model {
	result, _ := m.Update(keyPress(key))
	return result.(*Model)
}

// typeText simulates typing a string by sending individual character key presses.
func typeText(m *Model, text string) *Model {
	for _, ch := range text {
		m = sendKey(m, string(ch))
	}
	return m
}

// setSize sends a window size message to the model.
func setSize(m *Model, width, height int) *Model {
	result, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return result.(*Model)
}
