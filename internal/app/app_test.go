package app

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	pexec "github.com/loom-sh/loom/internal/exec"
	"github.com/loom-sh/loom/internal/ui"
)

func TestNew_Defaults(t *testing.T) {
	m, _, _ := newTestModel(t)

	if m.focus != FocusList {
		t.Errorf("focus = %v, want FocusList", m.focus)
	}
	if !m.list.IsFocused() {
		t.Error("expected list to start focused")
	}
	if m.preview.IsFocused() {
		t.Error("expected preview to start unfocused")
	}
	if m.PendingAttach() != "" {
		t.Errorf("PendingAttach() = %q, want empty", m.PendingAttach())
	}
	if m.modal.IsVisible() {
		t.Error("expected no modal on a fresh model")
	}
}

func TestInit_ReturnsCommand(t *testing.T) {
	m, _, _ := newTestModel(t)

	if m.Init() == nil {
		t.Error("Init() = nil, want session load command")
	}
}

// =============================================================================
// toggleFocus Tests
// =============================================================================

func TestToggleFocus_ListToPreview_WithSelection(t *testing.T) {
	m, _, _ := loadedModel(t)

	m.toggleFocus()

	if m.focus != FocusPreview {
		t.Errorf("focus = %v, want FocusPreview", m.focus)
	}
	if m.list.IsFocused() {
		t.Error("expected list to be unfocused")
	}
	if !m.preview.IsFocused() {
		t.Error("expected preview to be focused")
	}
}

func TestToggleFocus_ListToPreview_WithoutSelection(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.toggleFocus()

	if m.focus != FocusList {
		t.Errorf("focus = %v, want FocusList with nothing selected", m.focus)
	}
	if !m.list.IsFocused() {
		t.Error("expected list to remain focused")
	}
	if m.preview.IsFocused() {
		t.Error("expected preview to remain unfocused")
	}
}

func TestToggleFocus_PreviewToList(t *testing.T) {
	m, _, _ := loadedModel(t)
	m.toggleFocus()

	m.toggleFocus()

	if m.focus != FocusList {
		t.Errorf("focus = %v, want FocusList", m.focus)
	}
	if !m.list.IsFocused() {
		t.Error("expected list to be focused")
	}
	if m.preview.IsFocused() {
		t.Error("expected preview to be unfocused")
	}
}

func TestUpdate_TabTogglesFocus(t *testing.T) {
	m, _, _ := loadedModel(t)

	m = sendKey(m, "tab")
	if m.focus != FocusPreview {
		t.Errorf("focus after tab = %v, want FocusPreview", m.focus)
	}

	m = sendKey(m, "tab")
	if m.focus != FocusList {
		t.Errorf("focus after second tab = %v, want FocusList", m.focus)
	}
}

// =============================================================================
// Quit and Attach Tests
// =============================================================================

func TestUpdate_QuitKey(t *testing.T) {
	m, _, _ := loadedModel(t)

	_, cmd := m.Update(keyPress("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestUpdate_CtrlCQuits(t *testing.T) {
	m, _, _ := loadedModel(t)

	_, cmd := m.Update(keyPress("ctrl+c"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestUpdate_EnterRequestsAttach(t *testing.T) {
	m, _, _ := loadedModel(t)

	result, cmd := m.Update(keyPress("enter"))
	m = result.(*Model)

	if m.PendingAttach() != "alpha" {
		t.Errorf("PendingAttach() = %q, want %q", m.PendingAttach(), "alpha")
	}
	if cmd == nil {
		t.Fatal("expected quit command after attach request")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestUpdate_EnterWithoutSelectionIsNoop(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = setSize(m, 120, 40)

	m = sendKey(m, "enter")

	if m.PendingAttach() != "" {
		t.Errorf("PendingAttach() = %q, want empty", m.PendingAttach())
	}
}

// =============================================================================
// Startup Modal Tests
// =============================================================================

func TestStartupModals_FirstRunShowsWelcome(t *testing.T) {
	m, _, _ := newTestModel(t)
	if err := m.store.FactoryReset(); err != nil {
		t.Fatalf("FactoryReset() error = %v", err)
	}

	result, _ := m.Update(StartupModalMsg{})
	m = result.(*Model)

	if !m.modal.IsVisible() {
		t.Fatal("expected welcome modal on first run")
	}
	if _, ok := m.modal.State.(*ui.WelcomeState); !ok {
		t.Errorf("modal state = %T, want *ui.WelcomeState", m.modal.State)
	}
}

func TestStartupModals_OffersReconnect(t *testing.T) {
	m, _, _ := newTestModel(t)
	if err := m.store.SetLastSession("api"); err != nil {
		t.Fatalf("SetLastSession() error = %v", err)
	}

	result, _ := m.Update(StartupModalMsg{})
	m = result.(*Model)

	if !m.modal.IsVisible() {
		t.Fatal("expected reconnect modal")
	}
	state, ok := m.modal.State.(*ui.ConfirmReconnectState)
	if !ok {
		t.Fatalf("modal state = %T, want *ui.ConfirmReconnectState", m.modal.State)
	}
	if state.SessionName != "api" {
		t.Errorf("SessionName = %q, want %q", state.SessionName, "api")
	}
}

func TestStartupModals_NoReconnectWhenSessionGone(t *testing.T) {
	m, mock, _ := newTestModel(t)
	if err := m.store.SetLastSession("api"); err != nil {
		t.Fatalf("SetLastSession() error = %v", err)
	}
	mock.AddExactMatch("tmux", []string{"has-session", "-t", "=api"}, pexec.MockResponse{
		Err: fmt.Errorf("exit status 1"),
	})

	result, _ := m.Update(StartupModalMsg{})
	m = result.(*Model)

	if m.modal.IsVisible() {
		t.Error("expected no modal when the last session is gone")
	}
}

func TestStartupModals_NoReconnectWithoutLastSession(t *testing.T) {
	m, _, _ := newTestModel(t)

	result, _ := m.Update(StartupModalMsg{})
	m = result.(*Model)

	if m.modal.IsVisible() {
		t.Error("expected no modal without a recorded last session")
	}
}

// =============================================================================
// Session Loading Tests
// =============================================================================

func TestHandleSessionsLoaded_PopulatesList(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = setSize(m, 120, 40)

	result, _ := m.Update(sessionsLoadedMsg{sessions: testSessions()})
	m = result.(*Model)

	sel := m.list.Selected()
	if sel == nil {
		t.Fatal("expected a selection after loading sessions")
	}
	if sel.Name != "alpha" {
		t.Errorf("Selected().Name = %q, want %q", sel.Name, "alpha")
	}
}

func TestHandleSessionsLoaded_ErrorShowsFlash(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = setSize(m, 120, 40)

	result, _ := m.Update(sessionsLoadedMsg{err: fmt.Errorf("server exploded")})
	m = result.(*Model)

	if !m.footer.HasFlash() {
		t.Error("expected an error flash when listing fails")
	}
}

func TestHandleSessionsLoaded_FocusFallsBackToList(t *testing.T) {
	m, _, _ := loadedModel(t)
	m.toggleFocus()
	if m.focus != FocusPreview {
		t.Fatalf("focus = %v, want FocusPreview", m.focus)
	}

	result, _ := m.Update(sessionsLoadedMsg{sessions: nil})
	m = result.(*Model)

	if m.focus != FocusList {
		t.Errorf("focus = %v, want FocusList after the selection went away", m.focus)
	}
}

// =============================================================================
// Preview Loading Tests
// =============================================================================

func TestHandlePreviewLoaded_InstallsCapture(t *testing.T) {
	m, _, _ := loadedModel(t)

	result, _ := m.Update(previewLoadedMsg{name: "alpha", content: "$ make test"})
	m = result.(*Model)
	m.preview.SetSize(60, 20)

	view := stripANSI(m.preview.View())
	if !strings.Contains(view, "alpha") {
		t.Errorf("preview should show the session name, got:\n%s", view)
	}
}

func TestHandlePreviewLoaded_StaleCaptureDiscarded(t *testing.T) {
	m, _, _ := loadedModel(t)

	result, _ := m.Update(previewLoadedMsg{name: "zzz", content: "stale"})
	m = result.(*Model)
	m.preview.SetSize(60, 20)

	view := stripANSI(m.preview.View())
	if strings.Contains(view, "zzz") {
		t.Errorf("stale capture should be discarded, got:\n%s", view)
	}
}

func TestHandlePreviewLoaded_ErrorRendersInPane(t *testing.T) {
	m, _, _ := loadedModel(t)

	result, _ := m.Update(previewLoadedMsg{name: "alpha", err: fmt.Errorf("no server running")})
	m = result.(*Model)
	m.preview.SetSize(60, 20)

	view := stripANSI(m.preview.View())
	if !strings.Contains(view, "Could not capture pane") {
		t.Errorf("capture error should render in the pane, got:\n%s", view)
	}
}

// =============================================================================
// View Tests
// =============================================================================

func TestRenderToString_ZeroSize(t *testing.T) {
	m, _, _ := newTestModel(t)

	if got := m.RenderToString(); got != "Loading..." {
		t.Errorf("RenderToString() = %q, want %q", got, "Loading...")
	}
}

func TestRenderToString_ShowsSessions(t *testing.T) {
	m, _, _ := loadedModel(t)

	view := stripANSI(m.RenderToString())
	for _, name := range []string{"alpha", "beta", "gamma"} {
		if !strings.Contains(view, name) {
			t.Errorf("view should contain session %q", name)
		}
	}
	if !strings.Contains(view, "loom") {
		t.Error("view should contain the header title")
	}
}

func TestRenderToString_ModalReplacesFrame(t *testing.T) {
	m, _, _ := loadedModel(t)
	m = sendKey(m, "n")

	view := stripANSI(m.RenderToString())
	if !strings.Contains(view, "New Session") {
		t.Errorf("view should show the modal, got:\n%s", view)
	}
}

// stripANSI removes escape sequences so tests can match on plain text
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		if r == 0x1b {
			inEscape = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
