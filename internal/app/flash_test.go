package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/loom-sh/loom/internal/ui"
)

func TestShowFlash_SetsFooterFlash(t *testing.T) {
	m, _, _ := newTestModel(t)

	cmd := m.ShowFlashSuccess("Created dev")

	if cmd == nil {
		t.Fatal("expected a tick command")
	}
	if !m.footer.HasFlash() {
		t.Error("footer should carry the flash message")
	}
}

func TestFlashTick_ClearsExpiredFlash(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.footer.SetFlashWithDuration("done", ui.FlashInfo, -time.Millisecond)

	cmd := m.handleTickMessages(ui.FlashTickMsg(time.Now()))

	if cmd != nil {
		t.Error("expected no further tick once the flash expired")
	}
	if m.footer.HasFlash() {
		t.Error("expired flash should be cleared")
	}
}

func TestFlashTick_ContinuesWhileActive(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.footer.SetFlash("working", ui.FlashInfo)

	cmd := m.handleTickMessages(ui.FlashTickMsg(time.Now()))

	if cmd == nil {
		t.Error("expected the tick to continue while the flash is active")
	}
}

func TestClipboardError_ShowsFlash(t *testing.T) {
	m, _, _ := newTestModel(t)

	cmd := m.handleTickMessages(ui.ClipboardErrorMsg{Error: fmt.Errorf("no display")})

	if cmd == nil {
		t.Error("expected a tick command")
	}
	if !m.footer.HasFlash() {
		t.Error("expected an error flash")
	}
}
