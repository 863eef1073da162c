package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestE_WithAllFields(t *testing.T) {
	underlying := stderrors.New("boom")
	err := E(Op("tmux.NewSession"), KindTmux, "creating session", underlying)

	var e *Error
	if !stderrors.As(err, &e) {
		t.Fatal("E should return an *Error")
	}
	if e.Op != "tmux.NewSession" {
		t.Errorf("Expected op tmux.NewSession, got %s", e.Op)
	}
	if e.Kind != KindTmux {
		t.Errorf("Expected KindTmux, got %v", e.Kind)
	}
	if !stderrors.Is(err, underlying) {
		t.Error("Unwrap should expose the underlying error")
	}
}

func TestE_ContextOnly(t *testing.T) {
	err := E(Op("config.Load"), KindConfig, "file unreadable")
	if err.Error() != "config.Load: file unreadable" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestError_Message(t *testing.T) {
	err := E(Op("git.CreateWorktree"), KindGit, "branch exists", stderrors.New("exit status 128"))
	msg := err.Error()
	if !strings.Contains(msg, "git.CreateWorktree") {
		t.Errorf("Message should contain op, got %s", msg)
	}
	if !strings.Contains(msg, "branch exists") {
		t.Errorf("Message should contain context, got %s", msg)
	}
	if !strings.Contains(msg, "exit status 128") {
		t.Errorf("Message should contain cause, got %s", msg)
	}
}

func TestIs_MatchesKind(t *testing.T) {
	err := SessionNotFound("dev")
	if !Is(err, KindNotFound) {
		t.Error("SessionNotFound should have KindNotFound")
	}
	if Is(err, KindTmux) {
		t.Error("SessionNotFound should not match KindTmux")
	}
}

func TestIs_WrappedError(t *testing.T) {
	err := fmt.Errorf("outer: %w", DuplicateFolderName("app"))
	if !Is(err, KindInvalid) {
		t.Error("Is should see through fmt.Errorf wrapping")
	}
}

func TestGetKind(t *testing.T) {
	if GetKind(TmuxCommandFailed("KillSession", stderrors.New("no server"))) != KindTmux {
		t.Error("Expected KindTmux")
	}
	if GetKind(stderrors.New("plain")) != KindUnknown {
		t.Error("Plain errors should report KindUnknown")
	}
}

func TestKind_String(t *testing.T) {
	kinds := map[Kind]string{
		KindNotFound: "not found",
		KindInvalid:  "invalid",
		KindIO:       "I/O error",
		KindConfig:   "configuration error",
		KindTmux:     "tmux error",
		KindGit:      "git error",
		KindScaffold: "scaffold error",
		KindUnknown:  "unknown error",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("Kind %d: expected %q, got %q", k, want, k.String())
		}
	}
}
