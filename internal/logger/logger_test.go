package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_WritesToCustomPath(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}

	Info("hello %s", "world")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "hello world") {
		t.Errorf("Log file missing message, got: %s", data)
	}
}

func TestInit_Idempotent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "first.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	// Second Init is a no-op, keeps the first path.
	if err := Init(filepath.Join(t.TempDir(), "second.log")); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if Path() != path {
		t.Errorf("Expected path %s, got %s", path, Path())
	}
}

func TestDebug_SuppressedAtInfoLevel(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}

	SetDebug(false)
	Debug("invisible message")
	SetDebug(true)
	Debug("visible message")
	Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "invisible message") {
		t.Error("Debug message should be suppressed at info level")
	}
	if !strings.Contains(string(data), "visible message") {
		t.Error("Debug message should appear at debug level")
	}
}

func TestWarnAndError_AlwaysLogged(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}

	Warn("warn %d", 1)
	Error("error %d", 2)
	Close()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "warn 1") {
		t.Error("Missing warn message")
	}
	if !strings.Contains(string(data), "error 2") {
		t.Error("Missing error message")
	}
}

func TestInit_BadPathReturnsError(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	err := Init(filepath.Join(t.TempDir(), "missing", "nested", "test.log"))
	if err == nil {
		t.Error("Init should fail when the directory does not exist")
	}
}

func TestPath_DefaultBeforeInit(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if Path() != DefaultLogPath {
		t.Errorf("Expected default path before Init, got %s", Path())
	}
}
