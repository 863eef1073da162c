package paths

import (
	"os"
	"path/filepath"
	"testing"
)

// setTestHome points HOME (and clears XDG vars) at a temp dir, resetting
// the cached resolution before and after.
func setTestHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	Reset()
	t.Cleanup(Reset)
	return home
}

func TestResolve_FreshInstallDefaultsToLegacy(t *testing.T) {
	home := setTestHome(t)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	want := filepath.Join(home, ".loom")
	if dir != want {
		t.Errorf("Expected %s, got %s", want, dir)
	}
	if !IsLegacyLayout() {
		t.Error("Fresh install without XDG vars should use legacy layout")
	}
}

func TestResolve_ExistingLegacyDirWins(t *testing.T) {
	home := setTestHome(t)
	legacy := filepath.Join(home, ".loom")
	if err := os.MkdirAll(legacy, 0755); err != nil {
		t.Fatal(err)
	}
	// XDG vars set, but legacy dir takes priority.
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg-config"))
	Reset()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if dir != legacy {
		t.Errorf("Existing ~/.loom should win over XDG, got %s", dir)
	}
}

func TestResolve_XDGLayout(t *testing.T) {
	home := setTestHome(t)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "cfg"))
	Reset()

	configDir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if configDir != filepath.Join(home, "cfg", "loom") {
		t.Errorf("Unexpected config dir: %s", configDir)
	}

	// Unset XDG vars fall back to conventional defaults.
	dataDir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if dataDir != filepath.Join(home, ".local", "share", "loom") {
		t.Errorf("Unexpected data dir: %s", dataDir)
	}
	stateDir, err := StateDir()
	if err != nil {
		t.Fatalf("StateDir: %v", err)
	}
	if stateDir != filepath.Join(home, ".local", "state", "loom") {
		t.Errorf("Unexpected state dir: %s", stateDir)
	}
	if IsLegacyLayout() {
		t.Error("XDG layout should not report legacy")
	}
}

func TestConfigFilePath(t *testing.T) {
	home := setTestHome(t)

	path, err := ConfigFilePath()
	if err != nil {
		t.Fatalf("ConfigFilePath: %v", err)
	}
	if path != filepath.Join(home, ".loom", "config.json") {
		t.Errorf("Unexpected config path: %s", path)
	}
}

func TestDerivedDirs(t *testing.T) {
	home := setTestHome(t)

	logs, err := LogsDir()
	if err != nil {
		t.Fatalf("LogsDir: %v", err)
	}
	if logs != filepath.Join(home, ".loom", "logs") {
		t.Errorf("Unexpected logs dir: %s", logs)
	}

	worktrees, err := WorktreesDir()
	if err != nil {
		t.Fatalf("WorktreesDir: %v", err)
	}
	if worktrees != filepath.Join(home, ".loom", "worktrees") {
		t.Errorf("Unexpected worktrees dir: %s", worktrees)
	}
}

func TestReset_ClearsCache(t *testing.T) {
	home := setTestHome(t)

	first, _ := ConfigDir()
	if first != filepath.Join(home, ".loom") {
		t.Fatalf("Unexpected initial dir: %s", first)
	}

	other := t.TempDir()
	t.Setenv("HOME", other)
	// Without Reset the cached value persists.
	cached, _ := ConfigDir()
	if cached != first {
		t.Error("Resolution should be cached until Reset")
	}

	Reset()
	fresh, _ := ConfigDir()
	if fresh != filepath.Join(other, ".loom") {
		t.Errorf("After Reset expected %s, got %s", filepath.Join(other, ".loom"), fresh)
	}
}
