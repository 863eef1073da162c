package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/loom-sh/loom/internal/config"
)

func TestDebugFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("debug")
	if flag == nil {
		t.Fatal("--debug flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--debug default = %q, want %q", flag.DefValue, "false")
	}
}

func TestLogFileFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("log-file")
	if flag == nil {
		t.Fatal("--log-file flag not found")
	}
	if flag.DefValue != "" {
		t.Errorf("--log-file default = %q, want empty", flag.DefValue)
	}
}

func TestResetFlagExists(t *testing.T) {
	flag := rootCmd.Flags().Lookup("reset")
	if flag == nil {
		t.Fatal("--reset flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--reset default = %q, want %q", flag.DefValue, "false")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"doctor":   false,
		"scaffold": false,
		"menu":     false,
		"clean":    false,
	}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Subcommand %s not registered", name)
		}
	}
}

func TestVersionTemplate_WithCommit(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer func() { version, commit, date = origV, origC, origD }()

	SetVersionInfo("1.2.3", "abc1234", "2026-08-01")
	tmpl := versionTemplate()
	if !strings.Contains(tmpl, "loom 1.2.3") {
		t.Errorf("Template missing version: %q", tmpl)
	}
	if !strings.Contains(tmpl, "commit: abc1234") {
		t.Errorf("Template missing commit: %q", tmpl)
	}
	if !strings.Contains(tmpl, "built:  2026-08-01") {
		t.Errorf("Template missing build date: %q", tmpl)
	}
}

func TestVersionTemplate_DevBuild(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer func() { version, commit, date = origV, origC, origD }()

	SetVersionInfo("dev", "none", "unknown")
	tmpl := versionTemplate()
	if !strings.Contains(tmpl, "loom dev") {
		t.Errorf("Template missing version: %q", tmpl)
	}
	if strings.Contains(tmpl, "commit") {
		t.Errorf("Dev build should not print commit info: %q", tmpl)
	}
}

func TestRunReset_Confirmed(t *testing.T) {
	store := config.NewStoreAt(filepath.Join(t.TempDir(), "config.json"))
	if err := store.MarkFirstRunComplete(); err != nil {
		t.Fatal(err)
	}
	if store.IsFirstRun() {
		t.Fatal("Precondition: first run should be complete")
	}

	if err := runReset(store, strings.NewReader("y\n")); err != nil {
		t.Fatalf("runReset failed: %v", err)
	}
	if !store.IsFirstRun() {
		t.Error("Factory reset should restore the first-run state")
	}
}

func TestRunReset_Aborted(t *testing.T) {
	store := config.NewStoreAt(filepath.Join(t.TempDir(), "config.json"))
	if err := store.MarkFirstRunComplete(); err != nil {
		t.Fatal(err)
	}

	if err := runReset(store, strings.NewReader("n\n")); err != nil {
		t.Fatalf("runReset failed: %v", err)
	}
	if store.IsFirstRun() {
		t.Error("Aborted reset must not touch the config")
	}
}
