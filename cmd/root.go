package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/loom-sh/loom/internal/app"
	"github.com/loom-sh/loom/internal/cli"
	"github.com/loom-sh/loom/internal/config"
	"github.com/loom-sh/loom/internal/exec"
	"github.com/loom-sh/loom/internal/logger"
	"github.com/loom-sh/loom/internal/session"
	"github.com/loom-sh/loom/internal/theme"
	"github.com/loom-sh/loom/internal/tmux"
)

var (
	debugMode             bool
	logFile               string
	resetConfig           bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "loom",
	Short: "Weave your tmux sessions together",
	Long: `Loom manages named tmux sessions: create, attach, rename, annotate,
theme, and kill them from one screen. Every session gets a color theme
derived from its name, so the same session always looks the same.

Project folders registered with loom can scaffold git worktrees, npm
script menus, and database bootstrap via 'loom scaffold'.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of the default")
	rootCmd.Flags().BoolVar(&resetConfig, "reset", false, "Reset configuration to factory defaults and exit")
}

func initLogging() {
	if debugMode {
		logger.SetDebug(true)
	}
	if logFile != "" {
		if err := logger.Init(logFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("loom %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("loom %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// tmux has to be there before anything interactive starts
	if err := cli.ValidateRequired(cli.DefaultPrerequisites()); err != nil {
		return fmt.Errorf("%v\n\nRun 'loom doctor' to see all prerequisites", err)
	}

	store, err := config.NewStore()
	if err != nil {
		return fmt.Errorf("error locating config: %w", err)
	}

	if resetConfig {
		return runReset(store, os.Stdin)
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	executor := exec.NewRealExecutor()
	palette := theme.DefaultPalette()
	manager := session.NewManager(tmux.NewClient(executor), store, palette)

	m := app.New(store, manager, palette)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}

	// Attaching happens after the TUI has released the terminal, since
	// tmux takes it over completely.
	if name := m.PendingAttach(); name != "" {
		layout := store.Load().Layout()
		if err := manager.Attach(cmd.Context(), name, "", layout); err != nil {
			return fmt.Errorf("error attaching to %s: %w", name, err)
		}
		return nil
	}

	fmt.Println("Until next time!")
	return nil
}

func runReset(store *config.Store, input io.Reader) error {
	if !confirm(input, "Reset loom configuration to factory defaults?") {
		fmt.Println("Aborted.")
		return nil
	}
	if err := store.FactoryReset(); err != nil {
		return fmt.Errorf("error resetting config: %w", err)
	}
	fmt.Println("Configuration reset.")
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
