package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/loom-sh/loom/internal/config"
	"github.com/loom-sh/loom/internal/exec"
	"github.com/loom-sh/loom/internal/logger"
	"github.com/loom-sh/loom/internal/notification"
	"github.com/loom-sh/loom/internal/scaffold"
)

var (
	scaffoldInit     bool
	scaffoldEnhance  bool
	scaffoldMinimal  bool
	scaffoldBranch   string
	scaffoldDatabase bool
	scaffoldDryRun   bool
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold [dir]",
	Short: "Set up a project directory for loom sessions",
	Long: `Prepares a project directory: writes a .loom.yml manifest describing
scripts, services, and layout, registers the directory as a project
folder, and optionally creates a git worktree and bootstraps the
database service from docker-compose.

Without a mode flag the mode is detected from the directory: an
existing manifest means --enhance, project files mean --init, and a
bare directory means --minimal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScaffold,
}

func init() {
	scaffoldCmd.Flags().BoolVar(&scaffoldInit, "init", false, "Full setup: detection, manifest, folder registration")
	scaffoldCmd.Flags().BoolVar(&scaffoldEnhance, "enhance", false, "Fold fresh detection into an existing manifest")
	scaffoldCmd.Flags().BoolVar(&scaffoldMinimal, "minimal", false, "Write a bare manifest and nothing else")
	scaffoldCmd.Flags().StringVar(&scaffoldBranch, "branch", "", "Create a git worktree for this branch")
	scaffoldCmd.Flags().BoolVar(&scaffoldDatabase, "database", false, "Start the database service and create the dev database")
	scaffoldCmd.Flags().BoolVar(&scaffoldDryRun, "dry-run", false, "Show the plan without touching anything")
	rootCmd.AddCommand(scaffoldCmd)
}

// scaffoldModeFromFlags resolves the mutually exclusive mode flags
func scaffoldModeFromFlags() (scaffold.Mode, error) {
	set := 0
	mode := scaffold.ModeAuto
	if scaffoldInit {
		set++
		mode = scaffold.ModeInit
	}
	if scaffoldEnhance {
		set++
		mode = scaffold.ModeEnhance
	}
	if scaffoldMinimal {
		set++
		mode = scaffold.ModeMinimal
	}
	if set > 1 {
		return "", fmt.Errorf("--init, --enhance, and --minimal are mutually exclusive")
	}
	return mode, nil
}

func runScaffold(cmd *cobra.Command, args []string) error {
	mode, err := scaffoldModeFromFlags()
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	store, err := config.NewStore()
	if err != nil {
		return fmt.Errorf("error locating config: %w", err)
	}
	defer logger.Close()

	// Database bootstrap can run for a while. An interrupt mid-sequence
	// exits immediately; the compose service may be left running.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
		fmt.Println("\nUntil next time!")
		os.Exit(1)
	}()

	engine := scaffold.NewEngine(exec.NewRealExecutor(), store)
	res, err := engine.Run(ctx, scaffold.Options{
		Dir:      dir,
		Mode:     mode,
		Branch:   scaffoldBranch,
		Database: scaffoldDatabase,
		DryRun:   scaffoldDryRun,
	})
	if err != nil {
		return err
	}

	printScaffoldResult(res, scaffoldDryRun)

	if !scaffoldDryRun {
		notification.ScaffoldCompleted(res.Manifest.Name)
	}
	return nil
}

func printScaffoldResult(res *scaffold.Result, dryRun bool) {
	fmt.Printf("Scaffold (%s) in %s\n", res.Mode, res.Dir)

	if dryRun {
		fmt.Println("\nWould write " + scaffold.ManifestFileName + ":")
		fmt.Println(scaffold.RenderYAML(res.ManifestYAML))
		for _, step := range res.Steps {
			fmt.Printf("  - %s\n", step)
		}
		return
	}

	for _, file := range res.WroteFiles {
		fmt.Printf("  wrote %s\n", file)
	}
	if res.Registered {
		fmt.Printf("  registered project folder %s\n", res.Manifest.Name)
	}
	if res.Branch != "" {
		fmt.Printf("  created worktree %s on branch %s\n", res.WorktreePath, res.Branch)
	}
	for _, svc := range res.Started {
		fmt.Printf("  started service %s\n", svc)
	}
	if res.DatabaseName != "" {
		fmt.Printf("  created database %s\n", res.DatabaseName)
	}
}
