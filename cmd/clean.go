package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/loom-sh/loom/internal/config"
	pexec "github.com/loom-sh/loom/internal/exec"
	"github.com/loom-sh/loom/internal/logger"
	"github.com/loom-sh/loom/internal/scaffold"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove orphaned worktrees and log files",
	Long: `Prunes worktree directories that no registered project claims any
more (the session that used them is gone, or the project was removed)
and clears loom's log file.

It will prompt for confirmation before proceeding unless the --yes
flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader) error {
	store, err := config.NewStore()
	if err != nil {
		return fmt.Errorf("error opening config: %w", err)
	}
	defer logger.Close()

	engine := scaffold.NewEngine(pexec.NewRealExecutor(), store)
	ctx := context.Background()

	orphans, err := engine.FindOrphanedWorktrees(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error finding orphaned worktrees: %v\n", err)
	}

	hasLog := false
	if _, err := os.Stat(logger.DefaultLogPath); err == nil {
		hasLog = true
	}

	if len(orphans) == 0 && !hasLog {
		fmt.Println("Nothing to clean.")
		return nil
	}

	fmt.Println("This will clean:")
	if len(orphans) > 0 {
		fmt.Printf("  - %d orphaned worktree(s)\n", len(orphans))
		for _, orphan := range orphans {
			fmt.Printf("      %s\n", orphan.Path)
		}
	}
	if hasLog {
		fmt.Printf("  - Log file at %s\n", logger.DefaultLogPath)
	}

	if !skipConfirm {
		if !confirm(input, "Continue?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	pruned, err := engine.PruneOrphanedWorktrees(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error pruning worktrees: %v\n", err)
	}

	fmt.Println()
	fmt.Println("Cleaned:")
	if pruned > 0 {
		fmt.Printf("  - %d orphaned worktree(s) pruned\n", pruned)
	}
	if logsCleared > 0 {
		fmt.Printf("  - %d log file(s) removed\n", logsCleared)
	}
	if pruned == 0 && logsCleared == 0 {
		fmt.Println("  - nothing (already clean)")
	}
	return nil
}
