package scaffold

import (
	"context"
	"os"
	"path/filepath"

	"github.com/loom-sh/loom/internal/errors"
	"github.com/loom-sh/loom/internal/logger"
	"github.com/loom-sh/loom/internal/paths"
)

// OrphanedWorktree is a directory in the central worktrees dir that no
// registered project repository claims.
type OrphanedWorktree struct {
	Path string // full path to the worktree directory
	Name string // directory name
}

// FindOrphanedWorktrees scans the central worktrees directory and
// returns every entry that is not listed as an active worktree by any
// registered project folder. Folders whose repos cannot be listed are
// skipped with a warning rather than failing the whole scan.
func (e *Engine) FindOrphanedWorktrees(ctx context.Context) ([]OrphanedWorktree, error) {
	worktreesDir, err := paths.WorktreesDir()
	if err != nil {
		return nil, errors.E(errors.Op("scaffold.FindOrphanedWorktrees"), errors.KindIO, err)
	}

	entries, err := os.ReadDir(worktreesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.E(errors.Op("scaffold.FindOrphanedWorktrees"), errors.KindIO, err)
	}

	claimed := make(map[string]bool)
	for _, folder := range e.store.Load().ProjectFolders {
		worktrees, err := e.git.ListWorktrees(ctx, folder.Path)
		if err != nil {
			logger.Warn("Scaffold: Could not list worktrees for %s: %v", folder.Path, err)
			continue
		}
		for _, wt := range worktrees {
			claimed[filepath.Clean(wt.Path)] = true
		}
	}

	var orphans []OrphanedWorktree
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(worktreesDir, entry.Name())
		if !claimed[filepath.Clean(path)] {
			orphans = append(orphans, OrphanedWorktree{Path: path, Name: entry.Name()})
		}
	}

	logger.Log("Scaffold: Found %d orphaned worktrees", len(orphans))
	return orphans, nil
}

// PruneOrphanedWorktrees removes every orphaned worktree directory and
// then clears stale administrative entries in each registered repo.
// Returns the number of directories removed.
func (e *Engine) PruneOrphanedWorktrees(ctx context.Context) (int, error) {
	orphans, err := e.FindOrphanedWorktrees(ctx)
	if err != nil {
		return 0, err
	}

	pruned := 0
	for _, orphan := range orphans {
		logger.Log("Scaffold: Pruning orphaned worktree %s", orphan.Path)
		// No repo claims the directory, so git worktree remove has
		// nothing to act on. Remove it directly.
		if err := os.RemoveAll(orphan.Path); err != nil {
			logger.Error("Scaffold: Could not remove %s: %v", orphan.Path, err)
			continue
		}
		pruned++
	}

	for _, folder := range e.store.Load().ProjectFolders {
		e.git.PruneWorktrees(ctx, folder.Path)
	}

	return pruned, nil
}
