// Package git runs git commands for project scaffolding through an
// injected executor. Worktree management keeps scaffolded branches out
// of the main checkout.
package git

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/loom-sh/loom/internal/errors"
	pexec "github.com/loom-sh/loom/internal/exec"
	"github.com/loom-sh/loom/internal/logger"
)

// MaxBranchNameLength is the maximum length for user-provided branch names.
const MaxBranchNameLength = 100

// validBranchNameRegex matches valid git branch name characters
// Git branch names cannot contain: space, ~, ^, :, ?, *, [, \, or control characters
// They also cannot start with - or end with .lock
var validBranchNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9/_.-]*$`)

// ValidateBranchName checks if a branch name is valid for git
func ValidateBranchName(branch string) error {
	if branch == "" {
		return nil // Empty is allowed (caller picks a default)
	}

	if len(branch) > MaxBranchNameLength {
		return fmt.Errorf("branch name too long (max %d characters)", MaxBranchNameLength)
	}

	if strings.HasPrefix(branch, "-") {
		return fmt.Errorf("branch name cannot start with '-'")
	}

	if strings.HasSuffix(branch, ".lock") {
		return fmt.Errorf("branch name cannot end with '.lock'")
	}

	if strings.Contains(branch, "..") {
		return fmt.Errorf("branch name cannot contain '..'")
	}

	if !validBranchNameRegex.MatchString(branch) {
		return fmt.Errorf("branch name contains invalid characters (use letters, numbers, /, _, ., -)")
	}

	return nil
}

// Worktree is one entry of git worktree list output.
type Worktree struct {
	Path   string
	Head   string
	Branch string // short branch name, empty when detached
}

// Service runs git operations against a repository.
type Service struct {
	executor pexec.CommandExecutor
}

// NewService returns a Service backed by the given executor.
func NewService(executor pexec.CommandExecutor) *Service {
	return &Service{executor: executor}
}

// IsRepo reports whether path is inside a git repository.
func (s *Service) IsRepo(ctx context.Context, path string) bool {
	_, _, err := s.executor.Run(ctx, path, "git", "rev-parse", "--git-dir")
	return err == nil
}

// Root returns the repository root for a path, or empty string if the
// path is not inside a git repository.
func (s *Service) Root(ctx context.Context, path string) string {
	output, err := s.executor.Output(ctx, path, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// CurrentBranch returns the current branch name for the repo.
// Returns "HEAD" as fallback if it cannot be determined (detached).
func (s *Service) CurrentBranch(ctx context.Context, repoPath string) string {
	output, err := s.executor.Output(ctx, repoPath, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err == nil {
		branch := strings.TrimSpace(string(output))
		if branch != "" {
			return branch
		}
	}
	return "HEAD"
}

// HasRemoteOrigin checks if the repository has a remote named "origin"
func (s *Service) HasRemoteOrigin(ctx context.Context, repoPath string) bool {
	_, _, err := s.executor.Run(ctx, repoPath, "git", "remote", "get-url", "origin")
	return err == nil
}

// DefaultBranch returns the default branch name (e.g., "main" or "master").
// Returns "main" as fallback if it cannot be determined.
func (s *Service) DefaultBranch(ctx context.Context, repoPath string) string {
	// Try to get the default branch from origin's HEAD reference
	output, err := s.executor.Output(ctx, repoPath, "git", "symbolic-ref", "refs/remotes/origin/HEAD")
	if err == nil {
		// Output is like "refs/remotes/origin/main"
		ref := strings.TrimSpace(string(output))
		if after, ok := strings.CutPrefix(ref, "refs/remotes/origin/"); ok {
			return after
		}
	}

	// Fallback: check if main exists, otherwise master
	if s.BranchExists(ctx, repoPath, "main") {
		return "main"
	}
	if s.BranchExists(ctx, repoPath, "master") {
		return "master"
	}

	return "main"
}

// BranchExists checks if a branch already exists in the repo
func (s *Service) BranchExists(ctx context.Context, repoPath, branch string) bool {
	_, _, err := s.executor.Run(ctx, repoPath, "git", "rev-parse", "--verify", branch)
	return err == nil
}

// ListBranches returns the local branch names for the repo.
func (s *Service) ListBranches(ctx context.Context, repoPath string) ([]string, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "branch", "--format=%(refname:short)")
	if err != nil {
		return nil, errors.E("git.ListBranches", errors.KindGit, err)
	}

	var branches []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// CreateWorktree creates a worktree at dir on a new branch based on
// startPoint.
func (s *Service) CreateWorktree(ctx context.Context, repoPath, branch, dir, startPoint string) error {
	logger.Log("Git: Creating worktree branch=%s path=%s from=%s", branch, dir, startPoint)
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "worktree", "add", "-b", branch, dir, startPoint)
	if err != nil {
		logger.Error("Git: Failed to create worktree: %s", string(output))
		return errors.GitWorktreeFailed(branch, fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err))
	}
	return nil
}

// RemoveWorktree removes a worktree and prunes stale references.
// Pruning is best-effort.
func (s *Service) RemoveWorktree(ctx context.Context, repoPath, dir string) error {
	logger.Log("Git: Removing worktree path=%s", dir)
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "worktree", "remove", dir, "--force")
	if err != nil {
		logger.Error("Git: Failed to remove worktree: %s", string(output))
		return errors.E("git.RemoveWorktree", errors.KindGit, fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err))
	}

	if output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "worktree", "prune"); err != nil {
		logger.Warn("Git: Worktree prune failed (best-effort): %s - %v", string(output), err)
	}
	return nil
}

// PruneWorktrees clears administrative data for worktrees whose
// directories no longer exist. Best-effort.
func (s *Service) PruneWorktrees(ctx context.Context, repoPath string) {
	if output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "worktree", "prune"); err != nil {
		logger.Warn("Git: Worktree prune failed (best-effort): %s - %v", string(output), err)
	}
}

// ListWorktrees parses git worktree list --porcelain output.
func (s *Service) ListWorktrees(ctx context.Context, repoPath string) ([]Worktree, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "worktree", "list", "--porcelain")
	if err != nil {
		return nil, errors.E("git.ListWorktrees", errors.KindGit, err)
	}
	return parseWorktreeList(string(output)), nil
}

// parseWorktreeList splits porcelain output into entries. Each entry is
// a block of "key value" lines separated by a blank line:
//
//	worktree /path/to/tree
//	HEAD abc123...
//	branch refs/heads/feature
func parseWorktreeList(output string) []Worktree {
	var worktrees []Worktree
	var current Worktree

	flush := func() {
		if current.Path != "" {
			worktrees = append(worktrees, current)
		}
		current = Worktree{}
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "worktree "):
			current.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(ref, "refs/heads/")
		}
	}
	flush()

	return worktrees
}

// DeleteBranch deletes a local branch. Failures are reported but
// callers usually treat them as best-effort since the branch may
// already be gone.
func (s *Service) DeleteBranch(ctx context.Context, repoPath, branch string) error {
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "branch", "-D", branch)
	if err != nil {
		return errors.E("git.DeleteBranch", errors.KindGit, fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err))
	}
	return nil
}
