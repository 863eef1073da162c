// Package scaffold prepares project folders for loom sessions: it
// detects what a project needs (npm scripts, compose services, a
// database), writes the .loom.yml manifest, and can carve out a git
// worktree so scaffolded work stays off the main checkout.
package scaffold

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/loom-sh/loom/internal/config"
	"github.com/loom-sh/loom/internal/errors"
	pexec "github.com/loom-sh/loom/internal/exec"
	"github.com/loom-sh/loom/internal/git"
	"github.com/loom-sh/loom/internal/logger"
	"github.com/loom-sh/loom/internal/paths"
)

// Mode selects how much scaffolding to do.
type Mode string

const (
	// ModeAuto picks a mode from what is already in the directory.
	ModeAuto Mode = "auto"
	// ModeInit sets up a project from scratch: full detection, manifest,
	// folder registration, and database bootstrap.
	ModeInit Mode = "init"
	// ModeEnhance re-runs detection and folds new findings into an
	// existing manifest without clobbering manual edits.
	ModeEnhance Mode = "enhance"
	// ModeMinimal writes a bare manifest and nothing else.
	ModeMinimal Mode = "minimal"
)

// ParseMode converts a flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAuto, ModeInit, ModeEnhance, ModeMinimal:
		return Mode(s), nil
	case "":
		return ModeAuto, nil
	default:
		return "", errors.E(errors.Op("scaffold.ParseMode"), errors.KindInvalid,
			fmt.Sprintf("unknown mode %q (use init, enhance, minimal, or auto)", s))
	}
}

// Options controls a scaffold run.
type Options struct {
	Dir      string
	Mode     Mode
	Branch   string // when set, create a git worktree on this branch
	Database bool   // bring up the database service and create the dev database
	DryRun   bool   // report what would happen without touching anything
}

// Result reports what a scaffold run did (or, for a dry run, would do).
type Result struct {
	Mode         Mode
	Dir          string
	Manifest     *Manifest
	ManifestYAML string   // rendered manifest document
	WroteFiles   []string // files written (empty on dry run)
	Registered   bool     // project folder added to config
	WorktreePath string
	Branch       string
	Started      []string // compose services started
	DatabaseName string   // database created, if any
	Steps        []string // human-readable log of actions
}

// Engine runs scaffolding against project directories.
type Engine struct {
	executor pexec.CommandExecutor
	git      *git.Service
	store    *config.Store
}

// NewEngine returns an Engine using the given executor and config store.
func NewEngine(executor pexec.CommandExecutor, store *config.Store) *Engine {
	return &Engine{
		executor: executor,
		git:      git.NewService(executor),
		store:    store,
	}
}

// DetectMode resolves ModeAuto from the directory contents: an existing
// manifest means enhance, project files mean init, a bare directory
// means minimal.
func (e *Engine) DetectMode(dir string) Mode {
	if HasManifest(dir) {
		return ModeEnhance
	}
	if HasPackageJSON(dir) || FindComposeFile(dir) != "" {
		return ModeInit
	}
	return ModeMinimal
}

// Run scaffolds a project directory according to the options.
func (e *Engine) Run(ctx context.Context, opts Options) (*Result, error) {
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, errors.E(errors.Op("scaffold.Run"), errors.KindInvalid, err)
	}

	mode := opts.Mode
	if mode == "" || mode == ModeAuto {
		mode = e.DetectMode(dir)
	}
	logger.Log("Scaffold: Running mode=%s dir=%s dryRun=%v", mode, dir, opts.DryRun)

	res := &Result{Mode: mode, Dir: dir}

	manifest, err := e.buildManifest(dir, mode, res)
	if err != nil {
		return nil, err
	}
	res.Manifest = manifest

	data, err := manifest.Encode()
	if err != nil {
		return nil, errors.E(errors.Op("scaffold.Run"), errors.KindScaffold, err)
	}
	res.ManifestYAML = string(data)

	if opts.Branch != "" {
		if err := e.planWorktree(ctx, dir, opts, manifest, res); err != nil {
			return nil, err
		}
	}

	if opts.Database && mode != ModeMinimal && manifest.Database != nil {
		res.Steps = append(res.Steps,
			fmt.Sprintf("start service %s and create database %s", manifest.Database.Service, manifest.Database.Name))
	}

	if opts.DryRun {
		res.Steps = append(res.Steps, "dry run: nothing written")
		return res, nil
	}

	if err := WriteManifest(dir, manifest); err != nil {
		return nil, err
	}
	res.WroteFiles = append(res.WroteFiles, ManifestPath(dir))

	if mode == ModeInit {
		e.registerFolder(dir, manifest, res)
	}

	if opts.Branch != "" && res.WorktreePath != "" {
		defaultBranch := e.git.DefaultBranch(ctx, dir)
		if err := e.git.CreateWorktree(ctx, dir, opts.Branch, res.WorktreePath, defaultBranch); err != nil {
			return nil, err
		}
		res.Branch = opts.Branch
	}

	if opts.Database && mode != ModeMinimal && manifest.Database != nil {
		if err := e.bootstrapDatabase(ctx, dir, manifest.Database, res); err != nil {
			return nil, err
		}
	}

	logger.Log("Scaffold: Completed mode=%s dir=%s", mode, dir)
	return res, nil
}

// buildManifest produces the manifest for the resolved mode.
func (e *Engine) buildManifest(dir string, mode Mode, res *Result) (*Manifest, error) {
	base := &Manifest{
		Name:   filepath.Base(dir),
		Layout: config.LayoutSingle,
	}

	switch mode {
	case ModeMinimal:
		res.Steps = append(res.Steps, "write minimal manifest")
		return base, nil

	case ModeInit:
		detected, err := e.detect(dir, base)
		if err != nil {
			return nil, err
		}
		res.Steps = append(res.Steps, "write manifest from detection", "register project folder")
		return detected, nil

	case ModeEnhance:
		existing := base
		if HasManifest(dir) {
			loaded, err := LoadManifest(dir)
			if err != nil {
				return nil, err
			}
			existing = loaded
		}
		detected, err := e.detect(dir, base)
		if err != nil {
			return nil, err
		}
		existing.merge(detected)
		res.Steps = append(res.Steps, "merge detection into existing manifest")
		return existing, nil

	default:
		return nil, errors.E(errors.Op("scaffold.buildManifest"), errors.KindInvalid,
			fmt.Sprintf("unknown mode %q", mode))
	}
}

// detect fills a manifest from package.json and the compose file.
func (e *Engine) detect(dir string, base *Manifest) (*Manifest, error) {
	m := &Manifest{Name: base.Name, Layout: base.Layout}

	if HasPackageJSON(dir) {
		pkg, err := ReadPackageJSON(dir)
		if err != nil {
			return nil, err
		}
		if pkg.Name != "" {
			m.Name = pkg.Name
		}
		if len(pkg.Scripts) > 0 {
			m.Scripts = make(map[string]string, len(pkg.Scripts))
			for name := range pkg.Scripts {
				m.Scripts[name] = "npm run " + name
			}
		}
	}

	services, db, err := ReadComposeServices(dir)
	if err != nil {
		return nil, err
	}
	m.Services = services
	m.Database = db

	return m, nil
}

// planWorktree validates the branch request and picks the worktree
// location. The directory name carries a short unique suffix so
// repeated scaffolds of the same branch name never collide on disk.
func (e *Engine) planWorktree(ctx context.Context, dir string, opts Options, manifest *Manifest, res *Result) error {
	if err := git.ValidateBranchName(opts.Branch); err != nil {
		return errors.E(errors.Op("scaffold.Run"), errors.KindInvalid, err)
	}
	if !e.git.IsRepo(ctx, dir) {
		return errors.GitNotRepo(dir)
	}

	worktreesDir, err := paths.WorktreesDir()
	if err != nil {
		return errors.E(errors.Op("scaffold.Run"), errors.KindIO, err)
	}

	suffix := uuid.New().String()[:8]
	leaf := fmt.Sprintf("%s-%s", sanitizeDirName(manifest.Name), suffix)
	res.WorktreePath = filepath.Join(worktreesDir, leaf)
	res.Steps = append(res.Steps,
		fmt.Sprintf("create worktree %s on branch %s", res.WorktreePath, opts.Branch))
	return nil
}

// sanitizeDirName keeps worktree directory names filesystem-friendly.
func sanitizeDirName(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, " ", "-")
	if name == "" {
		name = "project"
	}
	return name
}

// registerFolder adds the project to the config store's folder list.
// An already-registered name is left alone.
func (e *Engine) registerFolder(dir string, manifest *Manifest, res *Result) {
	cfg := e.store.Load()
	if cfg.HasFolderName(manifest.Name) {
		logger.Log("Scaffold: Folder %s already registered", manifest.Name)
		return
	}

	folder := config.ProjectFolder{
		Path:     dir,
		Name:     manifest.Name,
		AutoMenu: cfg.Preferences.AutoMenu,
	}
	if err := e.store.AddProjectFolder(folder); err != nil {
		logger.Warn("Scaffold: Could not register folder %s: %v", manifest.Name, err)
		return
	}
	res.Registered = true
}

// bootstrapDatabase starts the database service and creates the dev
// database.
func (e *Engine) bootstrapDatabase(ctx context.Context, dir string, spec *DatabaseSpec, res *Result) error {
	if err := StartService(ctx, e.executor, dir, spec.Service); err != nil {
		return err
	}
	res.Started = append(res.Started, spec.Service)

	if err := CreateDatabase(ctx, e.executor, dir, spec); err != nil {
		return err
	}
	res.DatabaseName = spec.Name
	return nil
}
