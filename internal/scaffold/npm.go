package scaffold

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/loom-sh/loom/internal/errors"
	pexec "github.com/loom-sh/loom/internal/exec"
)

// PackageJSON is the subset of package.json loom cares about.
type PackageJSON struct {
	Name    string            `json:"name"`
	Scripts map[string]string `json:"scripts"`
}

// HasPackageJSON reports whether a directory contains a package.json.
func HasPackageJSON(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "package.json"))
	return err == nil
}

// ReadPackageJSON parses the package.json in a project directory.
func ReadPackageJSON(dir string) (*PackageJSON, error) {
	path := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.E(errors.Op("scaffold.ReadPackageJSON"), errors.KindIO, err)
	}

	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, errors.E(errors.Op("scaffold.ReadPackageJSON"), errors.KindScaffold,
			"invalid package.json", err)
	}
	return &pkg, nil
}

// ScriptNames returns script names sorted for a stable menu order.
func ScriptNames(scripts map[string]string) []string {
	names := make([]string, 0, len(scripts))
	for name := range scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunScript runs an npm script interactively in the project directory,
// handing it the terminal until it exits.
func RunScript(ctx context.Context, executor pexec.CommandExecutor, dir, script string) error {
	if err := executor.RunInteractive(ctx, dir, "npm", "run", script); err != nil {
		return errors.E(errors.Op("scaffold.RunScript"), errors.KindScaffold,
			"npm run "+script+" failed", err)
	}
	return nil
}
