package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/loom-sh/loom/internal/errors"
	pexec "github.com/loom-sh/loom/internal/exec"
	"github.com/loom-sh/loom/internal/logger"
)

// composeFileNames are checked in order; the first match wins.
var composeFileNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// composeFile is the subset of a compose file loom parses.
type composeFile struct {
	Services map[string]composeService `yaml:"services"`
}

type composeService struct {
	Image string `yaml:"image"`
}

// FindComposeFile returns the compose file path for a project, or empty
// string when there is none.
func FindComposeFile(dir string) string {
	for _, name := range composeFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ReadComposeServices returns the service names declared in the
// project's compose file, sorted, plus a database spec if one of the
// services looks like a database.
func ReadComposeServices(dir string) ([]string, *DatabaseSpec, error) {
	path := FindComposeFile(dir)
	if path == "" {
		return nil, nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.E(errors.Op("scaffold.ReadComposeServices"), errors.KindIO, err)
	}

	var cf composeFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, nil, errors.E(errors.Op("scaffold.ReadComposeServices"), errors.KindScaffold,
			fmt.Sprintf("invalid compose file at %s", path), err)
	}

	names := make([]string, 0, len(cf.Services))
	for name := range cf.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, detectDatabase(dir, cf.Services), nil
}

// detectDatabase finds the first service whose image looks like a
// database we know how to bootstrap.
func detectDatabase(dir string, services map[string]composeService) *DatabaseSpec {
	names := make([]string, 0, len(services))
	for name := range services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		image := strings.ToLower(services[name].Image)
		var kind string
		switch {
		case strings.Contains(image, "postgres"):
			kind = "postgres"
		case strings.Contains(image, "mysql"), strings.Contains(image, "mariadb"):
			kind = "mysql"
		default:
			continue
		}
		return &DatabaseSpec{
			Service: name,
			Kind:    kind,
			Name:    defaultDatabaseName(dir),
		}
	}
	return nil
}

// defaultDatabaseName derives a development database name from the
// project directory, e.g. my-app -> my_app_dev.
func defaultDatabaseName(dir string) string {
	base := strings.ToLower(filepath.Base(dir))
	base = strings.ReplaceAll(base, "-", "_")
	base = strings.ReplaceAll(base, ".", "_")
	return base + "_dev"
}

// StartService brings up a single compose service detached.
func StartService(ctx context.Context, executor pexec.CommandExecutor, dir, service string) error {
	logger.Log("Scaffold: Starting compose service %s in %s", service, dir)
	output, err := executor.CombinedOutput(ctx, dir, "docker", "compose", "up", "-d", service)
	if err != nil {
		return errors.E(errors.Op("scaffold.StartService"), errors.KindScaffold,
			fmt.Sprintf("failed to start %s: %s", service, strings.TrimSpace(string(output))), err)
	}
	return nil
}

// CreateDatabase creates the development database inside the compose
// service. Already-existing databases are fine; bootstrap is meant to
// be re-runnable.
func CreateDatabase(ctx context.Context, executor pexec.CommandExecutor, dir string, spec *DatabaseSpec) error {
	logger.Log("Scaffold: Creating database %s in service %s", spec.Name, spec.Service)

	var args []string
	switch spec.Kind {
	case "postgres":
		args = []string{"compose", "exec", "-T", spec.Service, "createdb", "-U", "postgres", spec.Name}
	case "mysql":
		stmt := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", spec.Name)
		args = []string{"compose", "exec", "-T", spec.Service, "mysql", "-uroot", "-e", stmt}
	default:
		return errors.E(errors.Op("scaffold.CreateDatabase"), errors.KindScaffold,
			fmt.Sprintf("unsupported database kind %q", spec.Kind))
	}

	output, err := executor.CombinedOutput(ctx, dir, "docker", args...)
	if err != nil {
		msg := strings.ToLower(string(output))
		if strings.Contains(msg, "already exists") {
			logger.Log("Scaffold: Database %s already exists", spec.Name)
			return nil
		}
		return errors.E(errors.Op("scaffold.CreateDatabase"), errors.KindScaffold,
			fmt.Sprintf("failed to create %s: %s", spec.Name, strings.TrimSpace(string(output))), err)
	}
	return nil
}
