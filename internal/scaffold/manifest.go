package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/loom-sh/loom/internal/errors"
)

// ManifestFileName is the per-project manifest written by loom scaffold.
const ManifestFileName = ".loom.yml"

// Manifest describes how loom should set up sessions for a project.
type Manifest struct {
	Name     string            `yaml:"name"`
	Layout   string            `yaml:"layout,omitempty"`
	Scripts  map[string]string `yaml:"scripts,omitempty"`
	Services []string          `yaml:"services,omitempty"`
	Database *DatabaseSpec     `yaml:"database,omitempty"`
}

// DatabaseSpec names the compose service that hosts the project
// database and the database to create inside it.
type DatabaseSpec struct {
	Service string `yaml:"service"`
	Kind    string `yaml:"kind,omitempty"` // postgres or mysql
	Name    string `yaml:"name,omitempty"`
}

// ManifestPath returns the manifest location for a project directory.
func ManifestPath(dir string) string {
	return filepath.Join(dir, ManifestFileName)
}

// HasManifest reports whether a project directory already carries a
// manifest.
func HasManifest(dir string) bool {
	_, err := os.Stat(ManifestPath(dir))
	return err == nil
}

// LoadManifest reads and parses the project manifest.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(ManifestPath(dir))
	if err != nil {
		return nil, errors.E(errors.Op("scaffold.LoadManifest"), errors.KindIO, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.E(errors.Op("scaffold.LoadManifest"), errors.KindScaffold,
			fmt.Sprintf("invalid manifest at %s", ManifestPath(dir)), err)
	}
	return &m, nil
}

// Encode renders the manifest as YAML.
func (m *Manifest) Encode() ([]byte, error) {
	return yaml.Marshal(m)
}

// WriteManifest writes the manifest into the project directory.
func WriteManifest(dir string, m *Manifest) error {
	data, err := m.Encode()
	if err != nil {
		return errors.E(errors.Op("scaffold.WriteManifest"), errors.KindScaffold, err)
	}
	if err := os.WriteFile(ManifestPath(dir), data, 0644); err != nil {
		return errors.E(errors.Op("scaffold.WriteManifest"), errors.KindIO, err)
	}
	return nil
}

// merge folds newly detected values into an existing manifest without
// clobbering anything the user wrote by hand. Existing keys win.
func (m *Manifest) merge(detected *Manifest) {
	if m.Name == "" {
		m.Name = detected.Name
	}
	if m.Layout == "" {
		m.Layout = detected.Layout
	}

	if len(detected.Scripts) > 0 {
		if m.Scripts == nil {
			m.Scripts = make(map[string]string, len(detected.Scripts))
		}
		for name, cmd := range detected.Scripts {
			if _, exists := m.Scripts[name]; !exists {
				m.Scripts[name] = cmd
			}
		}
	}

	existing := make(map[string]bool, len(m.Services))
	for _, svc := range m.Services {
		existing[svc] = true
	}
	for _, svc := range detected.Services {
		if !existing[svc] {
			m.Services = append(m.Services, svc)
		}
	}

	if m.Database == nil {
		m.Database = detected.Database
	}
}
