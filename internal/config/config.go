// Package config persists Loom's settings as a single JSON document.
//
// The document lives at a fixed path under the user's home directory
// (see internal/paths) and is pretty-printed for hand inspection. There
// is no schema version: compatibility rests on merge-over-defaults at
// load time. The merge is shallow: a stored top-level field replaces the
// whole default field, so a partial preferences object from an older
// file drops default sub-fields. Unknown top-level keys from newer
// versions are carried through a load-modify-save cycle untouched.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/loom-sh/loom/internal/errors"
	"github.com/loom-sh/loom/internal/logger"
	"github.com/loom-sh/loom/internal/paths"
)

// Layout values for Preferences.DefaultLayout.
const (
	LayoutSingle = "single"
	LayoutSplit  = "split"
)

// ProjectFolder associates a filesystem path with a preferred session
// name. The list is advisory: entries need not match live sessions.
type ProjectFolder struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AutoMenu    bool   `json:"autoMenu"`
}

// Preferences holds user-tunable behavior.
type Preferences struct {
	DefaultLayout     string `json:"defaultLayout"`
	AutoMenu          bool   `json:"autoMenu"`
	ReconnectToRecent bool   `json:"reconnectToRecent"`
}

// Config is the persisted record.
type Config struct {
	FirstRun       bool            `json:"firstRun"`
	ProjectFolders []ProjectFolder `json:"projectFolders"`
	Preferences    Preferences     `json:"preferences"`
	LastSession    string          `json:"lastSession,omitempty"`

	// extra holds top-level keys this version doesn't know about, so a
	// newer config survives a round trip through an older binary.
	extra map[string]json.RawMessage
}

// DefaultConfig returns the compiled-in default record.
func DefaultConfig() *Config {
	return &Config{
		FirstRun:       true,
		ProjectFolders: []ProjectFolder{},
		Preferences: Preferences{
			DefaultLayout:     LayoutSingle,
			AutoMenu:          false,
			ReconnectToRecent: true,
		},
	}
}

// Layout resolves the effective layout. The shallow merge can leave
// DefaultLayout empty when an older file carried a partial preferences
// object, so anything but "split" means single.
func (c *Config) Layout() string {
	if c.Preferences.DefaultLayout == LayoutSplit {
		return LayoutSplit
	}
	return LayoutSingle
}

// HasFolderName reports whether a project folder with the given name exists.
func (c *Config) HasFolderName(name string) bool {
	for _, f := range c.ProjectFolders {
		if f.Name == name {
			return true
		}
	}
	return false
}

// FolderByName returns the project folder with the given name, or nil.
func (c *Config) FolderByName(name string) *ProjectFolder {
	for i := range c.ProjectFolders {
		if c.ProjectFolders[i].Name == name {
			return &c.ProjectFolders[i]
		}
	}
	return nil
}

// AddFolder appends a project folder. Returns false without mutating
// anything when the name duplicates an existing entry.
func (c *Config) AddFolder(f ProjectFolder) bool {
	if c.HasFolderName(f.Name) {
		return false
	}
	c.ProjectFolders = append(c.ProjectFolders, f)
	return true
}

// RemoveFolderAt removes the folder at index, preserving the relative
// order of the remaining entries. Returns false for an out-of-range index.
func (c *Config) RemoveFolderAt(index int) bool {
	if index < 0 || index >= len(c.ProjectFolders) {
		return false
	}
	c.ProjectFolders = append(c.ProjectFolders[:index], c.ProjectFolders[index+1:]...)
	return true
}

// decode builds a Config from stored JSON: defaults first, then each
// known top-level key present in the document replaces the whole field.
// Nested objects are NOT deep-merged; this reproduces the original
// tool's merge exactly.
func decode(data []byte) (*Config, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	for key, raw := range doc {
		switch key {
		case "firstRun":
			if err := json.Unmarshal(raw, &cfg.FirstRun); err != nil {
				return nil, fmt.Errorf("field firstRun: %w", err)
			}
		case "projectFolders":
			var folders []ProjectFolder
			if err := json.Unmarshal(raw, &folders); err != nil {
				return nil, fmt.Errorf("field projectFolders: %w", err)
			}
			if folders == nil {
				folders = []ProjectFolder{}
			}
			cfg.ProjectFolders = folders
		case "preferences":
			var prefs Preferences
			if err := json.Unmarshal(raw, &prefs); err != nil {
				return nil, fmt.Errorf("field preferences: %w", err)
			}
			cfg.Preferences = prefs
		case "lastSession":
			if err := json.Unmarshal(raw, &cfg.LastSession); err != nil {
				return nil, fmt.Errorf("field lastSession: %w", err)
			}
		default:
			if cfg.extra == nil {
				cfg.extra = make(map[string]json.RawMessage)
			}
			cfg.extra[key] = raw
		}
	}
	return cfg, nil
}

// encode serializes the record, re-emitting unknown keys alongside the
// known fields. Keys come out sorted; that keeps writes deterministic.
func encode(cfg *Config) ([]byte, error) {
	doc := make(map[string]json.RawMessage, len(cfg.extra)+4)
	for k, v := range cfg.extra {
		doc[k] = v
	}

	put := func(key string, v interface{}) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		doc[key] = raw
		return nil
	}

	if err := put("firstRun", cfg.FirstRun); err != nil {
		return nil, err
	}
	folders := cfg.ProjectFolders
	if folders == nil {
		folders = []ProjectFolder{}
	}
	if err := put("projectFolders", folders); err != nil {
		return nil, err
	}
	if err := put("preferences", cfg.Preferences); err != nil {
		return nil, err
	}
	if cfg.LastSession != "" {
		if err := put("lastSession", cfg.LastSession); err != nil {
			return nil, err
		}
	}

	return json.MarshalIndent(doc, "", "  ")
}

// Store reads and writes the config file. It is an injected service:
// the rest of the app receives a *Store rather than touching package
// globals, and tests point one at a temp directory.
type Store struct {
	mu       sync.Mutex
	filePath string
}

// NewStore creates a Store at the standard config path.
func NewStore() (*Store, error) {
	path, err := paths.ConfigFilePath()
	if err != nil {
		return nil, err
	}
	return &Store{filePath: path}, nil
}

// NewStoreAt creates a Store backed by an explicit file path.
// This is primarily used for testing.
func NewStoreAt(path string) *Store {
	return &Store{filePath: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.filePath
}

// Load reads the config from disk. It never fails: a missing, unreadable,
// or corrupt file degrades to the default record with a logged warning,
// keeping the tool usable at the cost of silently shedding damaged state.
func (s *Store) Load() *Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() *Config {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("config unreadable, using defaults: %v", err)
		}
		return DefaultConfig()
	}

	cfg, err := decode(data)
	if err != nil {
		logger.Warn("config corrupt, using defaults: %v", err)
		return DefaultConfig()
	}
	return cfg
}

// Save writes the config to disk, overwriting in place.
func (s *Store) Save(cfg *Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(cfg)
}

func (s *Store) save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return errors.ConfigSaveFailed(s.filePath, err)
	}

	data, err := encode(cfg)
	if err != nil {
		return errors.ConfigSaveFailed(s.filePath, err)
	}

	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return errors.ConfigSaveFailed(s.filePath, err)
	}
	return nil
}

// IsFirstRun reports whether the one-time setup flow has completed.
func (s *Store) IsFirstRun() bool {
	return s.Load().FirstRun
}

// MarkFirstRunComplete records that setup finished (or was skipped).
func (s *Store) MarkFirstRunComplete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.load()
	cfg.FirstRun = false
	return s.save(cfg)
}

// FactoryReset restores the default record, including firstRun=true.
// Idempotent; unknown keys from newer versions are discarded.
func (s *Store) FactoryReset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(DefaultConfig())
}

// AddProjectFolder appends a folder and persists. A duplicate name is
// rejected with no mutation of the stored document.
func (s *Store) AddProjectFolder(f ProjectFolder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.load()
	if !cfg.AddFolder(f) {
		return errors.DuplicateFolderName(f.Name)
	}
	return s.save(cfg)
}

// RemoveProjectFolder removes the folder at index and persists.
func (s *Store) RemoveProjectFolder(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.load()
	if !cfg.RemoveFolderAt(index) {
		return errors.E(errors.Op("config.RemoveProjectFolder"), errors.KindInvalid,
			fmt.Sprintf("no project folder at index %d", index))
	}
	return s.save(cfg)
}

// SetPreferences replaces the preferences record and persists.
func (s *Store) SetPreferences(p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.load()
	cfg.Preferences = p
	return s.save(cfg)
}

// SetLastSession records the most recently connected session and persists.
func (s *Store) SetLastSession(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.load()
	cfg.LastSession = name
	return s.save(cfg)
}
