// Package session implements loom's session operations on top of the
// tmux client. The Manager owns the create/list/rename/annotate/destroy
// lifecycle and keeps the theme and last-session bookkeeping consistent.
package session

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/loom-sh/loom/internal/config"
	"github.com/loom-sh/loom/internal/errors"
	"github.com/loom-sh/loom/internal/logger"
	"github.com/loom-sh/loom/internal/theme"
	"github.com/loom-sh/loom/internal/tmux"
)

// MaxSessionNameLength is the maximum length for session names.
// tmux has no hard limit, but long names wreck the status bar.
const MaxSessionNameLength = 50

// ValidateSessionName checks whether a name is usable as a tmux session
// name. tmux silently rewrites "." and ":" (they collide with its
// target syntax), so those are rejected up front and the user is asked
// again.
func ValidateSessionName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("session name cannot be empty")
	}

	if len(name) > MaxSessionNameLength {
		return fmt.Errorf("session name too long (max %d characters)", MaxSessionNameLength)
	}

	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("session name cannot start with '-'")
	}

	if strings.ContainsAny(name, ".:") {
		return fmt.Errorf("session name cannot contain '.' or ':'")
	}

	if strings.ContainsAny(name, "\t\n\r") {
		return fmt.Errorf("session name cannot contain tabs or newlines")
	}

	return nil
}

// Session is a tmux session as loom presents it: the raw tmux row plus
// the resolved theme.
type Session struct {
	Name     string
	Created  int64 // unix seconds, for sorting and display
	Attached bool
	Windows  int
	Theme    theme.Theme
}

// Manager performs session operations. All collaborators are injected;
// the Manager holds no global state.
type Manager struct {
	client  *tmux.Client
	store   *config.Store
	palette theme.Palette
}

// NewManager returns a Manager over the given tmux client, config
// store, and theme palette.
func NewManager(client *tmux.Client, store *config.Store, palette theme.Palette) *Manager {
	return &Manager{
		client:  client,
		store:   store,
		palette: palette,
	}
}

// ThemeFor returns the theme loom assigns to a session name. Assignment
// is deterministic, so the same name always maps to the same theme.
func (m *Manager) ThemeFor(name string) theme.Theme {
	return m.palette.For(name)
}

// resolveTheme prefers the theme recorded on the session (it survives
// renames done behind loom's back) and falls back to the deterministic
// assignment.
func (m *Manager) resolveTheme(sess tmux.Session) theme.Theme {
	if sess.Theme != "" {
		if th, ok := m.palette.ByName(sess.Theme); ok {
			return th
		}
	}
	return m.palette.For(sess.Name)
}

// List returns all sessions sorted by name.
func (m *Manager) List(ctx context.Context) ([]Session, error) {
	raw, err := m.client.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	sessions := make([]Session, 0, len(raw))
	for _, r := range raw {
		sessions = append(sessions, Session{
			Name:     r.Name,
			Created:  r.Created.Unix(),
			Attached: r.Attached,
			Windows:  r.Windows,
			Theme:    m.resolveTheme(r),
		})
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Name < sessions[j].Name
	})
	return sessions, nil
}

// Create makes a new detached session with the deterministic theme
// applied. The layout is config.LayoutSingle or config.LayoutSplit.
func (m *Manager) Create(ctx context.Context, name, dir, layout string) error {
	if err := ValidateSessionName(name); err != nil {
		return errors.E(errors.Op("session.Create"), errors.KindInvalid, err)
	}
	if m.client.HasSession(ctx, name) {
		return errors.SessionExists(name)
	}

	logger.Log("Session: Creating name=%s dir=%s layout=%s", name, dir, layout)
	if err := m.client.NewSession(ctx, name, dir); err != nil {
		return err
	}

	if layout == config.LayoutSplit {
		if err := m.client.SplitWindow(ctx, name, dir); err != nil {
			// The session exists and is usable; the split is cosmetic.
			logger.Warn("Session: Split layout failed for %s: %v", name, err)
		}
	}

	th := m.palette.For(name)
	if err := m.client.ApplyTheme(ctx, name, th); err != nil {
		logger.Warn("Session: Theme apply failed for %s: %v", name, err)
	}
	return nil
}

// Ensure creates the session if it does not already exist. Used by the
// connect flow, where a missing session is an invitation rather than an
// error.
func (m *Manager) Ensure(ctx context.Context, name, dir, layout string) (created bool, err error) {
	if m.client.HasSession(ctx, name) {
		return false, nil
	}
	if err := m.Create(ctx, name, dir, layout); err != nil {
		return false, err
	}
	return true, nil
}

// Attach hands the terminal to the session, creating it first if
// needed, and records it as the most recent session. Blocks until the
// user detaches.
func (m *Manager) Attach(ctx context.Context, name, dir, layout string) error {
	if _, err := m.Ensure(ctx, name, dir, layout); err != nil {
		return err
	}

	// Record before attaching; attach blocks until detach and the
	// record should survive even a killed terminal.
	if err := m.store.SetLastSession(name); err != nil {
		logger.Warn("Session: Could not record last session: %v", err)
	}

	return m.client.Attach(ctx, name)
}

// Rename renames a session and re-applies the deterministic theme,
// since the assignment follows the name. Notes travel with the session
// automatically because tmux stores them as session options.
func (m *Manager) Rename(ctx context.Context, oldName, newName string) error {
	if err := ValidateSessionName(newName); err != nil {
		return errors.E(errors.Op("session.Rename"), errors.KindInvalid, err)
	}
	if oldName == newName {
		return nil
	}
	if m.client.HasSession(ctx, newName) {
		return errors.SessionExists(newName)
	}

	if err := m.client.RenameSession(ctx, oldName, newName); err != nil {
		return err
	}

	th := m.palette.For(newName)
	if err := m.client.ApplyTheme(ctx, newName, th); err != nil {
		logger.Warn("Session: Theme re-apply failed for %s: %v", newName, err)
	}

	cfg := m.store.Load()
	if cfg.LastSession == oldName {
		if err := m.store.SetLastSession(newName); err != nil {
			logger.Warn("Session: Could not update last session: %v", err)
		}
	}
	return nil
}

// Destroy kills a session and clears it from the last-session record
// if it was there.
func (m *Manager) Destroy(ctx context.Context, name string) error {
	if err := m.client.KillSession(ctx, name); err != nil {
		return err
	}

	cfg := m.store.Load()
	if cfg.LastSession == name {
		if err := m.store.SetLastSession(""); err != nil {
			logger.Warn("Session: Could not clear last session: %v", err)
		}
	}
	return nil
}

// Note returns the annotation stored on a session, or empty string.
func (m *Manager) Note(ctx context.Context, name string) (string, error) {
	return m.client.ShowOption(ctx, name, tmux.NoteOption)
}

// SetNote stores an annotation on a session. Notes are flattened to a
// single line; tmux option values do not round-trip newlines reliably.
func (m *Manager) SetNote(ctx context.Context, name, note string) error {
	note = strings.Join(strings.Fields(note), " ")
	return m.client.SetOption(ctx, name, tmux.NoteOption, note)
}

// ApplyTheme re-applies the deterministic theme for a session and
// returns the theme that was applied.
func (m *Manager) ApplyTheme(ctx context.Context, name string) (theme.Theme, error) {
	th := m.palette.For(name)
	if err := m.client.ApplyTheme(ctx, name, th); err != nil {
		return theme.Theme{}, err
	}
	return th, nil
}

// SetTheme applies a chosen theme to a session, overriding the
// deterministic assignment. The override rides along on the session
// itself, so it survives loom restarts but not a session kill.
func (m *Manager) SetTheme(ctx context.Context, name string, th theme.Theme) error {
	return m.client.ApplyTheme(ctx, name, th)
}

// Preview captures the session's active pane with scrollback for the
// preview pane.
func (m *Manager) Preview(ctx context.Context, name string, lines int) (string, error) {
	return m.client.CapturePane(ctx, name, lines)
}

// LastSession returns the name of the most recently attached session,
// or empty string, along with whether it still exists.
func (m *Manager) LastSession(ctx context.Context) (string, bool) {
	name := m.store.Load().LastSession
	if name == "" {
		return "", false
	}
	return name, m.client.HasSession(ctx, name)
}
