// Package tmux wraps the tmux binary behind typed operations.
// Every operation builds an argument vector and hands it to a
// CommandExecutor; no command line is ever assembled as a shell string,
// so session names containing spaces or metacharacters are safe.
package tmux

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/loom-sh/loom/internal/errors"
	pexec "github.com/loom-sh/loom/internal/exec"
	"github.com/loom-sh/loom/internal/logger"
	"github.com/loom-sh/loom/internal/theme"
)

// User options stored on each session. tmux carries these alongside its
// own options, which makes session metadata survive loom restarts.
const (
	ThemeOption = "@loom_theme"
	NoteOption  = "@loom_note"
)

// listFormat is the -F format for list-sessions. Fields are tab-separated;
// none of them can contain a tab (theme names come from the built-in palette).
const listFormat = "#{session_name}\t#{session_created}\t#{session_attached}\t#{session_windows}\t#{@loom_theme}"

// Session is one row of tmux list-sessions output.
type Session struct {
	Name     string
	Created  time.Time
	Attached bool
	Windows  int
	Theme    string // value of @loom_theme, empty if never set
}

// Client runs tmux commands through an injected executor.
type Client struct {
	executor pexec.CommandExecutor
	bin      string
}

// NewClient returns a Client that shells out to "tmux".
func NewClient(executor pexec.CommandExecutor) *Client {
	return &Client{executor: executor, bin: "tmux"}
}

// InsideTmux reports whether the current process is already running
// inside a tmux client. Attaching nests in that case, so callers switch
// instead.
func InsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

// exactTarget returns a -t target that matches the session name exactly.
// Without the "=" prefix tmux does prefix matching, so "api" would also
// match a session named "api-staging".
func exactTarget(name string) string {
	return "=" + name
}

// StartServer starts the tmux server if it is not already running.
// Safe to call repeatedly.
func (c *Client) StartServer(ctx context.Context) error {
	output, err := c.executor.CombinedOutput(ctx, "", c.bin, "start-server")
	if err != nil {
		return errors.TmuxCommandFailed("start-server", fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err))
	}
	return nil
}

// HasSession reports whether a session with the exact name exists.
// A missing server counts as no sessions.
func (c *Client) HasSession(ctx context.Context, name string) bool {
	_, _, err := c.executor.Run(ctx, "", c.bin, "has-session", "-t", exactTarget(name))
	return err == nil
}

// ListSessions returns all sessions known to the tmux server.
// When the server is not running there are no sessions, so the error
// tmux reports for that case is treated as an empty list.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	stdout, stderr, err := c.executor.Run(ctx, "", c.bin, "list-sessions", "-F", listFormat)
	if err != nil {
		if isNoServerError(stderr) {
			return nil, nil
		}
		return nil, errors.TmuxCommandFailed("list-sessions", fmt.Errorf("%s: %w", strings.TrimSpace(string(stderr)), err))
	}

	var sessions []Session
	for _, line := range strings.Split(strings.TrimSpace(string(stdout)), "\n") {
		if line == "" {
			continue
		}
		sess, ok := parseSessionLine(line)
		if !ok {
			logger.Warn("Tmux: Skipping unparseable list-sessions line: %q", line)
			continue
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// isNoServerError recognizes the exit chatter tmux produces when no
// server is running. The exact wording has shifted across versions.
func isNoServerError(stderr []byte) bool {
	msg := strings.ToLower(string(stderr))
	return strings.Contains(msg, "no server running") ||
		strings.Contains(msg, "error connecting to") ||
		strings.Contains(msg, "failed to connect to server")
}

func parseSessionLine(line string) (Session, bool) {
	fields := strings.SplitN(line, "\t", 5)
	if len(fields) != 5 {
		return Session{}, false
	}

	created, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Session{}, false
	}
	attached, err := strconv.Atoi(fields[2])
	if err != nil {
		return Session{}, false
	}
	windows, err := strconv.Atoi(fields[3])
	if err != nil {
		return Session{}, false
	}

	return Session{
		Name:     fields[0],
		Created:  time.Unix(created, 0),
		Attached: attached > 0,
		Windows:  windows,
		Theme:    fields[4],
	}, true
}

// NewSession creates a detached session with the given name, starting in
// dir. The tmux server is started implicitly if needed.
func (c *Client) NewSession(ctx context.Context, name, dir string) error {
	logger.Log("Tmux: Creating session name=%s dir=%s", name, dir)
	args := []string{"new-session", "-d", "-s", name}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	output, err := c.executor.CombinedOutput(ctx, "", c.bin, args...)
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if strings.Contains(msg, "duplicate session") {
			return errors.SessionExists(name)
		}
		return errors.TmuxCommandFailed("new-session", fmt.Errorf("%s: %w", msg, err))
	}
	return nil
}

// SplitWindow splits the session's active window horizontally, with the
// new pane starting in dir. Used for the split default layout.
func (c *Client) SplitWindow(ctx context.Context, name, dir string) error {
	args := []string{"split-window", "-h", "-t", exactTarget(name)}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	output, err := c.executor.CombinedOutput(ctx, "", c.bin, args...)
	if err != nil {
		return errors.TmuxCommandFailed("split-window", fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err))
	}
	return nil
}

// KillSession destroys the named session.
func (c *Client) KillSession(ctx context.Context, name string) error {
	logger.Log("Tmux: Killing session name=%s", name)
	output, err := c.executor.CombinedOutput(ctx, "", c.bin, "kill-session", "-t", exactTarget(name))
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if strings.Contains(msg, "can't find session") || isNoServerError([]byte(msg)) {
			return errors.SessionNotFound(name)
		}
		return errors.TmuxCommandFailed("kill-session", fmt.Errorf("%s: %w", msg, err))
	}
	return nil
}

// RenameSession renames oldName to newName.
func (c *Client) RenameSession(ctx context.Context, oldName, newName string) error {
	logger.Log("Tmux: Renaming session %s -> %s", oldName, newName)
	output, err := c.executor.CombinedOutput(ctx, "", c.bin, "rename-session", "-t", exactTarget(oldName), newName)
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if strings.Contains(msg, "can't find session") || isNoServerError([]byte(msg)) {
			return errors.SessionNotFound(oldName)
		}
		return errors.TmuxCommandFailed("rename-session", fmt.Errorf("%s: %w", msg, err))
	}
	return nil
}

// Attach hands the terminal over to the named session, blocking until
// the user detaches. Inside an existing tmux client it switches instead,
// since attaching would nest.
func (c *Client) Attach(ctx context.Context, name string) error {
	if InsideTmux() {
		logger.Log("Tmux: Switching client to session=%s", name)
		output, err := c.executor.CombinedOutput(ctx, "", c.bin, "switch-client", "-t", exactTarget(name))
		if err != nil {
			return errors.TmuxCommandFailed("switch-client", fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err))
		}
		return nil
	}

	logger.Log("Tmux: Attaching to session=%s", name)
	if err := c.executor.RunInteractive(ctx, "", c.bin, "attach-session", "-t", exactTarget(name)); err != nil {
		return errors.TmuxCommandFailed("attach-session", err)
	}
	return nil
}

// SetOption sets a session option (or @-prefixed user option) on the
// named session.
func (c *Client) SetOption(ctx context.Context, name, option, value string) error {
	output, err := c.executor.CombinedOutput(ctx, "", c.bin, "set-option", "-t", exactTarget(name), option, value)
	if err != nil {
		return errors.TmuxCommandFailed("set-option", fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err))
	}
	return nil
}

// ShowOption returns the value of a session option on the named session.
// Unset options return the empty string, not an error.
func (c *Client) ShowOption(ctx context.Context, name, option string) (string, error) {
	stdout, err := c.executor.Output(ctx, "", c.bin, "show-options", "-t", exactTarget(name), "-qv", option)
	if err != nil {
		return "", errors.TmuxCommandFailed("show-options", err)
	}
	return strings.TrimRight(string(stdout), "\n"), nil
}

// ApplyTheme colors the session's status bar and pane borders from the
// theme, and records the theme name in @loom_theme so it survives a
// restart of loom.
func (c *Client) ApplyTheme(ctx context.Context, name string, th theme.Theme) error {
	logger.Log("Tmux: Applying theme %s to session=%s", th.Name, name)

	statusStyle := fmt.Sprintf("bg=%s,fg=%s", th.Background, th.Foreground)
	if err := c.SetOption(ctx, name, "status-style", statusStyle); err != nil {
		return err
	}
	if err := c.SetOption(ctx, name, "pane-active-border-style", "fg="+th.Accent); err != nil {
		return err
	}
	if err := c.SetOption(ctx, name, "message-style", fmt.Sprintf("bg=%s,fg=%s", th.Accent, th.Background)); err != nil {
		return err
	}
	return c.SetOption(ctx, name, ThemeOption, th.Name)
}

// CapturePane returns the contents of the session's active pane,
// including up to historyLines of scrollback, with ANSI color sequences
// preserved.
func (c *Client) CapturePane(ctx context.Context, name string, historyLines int) (string, error) {
	args := []string{"capture-pane", "-p", "-e", "-t", exactTarget(name)}
	if historyLines > 0 {
		args = append(args, "-S", fmt.Sprintf("-%d", historyLines))
	}
	stdout, stderr, err := c.executor.Run(ctx, "", c.bin, args...)
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		if strings.Contains(msg, "can't find") || isNoServerError(stderr) {
			return "", errors.SessionNotFound(name)
		}
		return "", errors.TmuxCommandFailed("capture-pane", fmt.Errorf("%s: %w", msg, err))
	}
	return string(stdout), nil
}
