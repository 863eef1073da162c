package ui

import (
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// FlashType categorizes flash messages so each gets a distinct icon and color
type FlashType int

const (
	// FlashError is for operation failures
	FlashError FlashType = iota
	// FlashWarning is for recoverable problems
	FlashWarning
	// FlashInfo is for neutral notices
	FlashInfo
	// FlashSuccess is for completed operations
	FlashSuccess
)

// DefaultFlashDuration is how long a flash message stays visible
const DefaultFlashDuration = 4 * time.Second

// flashTickInterval is how often the expiry check runs while a flash is visible
const flashTickInterval = 500 * time.Millisecond

// FlashMessage is a transient status message shown in the footer in place
// of the keybindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg is sent periodically while a flash message is visible so the
// footer can clear it once expired
type FlashTickMsg time.Time

// FlashTick returns a command that sends a flash tick
func FlashTick() tea.Cmd {
	return tea.Tick(flashTickInterval, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	bindings     []KeyBinding
	hasSession   bool // Whether a session is selected
	listFocused  bool // Whether the session list has focus
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "enter", Desc: "attach"},
			{Key: "n", Desc: "new"},
			{Key: "r", Desc: "rename"},
			{Key: "a", Desc: "note"},
			{Key: "t", Desc: "theme"},
			{Key: "x", Desc: "kill"},
			{Key: "f", Desc: "folders"},
			{Key: "p", Desc: "prefs"},
			{Key: "q", Desc: "quit"},
		},
		listFocused: true,
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(hasSession, listFocused bool) {
	f.hasSession = hasSession
	f.listFocused = listFocused
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a flash message with the default duration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for a custom duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, duration time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  duration,
	}
}

// ClearFlash removes the current flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is currently set
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired clears the flash message if it has expired.
// Returns true if a message was cleared.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// flashIcon returns the icon for a flash type
func flashIcon(t FlashType) (string, color.Color) {
	switch t {
	case FlashError:
		return "✕", ColorError
	case FlashWarning:
		return "⚠", ColorWarning
	case FlashSuccess:
		return "✓", ColorSuccess
	default:
		return "ℹ", ColorInfo
	}
}

// View renders the footer
func (f *Footer) View() string {
	// Flash messages take priority over keybindings
	if f.flashMessage != nil {
		icon, color := flashIcon(f.flashMessage.Type)
		iconStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
		textStyle := lipgloss.NewStyle().Foreground(ColorText)
		content := iconStyle.Render(icon) + " " + textStyle.Render(f.flashMessage.Text)
		return FooterStyle.Width(f.width).Render(content)
	}

	var parts []string

	if !f.listFocused {
		// Preview focused - scrolling and copy shortcuts
		previewBindings := []KeyBinding{
			{Key: "↑/↓/j/k", Desc: "scroll"},
			{Key: "ctrl+u/d", Desc: "page"},
			{Key: "ctrl+y", Desc: "copy all"},
			{Key: "tab", Desc: "sessions"},
			{Key: "q", Desc: "quit"},
		}
		for _, b := range previewBindings {
			key := FooterKeyStyle.Render(b.Key)
			desc := FooterDescStyle.Render(": " + b.Desc)
			parts = append(parts, key+desc)
		}
	} else {
		for _, b := range f.bindings {
			// Skip session-specific bindings when no session is selected
			if (b.Key == "enter" || b.Key == "r" || b.Key == "a" || b.Key == "t" || b.Key == "x") && !f.hasSession {
				continue
			}

			key := FooterKeyStyle.Render(b.Key)
			desc := FooterDescStyle.Render(": " + b.Desc)
			parts = append(parts, key+desc)
		}
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
