// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/loom-sh/loom/internal/logger"
)

// notifier delivers the notification. Tests swap it out for a recorder.
var notifier func(title, message string, icon any) error = beeep.Notify

// SetNotifier replaces the delivery function
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores the default beeep-backed delivery
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	logger.Log("Notification: Sending notification - title=%q, message=%q", title, message)
	// Use empty string for icon - beeep handles platform defaults
	err := notifier(title, message, "")
	if err != nil {
		logger.Log("Notification: Failed to send notification: %v", err)
	}
	return err
}

// ScaffoldCompleted sends a notification that project scaffolding finished.
// Scaffolding can run npm install and database setup, so the user may have
// switched away while it worked.
func ScaffoldCompleted(projectName string) error {
	return Send("Loom", projectName+" is ready")
}
