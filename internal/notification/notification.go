// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/decoy/internal/logger"
)

// AppName is the title of every notification.
const AppName = "decoy"

var (
	mu       sync.Mutex
	notifier = beeep.Notify
)

// SetNotifier replaces the function used to deliver notifications.
func SetNotifier(fn func(title, message string, icon any) error) {
	mu.Lock()
	defer mu.Unlock()
	notifier = fn
}

// ResetNotifier restores beeep.Notify.
func ResetNotifier() {
	SetNotifier(beeep.Notify)
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	mu.Lock()
	fn := notifier
	mu.Unlock()

	log := logger.WithComponent("notification")
	log.Debug("sending", "title", title, "message", message)
	// Empty icon lets beeep pick the platform default
	if err := fn(title, message, ""); err != nil {
		log.Warn("send failed", "error", err)
		return err
	}
	return nil
}

// ScamDetected announces that a turn was flagged as a scam.
func ScamDetected(score string, links, identifiers int) error {
	return Send(AppName, fmt.Sprintf("Scam detected (risk %s): %d links, %d identifiers so far", score, links, identifiers))
}
