package toast

import (
	"context"
	"log/slog"
)

// Notifier accepts user-facing notifications.
type Notifier interface {
	Enqueue(message string, severity Severity)
}

// Discard drops every notification. Background refreshes use it so polling
// does not flood the display queue.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Enqueue(string, Severity) {}

// LogNotifier writes notifications straight to a structured logger. One-shot
// CLI commands use it because they exit long before a queued toast would be
// shown.
type LogNotifier struct {
	Logger *slog.Logger
}

// Enqueue logs the message at a level matching its severity. Empty messages
// carry no content outside the display queue and are ignored.
func (n LogNotifier) Enqueue(message string, severity Severity) {
	if message == "" {
		return
	}
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(context.Background(), levelFor(severity), message, "severity", string(severity))
}

func levelFor(severity Severity) slog.Level {
	switch severity {
	case Error:
		return slog.LevelError
	case Warning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
