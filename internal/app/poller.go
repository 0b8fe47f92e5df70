package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/softwrhq/hurricane/internal/state"
)

const (
	defaultPollInterval = time.Minute
	maxBackoff          = 5 * time.Minute
)

// PollerOptions configure StartPoller.
type PollerOptions struct {
	Interval time.Duration
	// Period returns the metrics window to request on each refresh.
	Period func() string
	// OnRefresh runs after every refresh attempt.
	OnRefresh func(error)
	Logger    *slog.Logger
}

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence, backing off while the API keeps failing. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, src Source, opts PollerOptions) {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "poller")

	go func() {
		for {
			period := ""
			if opts.Period != nil {
				period = opts.Period()
			}
			err := Refresh(ctx, store, src, period)
			if err != nil && ctx.Err() == nil {
				logger.Warn("refresh failed", "error", err, "failures", store.Snapshot().ConsecutiveFailures)
			}
			if opts.OnRefresh != nil {
				opts.OnRefresh(err)
			}

			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// calculateBackoff doubles base for each consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 || base >= maxBackoff {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
