package app

import (
	"context"
	"fmt"

	"github.com/softwrhq/hurricane/internal/toast"
	"github.com/softwrhq/hurricane/internal/ui"
)

// Run boots the hurricane dashboard until the context is cancelled or the
// user quits.
func Run(ctx context.Context, opts Options) (err error) {
	bridge := ui.NewBridge()
	opts.Navigator = bridge
	opts.OnToast = bridge.Redraw

	rt, err := Setup(opts, ModeTUI)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	rt.Logger.Info("dashboard starting", "base_url", rt.Store.BaseURL(), "environment", rt.Config.Environment)

	// Background refreshes stay silent; user-triggered calls toast.
	silent := rt.Client.WithNotifier(toast.Discard)

	interval := rt.Config.PollInterval
	if opts.PollEvery > 0 {
		interval = opts.PollEvery
	}

	// Do initial refresh to populate store before UI starts
	if err := Refresh(ctx, rt.Store, silent, rt.Store.MetricsPeriod()); err != nil {
		rt.Logger.Warn("initial refresh failed", "error", err)
	}

	StartPoller(ctx, rt.Store, silent, PollerOptions{
		Interval:  interval,
		Period:    rt.Store.MetricsPeriod,
		OnRefresh: func(error) { bridge.Redraw() },
		Logger:    rt.Logger,
	})

	uiOpts := ui.Options{
		Context:   ctx,
		API:       rt.Client,
		Store:     rt.Store,
		Bridge:    bridge,
		ThemeName: rt.Prefs.Theme,
		LogFile:   rt.Config.LogFile,
		Refresh: func(ctx context.Context) error {
			return RefreshAndNotify(ctx, rt.Store, silent, rt.Store.MetricsPeriod(), rt.Toasts)
		},
		SavePrefs:   rt.SavePrefs,
		SaveSession: rt.SaveSession,
		Logger:      rt.Logger,
	}
	if err := ui.Run(uiOpts); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
