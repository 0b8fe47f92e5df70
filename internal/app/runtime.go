package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/softwrhq/hurricane/internal/config"
	"github.com/softwrhq/hurricane/internal/hurricane"
	"github.com/softwrhq/hurricane/internal/prefs"
	"github.com/softwrhq/hurricane/internal/session"
	"github.com/softwrhq/hurricane/internal/state"
	"github.com/softwrhq/hurricane/internal/toast"
)

// Mode selects how notifications and logs are surfaced.
type Mode int

const (
	// ModeTUI queues toasts for the dashboard and logs to the log file.
	ModeTUI Mode = iota
	// ModeCLI logs toasts immediately and logs to stderr.
	ModeCLI
)

// Options configure the hurricane runtime.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/hurricane/prefs.toml
	EnvFile    string // empty uses .env in the working directory
	PollEvery  time.Duration
	Verbose    bool
	Stderr     io.Writer
	// Navigator receives redirects requested by API calls.
	Navigator hurricane.Navigator
	// OnToast runs whenever the toast queue changes (TUI mode only).
	OnToast func()
}

// Runtime is the wired set of shared objects for one process.
type Runtime struct {
	Config config.Config
	Prefs  prefs.Prefs
	Store  *state.Store
	Toasts *toast.Queue // nil in CLI mode
	Client *hurricane.Client
	Logger *slog.Logger

	prefsPath string
	closers   []func() error
}

// Setup loads configuration, preferences and the saved session, then builds
// the store and API client.
func Setup(opts Options, mode Mode) (*Runtime, error) {
	envFiles := []string{".env"}
	if strings.TrimSpace(opts.EnvFile) != "" {
		envFiles = []string{opts.EnvFile}
	}
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	rt := &Runtime{Config: cfg, prefsPath: opts.PrefsPath}

	logger, closeLog, err := newLogger(cfg, mode, opts)
	if err != nil {
		return nil, err
	}
	rt.Logger = logger
	rt.closers = append(rt.closers, closeLog)

	rt.Prefs, _ = prefs.Load(opts.PrefsPath)

	var notifier toast.Notifier = toast.LogNotifier{Logger: logger}
	if mode == ModeTUI {
		qopts := []toast.Option{toast.WithTimings(toast.Timings{
			Mount:   cfg.ToastMount,
			Display: cfg.ToastDisplay,
			Exit:    cfg.ToastExit,
		})}
		if opts.OnToast != nil {
			qopts = append(qopts, toast.WithOnChange(opts.OnToast))
		}
		rt.Toasts = toast.NewQueue(qopts...)
		notifier = rt.Toasts
	}

	rt.Store = state.NewStore(cfg.BaseURL(), rt.Toasts)
	rt.Store.SetSidebarOpen(!rt.Prefs.SidebarCollapsed)
	rt.Store.SetMetricsPeriod(rt.Prefs.MetricsPeriod)

	client, err := hurricane.NewClient(hurricane.Options{
		BaseURL:         cfg.BaseURL(),
		Timeout:         cfg.RequestTimeout,
		Notifier:        notifier,
		Loading:         rt.Store,
		Navigator:       opts.Navigator,
		LifecycleToasts: cfg.LifecycleToasts,
		RedirectDelay:   cfg.RedirectDelay,
		Logger:          logger,
	})
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}
	rt.Client = client

	saved, err := session.Load(cfg.SessionFile)
	if err != nil {
		logger.Warn("ignoring saved session", "path", cfg.SessionFile, "error", err)
	} else if n := session.Restore(client.Jar(), client.BaseURL(), saved, time.Now()); n > 0 {
		logger.Debug("session restored", "cookies", n)
	}

	return rt, nil
}

// SaveSession writes the current cookies so the next run stays signed in.
func (rt *Runtime) SaveSession() error {
	f := session.Capture(rt.Client.Jar(), rt.Client.BaseURL(), time.Now())
	if len(f.Cookies) == 0 {
		return session.Clear(rt.Config.SessionFile)
	}
	return session.Save(rt.Config.SessionFile, f)
}

// SavePrefs persists UI preferences from the current store state.
func (rt *Runtime) SavePrefs(theme string) error {
	rt.Prefs.Theme = theme
	rt.Prefs.SidebarCollapsed = !rt.Store.SidebarOpen()
	rt.Prefs.MetricsPeriod = rt.Store.MetricsPeriod()
	return prefs.Save(rt.prefsPath, rt.Prefs)
}

// Close logs notifications that never reached the screen, saves the
// session and releases the log file.
func (rt *Runtime) Close() error {
	var errs []error
	if rt.Toasts != nil {
		for _, t := range rt.Toasts.Pending() {
			rt.Logger.Info("unseen notification", "message", t.Message, "severity", string(t.Severity))
		}
	}
	if rt.Client != nil {
		if err := rt.SaveSession(); err != nil {
			errs = append(errs, fmt.Errorf("save session: %w", err))
		}
	}
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}

func newLogger(cfg config.Config, mode Mode, opts Options) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if opts.Verbose || cfg.IsDevelopment() {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if mode == ModeCLI {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		logger := slog.New(slog.NewTextHandler(w, handlerOpts))
		slog.SetDefault(logger)
		return logger, func() error { return nil }, nil
	}

	// The dashboard owns the terminal, so logs go to a file.
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(file, handlerOpts))
	slog.SetDefault(logger)
	return logger, file.Close, nil
}
