package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Environments select the API origin.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Environment variables that override the config file.
const (
	EnvVarEnvironment = "HURRICANE_ENV"
	EnvVarAPIURL      = "HURRICANE_API_URL"
)

const (
	developmentBaseURL = "http://localhost:8080"
	productionBaseURL  = "http://api.hurricane.softwrhq.com"
)

// Config captures the settings hurricane reads at startup.
type Config struct {
	Environment     string
	APIBaseURL      string        // explicit origin; overrides Environment when set
	RequestTimeout  time.Duration // zero leaves requests unbounded
	LifecycleToasts bool
	RedirectDelay   time.Duration
	PollInterval    time.Duration
	LogFile         string
	SessionFile     string
	ToastMount      time.Duration
	ToastDisplay    time.Duration
	ToastExit       time.Duration
}

const (
	defaultConfigPath    = "~/.config/hurricane/config.toml"
	defaultLogFile       = "~/.local/state/hurricane/hurricane.log"
	defaultSessionFile   = "~/.local/state/hurricane/session.toml"
	defaultRedirectDelay = 4 * time.Second
	defaultPollInterval  = time.Minute
	defaultToastMount    = 10 * time.Millisecond
	defaultToastDisplay  = 3 * time.Second
	defaultToastExit     = 300 * time.Millisecond
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Environment:     EnvProduction,
		LifecycleToasts: true,
		RedirectDelay:   defaultRedirectDelay,
		PollInterval:    defaultPollInterval,
		LogFile:         mustExpand(defaultLogFile),
		SessionFile:     mustExpand(defaultSessionFile),
		ToastMount:      defaultToastMount,
		ToastDisplay:    defaultToastDisplay,
		ToastExit:       defaultToastExit,
	}
}

// Load locates and parses the hurricane config, falling back to defaults when
// missing. Environment variables are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg)
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Environment     string `toml:"environment"`
		APIBaseURL      string `toml:"api_base_url"`
		RequestTimeout  string `toml:"request_timeout"`
		LifecycleToasts *bool  `toml:"lifecycle_toasts"`
		RedirectDelay   string `toml:"redirect_delay"`
		PollInterval    string `toml:"poll_interval"`
		LogFile         string `toml:"log_file"`
		SessionFile     string `toml:"session_file"`
		Toast           struct {
			Mount   string `toml:"mount"`
			Display string `toml:"display"`
			Exit    string `toml:"exit"`
		} `toml:"toast"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if env := strings.TrimSpace(raw.Environment); env != "" {
		cfg.Environment = env
	}
	cfg.APIBaseURL = strings.TrimSpace(raw.APIBaseURL)
	if raw.LifecycleToasts != nil {
		cfg.LifecycleToasts = *raw.LifecycleToasts
	}
	if value := strings.TrimSpace(raw.LogFile); value != "" {
		cfg.LogFile = mustExpand(value)
	}
	if value := strings.TrimSpace(raw.SessionFile); value != "" {
		cfg.SessionFile = mustExpand(value)
	}

	durations := []struct {
		key   string
		value string
		dest  *time.Duration
	}{
		{"request_timeout", raw.RequestTimeout, &cfg.RequestTimeout},
		{"redirect_delay", raw.RedirectDelay, &cfg.RedirectDelay},
		{"poll_interval", raw.PollInterval, &cfg.PollInterval},
		{"toast.mount", raw.Toast.Mount, &cfg.ToastMount},
		{"toast.display", raw.Toast.Display, &cfg.ToastDisplay},
		{"toast.exit", raw.Toast.Exit, &cfg.ToastExit},
	}
	for _, d := range durations {
		if err := parseDuration(d.key, d.value, d.dest); err != nil {
			return Config{}, err
		}
	}

	return applyEnv(cfg)
}

// LoadDotEnv loads KEY=value pairs from the given files (default ".env")
// into the process environment without overriding variables already set.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// BaseURL returns the API origin for this configuration.
func (c Config) BaseURL() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	if c.Environment == EnvDevelopment {
		return developmentBaseURL
	}
	return productionBaseURL
}

// IsDevelopment reports whether the development API is targeted.
func (c Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

func applyEnv(cfg Config) (Config, error) {
	if env := strings.TrimSpace(os.Getenv(EnvVarEnvironment)); env != "" {
		cfg.Environment = env
	}
	if apiURL := strings.TrimSpace(os.Getenv(EnvVarAPIURL)); apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	cfg.Environment = normalizeEnvironment(cfg.Environment)
	if cfg.Environment == "" {
		return Config{}, fmt.Errorf("unknown environment (want %s or %s)", EnvDevelopment, EnvProduction)
	}
	return cfg, nil
}

func normalizeEnvironment(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", EnvDevelopment:
		return EnvDevelopment
	case "prod", EnvProduction:
		return EnvProduction
	default:
		return ""
	}
}

func parseDuration(key, value string, dest *time.Duration) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return fmt.Errorf("parse config: %s: %w", key, err)
	}
	if d < 0 {
		return fmt.Errorf("parse config: %s must not be negative", key)
	}
	*dest = d
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath trims path, replaces a leading ~ with the home directory and
// makes the result absolute. An empty path is an error.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
