// Package prefs stores dashboard preferences in
// ~/.config/hurricane/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/softwrhq/hurricane/internal/config"
)

// Prefs holds user preferences for the dashboard.
type Prefs struct {
	Theme            string `toml:"theme"`
	SidebarCollapsed bool   `toml:"sidebar_collapsed"`
	MetricsPeriod    string `toml:"metrics_period"`
}

const (
	defaultPrefsPath     = "~/.config/hurricane/prefs.toml"
	defaultTheme         = "Dracula"
	defaultMetricsPeriod = "7d"
)

var knownPeriods = []string{"7d", "30d", "90d"}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme, MetricsPeriod: defaultMetricsPeriod}
}

// Load reads preferences from path (empty for the default). Preferences are
// never worth failing startup over: a missing, unreadable or corrupt file
// yields defaults, and unknown values are replaced field by field.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults(), nil
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Defaults(), nil
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults(), nil
	}
	return p.normalized(), nil
}

func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.MetricsPeriod = strings.TrimSpace(p.MetricsPeriod)
	if !slices.Contains(knownPeriods, p.MetricsPeriod) {
		p.MetricsPeriod = defaultMetricsPeriod
	}
	return p
}

// Save writes p to path (empty for the default), creating the directory.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		p = defaultPrefsPath
	}
	return config.ExpandPath(p)
}
