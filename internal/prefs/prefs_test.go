package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePrefs(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), p)
	assert.False(t, p.SidebarCollapsed, "sidebar starts open")
}

func TestLoadDefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writePrefs(t, filepath.Join(home, ".config", "hurricane", "prefs.toml"), `theme = "Slate"`)

	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Slate", p.Theme)
	assert.Equal(t, "7d", p.MetricsPeriod)
}

func TestLoadFillsInvalidFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	writePrefs(t, path, "theme = \"  \"\nsidebar_collapsed = true\nmetrics_period = \"1y\"\n")

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Prefs{Theme: "Dracula", SidebarCollapsed: true, MetricsPeriod: "7d"}, p)
}

func TestLoadCorruptFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	writePrefs(t, path, "theme = [unterminated")

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), p)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.toml")
	want := Prefs{Theme: "Slate", SidebarCollapsed: true, MetricsPeriod: "90d"}

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, Save("", Prefs{Theme: "Slate"}))

	data, err := os.ReadFile(filepath.Join(home, ".config", "hurricane", "prefs.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Slate")
	assert.Contains(t, string(data), "metrics_period")
}

func TestSaveExpandsExplicitHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, Save("~/custom/prefs.toml", Prefs{Theme: "Slate", MetricsPeriod: "30d"}))

	p, err := Load(filepath.Join(home, "custom", "prefs.toml"))
	require.NoError(t, err)
	assert.Equal(t, "30d", p.MetricsPeriod)
}
