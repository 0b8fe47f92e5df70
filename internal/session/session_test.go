package session

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Empty(t, f.Cookies)
	assert.Empty(t, f.BaseURL)
}

func TestSaveLoadRoundTripAndPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.toml")
	want := File{
		BaseURL: "http://localhost:8080",
		SavedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Cookies: []Cookie{{Name: "sid", Value: "abc", Path: "/"}},
	}
	require.NoError(t, Save(path, want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want.BaseURL, got.BaseURL)
	assert.True(t, want.SavedAt.Equal(got.SavedAt))
	require.Len(t, got.Cookies, 1)
	assert.Equal(t, "sid", got.Cookies[0].Name)
	assert.Equal(t, "abc", got.Cookies[0].Value)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("cookies = [[["), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, Save(path, File{BaseURL: "http://x"}))
	require.NoError(t, Clear(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, Clear(path), "clearing twice")
}

func TestCaptureRestore(t *testing.T) {
	base := mustURL(t, "http://localhost:8080")
	now := time.Now()

	src, err := cookiejar.New(nil)
	require.NoError(t, err)
	src.SetCookies(base, []*http.Cookie{{Name: "sid", Value: "abc", Path: "/"}})

	f := Capture(src, base, now)
	assert.Equal(t, "http://localhost:8080", f.BaseURL)
	require.Len(t, f.Cookies, 1)

	dst, err := cookiejar.New(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, Restore(dst, base, f, now))
	cookies := dst.Cookies(base)
	require.Len(t, cookies, 1)
	assert.Equal(t, "abc", cookies[0].Value)
}

func TestRestoreSkipsExpiredAndForeignSessions(t *testing.T) {
	base := mustURL(t, "http://localhost:8080")
	now := time.Now()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	expired := File{
		BaseURL: base.String(),
		Cookies: []Cookie{{Name: "sid", Value: "old", Expires: now.Add(-time.Hour)}},
	}
	assert.Equal(t, 0, Restore(jar, base, expired, now))

	foreign := File{
		BaseURL: "http://api.hurricane.softwrhq.com",
		Cookies: []Cookie{{Name: "sid", Value: "prod"}},
	}
	assert.Equal(t, 0, Restore(jar, base, foreign, now))
	assert.Empty(t, jar.Cookies(base))
}

func TestSaveExpandsHomeDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, Save("~/state/session.toml", File{BaseURL: "http://localhost:8080"}))

	_, err := os.Stat(filepath.Join(home, "state", "session.toml"))
	require.NoError(t, err)

	f, err := Load("~/state/session.toml")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", f.BaseURL)
}

func TestEmptyPathIsRejected(t *testing.T) {
	_, err := Load("  ")
	assert.Error(t, err)
	assert.Error(t, Save("", File{}))
}
