// Package session persists the API login cookies between hurricane runs.
//
// The browser front end relies on the browser cookie store; the terminal
// client keeps the same cookies in ~/.local/state/hurricane/session.toml so
// that one-shot CLI commands and the dashboard share a login.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/softwrhq/hurricane/internal/config"
)

// Cookie is the persisted form of an http.Cookie.
type Cookie struct {
	Name     string    `toml:"name"`
	Value    string    `toml:"value"`
	Path     string    `toml:"path,omitempty"`
	Domain   string    `toml:"domain,omitempty"`
	Expires  time.Time `toml:"expires,omitempty"`
	Secure   bool      `toml:"secure,omitempty"`
	HTTPOnly bool      `toml:"http_only,omitempty"`
}

// File is the on-disk session document.
type File struct {
	BaseURL string    `toml:"base_url"`
	SavedAt time.Time `toml:"saved_at"`
	Cookies []Cookie  `toml:"cookies"`
}

// Load reads the session file at path. A missing file yields an empty session.
func Load(path string) (File, error) {
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return File{}, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("read session: %w", err)
	}
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse session: %w", err)
	}
	return f, nil
}

// Save writes the session file with owner-only permissions.
func Save(path string, f File) error {
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the session file. Removing a missing file is not an error.
func Clear(path string) error {
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Restore copies unexpired cookies from f into jar for base. Cookies saved
// for a different base URL are ignored.
func Restore(jar http.CookieJar, base *url.URL, f File, now time.Time) int {
	if jar == nil || base == nil || len(f.Cookies) == 0 {
		return 0
	}
	if f.BaseURL != "" && f.BaseURL != base.String() {
		return 0
	}
	cookies := make([]*http.Cookie, 0, len(f.Cookies))
	for _, c := range f.Cookies {
		if !c.Expires.IsZero() && !c.Expires.After(now) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		})
	}
	if len(cookies) > 0 {
		jar.SetCookies(base, cookies)
	}
	return len(cookies)
}

// Capture snapshots the cookies jar would send to base.
func Capture(jar http.CookieJar, base *url.URL, now time.Time) File {
	f := File{SavedAt: now.UTC()}
	if base != nil {
		f.BaseURL = base.String()
	}
	if jar == nil || base == nil {
		return f
	}
	// Jars only expose name and value on read.
	for _, c := range jar.Cookies(base) {
		f.Cookies = append(f.Cookies, Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	return f
}
