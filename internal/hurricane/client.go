package hurricane

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/softwrhq/hurricane/internal/toast"
)

// LoadingTracker brackets in-flight requests for the UI's loading indicator.
type LoadingTracker interface {
	BeginRequest() (done func())
}

// Navigator receives redirects the API flow asks for: site paths such as
// "/" or "/dashboard", or absolute URLs such as the OAuth consent page.
type Navigator interface {
	Navigate(target string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(target string)

// Navigate calls f(target).
func (f NavigatorFunc) Navigate(target string) { f(target) }

// Options configure a Client.
type Options struct {
	BaseURL string
	// Timeout bounds each request; zero leaves requests unbounded.
	Timeout   time.Duration
	Jar       http.CookieJar
	Notifier  toast.Notifier
	Loading   LoadingTracker
	Navigator Navigator
	// LifecycleToasts adds "started" and "completed" info toasts around the
	// outcome toast of every call.
	LifecycleToasts bool
	// RedirectDelay postpones redirects that follow a toast (logout, account
	// deletion, failed sign-in) so the toast can be read first.
	RedirectDelay time.Duration
	UserAgent     string
	Logger        *slog.Logger
}

// Client talks to the Hurricane HTTP API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	opts    Options
	logger  *slog.Logger
}

const (
	defaultBaseURL   = "http://localhost:8080"
	defaultUserAgent = "hurricane-cli/0.1"
	maxErrorBody     = 1 << 20
)

// NewClient builds a Client. A nil Jar gets a fresh in-memory cookie jar so
// the session cookie set by sign-in is sent on later calls.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	if opts.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		opts.Jar = jar
	}
	if opts.Notifier == nil {
		opts.Notifier = toast.Discard
	}
	if strings.TrimSpace(opts.UserAgent) == "" {
		opts.UserAgent = defaultUserAgent
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: opts.Timeout,
			Jar:     opts.Jar,
		},
		opts:   opts,
		logger: logger.With("component", "api"),
	}, nil
}

// WithNotifier returns a copy of the client that reports to n instead. The
// copy shares the HTTP client and cookie jar.
func (c *Client) WithNotifier(n toast.Notifier) *Client {
	if n == nil {
		n = toast.Discard
	}
	dup := *c
	dup.opts.Notifier = n
	return &dup
}

// BaseURL returns the API origin.
func (c *Client) BaseURL() *url.URL {
	dup := *c.baseURL
	return &dup
}

// Jar returns the cookie jar holding the session.
func (c *Client) Jar() http.CookieJar {
	return c.opts.Jar
}

// operation describes one API endpoint and the notifications around it.
type operation struct {
	name    string
	method  string
	path    string
	loading bool

	started   string
	success   string
	failure   string // fallback error text
	completed string
}

type request struct {
	query   url.Values
	body    any
	invalid error // set when arguments fail validation; no request is sent
}

// call runs one operation: loading bracket, HTTP exchange, notifications.
// Errors are always returned to the caller after being reported.
func (c *Client) call(ctx context.Context, op operation, req request, dest any) (err error) {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if c.opts.LifecycleToasts {
		c.notify(op.started, toast.Info)
	}
	if op.loading && c.opts.Loading != nil {
		done := c.opts.Loading.BeginRequest()
		defer done()
	}
	defer func() {
		if err != nil {
			c.logger.Warn("api call failed", "op", op.name, "error", err)
			c.notify(userMessage(err, op.failure), toast.Error)
		} else {
			c.notify(op.success, toast.Success)
		}
		if c.opts.LifecycleToasts {
			c.notify(op.completed, toast.Info)
		}
	}()

	if req.invalid != nil {
		return fmt.Errorf("%s: %w", op.name, req.invalid)
	}
	return c.do(ctx, op, req, dest)
}

func (c *Client) do(ctx context.Context, op operation, r request, dest any) error {
	rel := &url.URL{Path: op.path}
	if len(r.query) > 0 {
		rel.RawQuery = r.query.Encode()
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var body io.Reader
	if r.body != nil {
		encoded, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, op.method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", c.opts.UserAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("api request",
		"op", op.name,
		"method", op.method,
		"path", rel.String(),
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Op: op.name, Status: resp.StatusCode, Message: op.failure}
		var envelope errorEnvelope
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&envelope); err == nil {
			if text := strings.TrimSpace(envelope.text()); text != "" {
				apiErr.Message = text
			}
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.navigate("/")
		}
		return apiErr
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("decode response: empty body")
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) notify(message string, severity toast.Severity) {
	if message == "" {
		return
	}
	c.opts.Notifier.Enqueue(message, severity)
}

func (c *Client) navigate(target string) {
	if c.opts.Navigator == nil {
		return
	}
	c.opts.Navigator.Navigate(target)
}

// navigateLater redirects after RedirectDelay so a preceding toast stays on
// screen long enough to read.
func (c *Client) navigateLater(target string) {
	if c.opts.Navigator == nil {
		return
	}
	if c.opts.RedirectDelay <= 0 {
		c.opts.Navigator.Navigate(target)
		return
	}
	time.AfterFunc(c.opts.RedirectDelay, func() {
		c.opts.Navigator.Navigate(target)
	})
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
