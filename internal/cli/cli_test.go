package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softwrhq/hurricane/internal/hurricane"
)

type recorded struct {
	method string
	path   string
	query  string
	body   map[string]any
}

// testServer answers each path with the given JSON body and records
// every request.
func testServer(t *testing.T, routes map[string]string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &rec.body)
		}
		calls = append(calls, rec)

		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"no route"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func execute(t *testing.T, baseURL string, args ...string) (string, string, error) {
	t.Helper()
	return executeIn(t, t.TempDir(), baseURL, args...)
}

func executeIn(t *testing.T, dir, baseURL string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HURRICANE_ENV", "")
	t.Setenv("HURRICANE_API_URL", "")

	cfgPath := filepath.Join(dir, "config.toml")
	cfg := strings.Join([]string{
		`api_base_url = "` + baseURL + `"`,
		`lifecycle_toasts = false`,
		`log_file = "` + filepath.Join(dir, "hurricane.log") + `"`,
		`session_file = "` + filepath.Join(dir, "session.toml") + `"`,
	}, "\n")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{
		"--config", cfgPath,
		"--prefs", filepath.Join(dir, "prefs.toml"),
		"--env-file", filepath.Join(dir, "missing.env"),
	}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestKeywordsList(t *testing.T) {
	srv, calls := testServer(t, map[string]string{
		"/api/user/keywords/get": `{"data":{"keywords":[{"id":1,"keyword_name":"golang"},{"id":2,"keyword_name":"tui"}]}}`,
	})

	out, stderr, err := execute(t, srv.URL, "keywords")
	require.NoError(t, err)
	assert.Contains(t, out, "KEYWORD")
	assert.Contains(t, out, "golang")
	assert.Contains(t, out, "tui")
	assert.Contains(t, stderr, "Keywords fetched successfully")
	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodGet, (*calls)[0].method)
}

func TestSubredditsSetSendsAllTerms(t *testing.T) {
	srv, calls := testServer(t, map[string]string{
		"/api/user/subreddits/update": `{"data":[{"id":1,"subreddit_name":"golang"},{"id":2,"subreddit_name":"commandline"}]}`,
	})

	out, _, err := execute(t, srv.URL, "subreddits", "set", "golang", "commandline")
	require.NoError(t, err)
	assert.Contains(t, out, "r/golang")
	assert.Contains(t, out, "r/commandline")

	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodPost, (*calls)[0].method)
	assert.Equal(t, []any{"golang", "commandline"}, (*calls)[0].body["subreddits"])
}

func TestLeadsSortedByQuality(t *testing.T) {
	srv, _ := testServer(t, map[string]string{
		"/api/user/leads/get": `{"data":{"leads":[
			{"id":"low","title":"Low","subreddit":"golang","quality_score":"0.20"},
			{"id":"high","title":"High","subreddit":"golang","quality_score":"0.90"}
		]}}`,
	})

	out, _, err := execute(t, srv.URL, "leads", "--json")
	require.NoError(t, err)

	var leads []hurricane.RedditPost
	require.NoError(t, json.Unmarshal([]byte(out), &leads))
	require.Len(t, leads, 2)
	assert.Equal(t, "high", leads[0].ID)
	assert.Equal(t, "low", leads[1].ID)
}

func TestMetricsPeriod(t *testing.T) {
	srv, calls := testServer(t, map[string]string{
		"/api/dashboard/metrics": `{"data":{"leads_count":12,"replies_count":3,"leads_growth":50}}`,
	})

	out, _, err := execute(t, srv.URL, "metrics", "--period", "30d")
	require.NoError(t, err)
	assert.Contains(t, out, "Leads")
	assert.Contains(t, out, "+50.0%")
	require.Len(t, *calls, 1)
	assert.Equal(t, "period=30d", (*calls)[0].query)
}

func TestMetricsRejectsUnknownPeriod(t *testing.T) {
	srv, calls := testServer(t, nil)

	_, _, err := execute(t, srv.URL, "metrics", "--period", "1y")
	require.Error(t, err)
	assert.Empty(t, *calls)
}

func TestAuthURLPrintsLink(t *testing.T) {
	srv, _ := testServer(t, map[string]string{
		"/api/google/auth": `{"data":{"url":"https://accounts.google.com/o/oauth2/auth?state=x"}}`,
	})

	out, _, err := execute(t, srv.URL, "auth", "url")
	require.NoError(t, err)
	assert.Contains(t, out, "Open this URL to sign in:")
	assert.Contains(t, out, "https://accounts.google.com/o/oauth2/auth?state=x")
}

func TestAPIErrorIsReturned(t *testing.T) {
	srv, _ := testServer(t, nil)

	_, stderr, err := execute(t, srv.URL, "profile")
	require.Error(t, err)

	var apiErr *hurricane.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Contains(t, stderr, "no route")
}

func TestAccountDeleteNeedsConfirmation(t *testing.T) {
	srv, calls := testServer(t, map[string]string{"/api/user/delete": `{"data":{}}`})

	_, _, err := execute(t, srv.URL, "account", "delete")
	require.Error(t, err)
	assert.Empty(t, *calls)

	_, _, err = execute(t, srv.URL, "account", "delete", "--yes")
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Equal(t, "/api/user/delete", (*calls)[0].path)
}

func TestFeedbackDefaultsToGeneral(t *testing.T) {
	srv, calls := testServer(t, map[string]string{"/api/user/feedback/create": `{"data":{}}`})

	_, _, err := execute(t, srv.URL, "feedback", "love it")
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Equal(t, "general", (*calls)[0].body["feedback_type"])
	assert.Equal(t, "love it", (*calls)[0].body["feedback_message"])
}

func TestLogsFiltersByLevel(t *testing.T) {
	dir := t.TempDir()
	lines := strings.Join([]string{
		`time=2026-10-19T10:00:00.000Z level=DEBUG msg="api request" op=leads.get`,
		`time=2026-10-19T10:00:01.000Z level=WARN msg="api request failed" op=leads.get status=500`,
		`panic: something odd`,
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hurricane.log"), []byte(lines+"\n"), 0o644))

	out, _, err := executeIn(t, dir, "http://127.0.0.1:1", "logs", "--level", "warn")
	require.NoError(t, err)
	assert.NotContains(t, out, "api request op=")
	assert.Contains(t, out, "api request failed op=leads.get status=500")
	assert.Contains(t, out, "panic: something odd")
}

func TestLogsRejectsBadLevel(t *testing.T) {
	_, _, err := execute(t, "http://127.0.0.1:1", "logs", "--level", "loud")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "hurricane dev (none)\n", out.String())
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcd…", clip("abcdefgh", 5))
}
