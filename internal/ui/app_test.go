package ui

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softwrhq/hurricane/internal/hurricane"
	"github.com/softwrhq/hurricane/internal/state"
	"github.com/softwrhq/hurricane/internal/toast"
)

// fakeAPI implements the calls the dashboard makes; anything else panics
// through the nil embedded interface.
type fakeAPI struct {
	hurricane.API

	mu            sync.Mutex
	generatedFor  []string
	createdKw     [][]string
	updatedKw     [][]string
	createdSubs   [][]string
	feedback      []string
	scans         int
	logouts       int
	authURLCalls  int
	finishedCodes []string
}

func (f *fakeAPI) GenerateReply(_ context.Context, postID string) (hurricane.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generatedFor = append(f.generatedFor, postID)
	return hurricane.Reply{RedditPostID: postID, ReplyText: "Have you tried hurricane?"}, nil
}

func (f *fakeAPI) CreateKeywords(_ context.Context, kw []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdKw = append(f.createdKw, kw)
	return nil
}

func (f *fakeAPI) CreateSubreddits(_ context.Context, subs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdSubs = append(f.createdSubs, subs)
	return nil
}

func (f *fakeAPI) UpdateKeywords(_ context.Context, kw []string) ([]hurricane.Keyword, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updatedKw = append(f.updatedKw, kw)
	return nil, nil
}

func (f *fakeAPI) ScanLeads(context.Context) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scans++
	return nil, nil
}

func (f *fakeAPI) CreateFeedback(_ context.Context, _ string, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedback = append(f.feedback, message)
	return nil
}

func (f *fakeAPI) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	return nil
}

func (f *fakeAPI) AuthURL(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authURLCalls++
	return "https://accounts.google.com/o/oauth2/auth", nil
}

func (f *fakeAPI) FinishAuth(_ context.Context, code string) (hurricane.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finishedCodes = append(f.finishedCodes, code)
	return hurricane.AuthResult{Intent: hurricane.IntentLogin}, nil
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func newTestModel(t *testing.T, api hurricane.API, store *state.Store) Model {
	t.Helper()
	m := New(Options{API: api, Store: store})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(keyPress(k))
		m = updated.(Model)
	}
	return m, cmd
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := New(Options{})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() = %q, want Loading...", got)
	}
}

func TestModel_RendersEveryView(t *testing.T) {
	store := state.NewStore("http://localhost:8080", nil)
	store.Update(state.Data{
		HasMetrics: true,
		Metrics: hurricane.DashboardMetrics{
			LeadsCount: 7, LeadsGrowth: 40, Period: "7d", PeriodDays: 7,
			LeadsByDay: []hurricane.DailyMetric{{Date: "2026-03-01", Count: 3}},
		},
		Leads:      []hurricane.RedditPost{{ID: "p1", Title: "Looking for a CRM", Subreddit: "startups"}},
		Keywords:   []hurricane.Keyword{{KeywordName: "crm"}},
		Subreddits: []hurricane.Subreddit{{SubredditName: "startups"}},
	}, nil)
	m := newTestModel(t, &fakeAPI{}, store)

	wants := map[string]string{
		"1": "Leads per day",
		"2": "Looking for a CRM",
		"3": "No replies yet",
		"4": "crm",
		"5": "r/startups",
		"6": "http://localhost:8080",
	}
	for k, want := range wants {
		m2, _ := press(t, m, k)
		if view := m2.View(); !strings.Contains(view, want) {
			t.Errorf("view after %q missing %q", k, want)
		}
	}
}

func TestModel_ScanAndFeedback(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api, state.NewStore("", nil))

	_, cmd := press(t, m, "s")
	require.NotNil(t, cmd)
	done := cmd().(actionDoneMsg)
	assert.Equal(t, actionScan, done.op)
	assert.True(t, done.refresh)
	assert.Equal(t, 1, api.scans)

	m, _ = press(t, m, "6", "F", "love it")
	_, cmd = press(t, m, "enter")
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{"love it"}, api.feedback)
}

func TestModel_SignOutAfterConfirm(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api, state.NewStore("", nil))

	m, _ = press(t, m, "O")
	require.NotNil(t, m.modal)
	_, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)
	done := cmd().(actionDoneMsg)
	assert.True(t, done.saveSession)
	assert.Equal(t, 1, api.logouts)
}

func TestModel_ToggleSidebarPersists(t *testing.T) {
	store := state.NewStore("", nil)
	var saved []string
	m := New(Options{Store: store, SavePrefs: func(theme string) error {
		saved = append(saved, theme)
		return nil
	}})

	m, _ = press(t, m, "b")
	if store.SidebarOpen() {
		t.Fatal("sidebar should be collapsed after b")
	}
	m, _ = press(t, m, "T")
	if len(saved) != 2 || saved[1] != "Slate" {
		t.Fatalf("SavePrefs calls = %v, want [Dracula Slate]", saved)
	}
	if m.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate", m.theme.Name)
	}
}

func TestModel_SkipToastDropsHead(t *testing.T) {
	q := toast.NewQueue(toast.WithTimings(toast.Timings{Mount: time.Hour}))
	store := state.NewStore("", q)
	m := New(Options{Store: store})

	q.Enqueue("first", toast.Info)
	q.Enqueue("second", toast.Success)
	press(t, m, "x")

	cur, ok := q.Current()
	require.True(t, ok)
	assert.Equal(t, "second", cur.Message)
}

func TestModel_ShowsVisibleToast(t *testing.T) {
	q := toast.NewQueue(toast.WithTimings(toast.Timings{Mount: time.Millisecond, Display: time.Hour}))
	store := state.NewStore("", q)
	m := newTestModel(t, nil, store)

	q.Enqueue("Leads fetched successfully", toast.Success)
	require.Eventually(t, q.IsShowing, time.Second, time.Millisecond)
	assert.Contains(t, m.View(), "Leads fetched successfully")
}

func TestModel_ToastShowsQueuedCount(t *testing.T) {
	q := toast.NewQueue(toast.WithTimings(toast.Timings{Mount: time.Millisecond, Display: time.Hour}))
	store := state.NewStore("", q)
	m := newTestModel(t, nil, store)

	q.Enqueue("Scan started", toast.Info)
	q.Enqueue("Leads fetched successfully", toast.Success)
	q.Enqueue("Scan completed", toast.Info)
	require.Eventually(t, q.IsShowing, time.Second, time.Millisecond)
	assert.Contains(t, m.View(), "+2 more")
}

func TestModel_HeaderCountsOverlappingRequests(t *testing.T) {
	store := state.NewStore("", nil)
	m := newTestModel(t, nil, store)

	first := store.BeginRequest()
	assert.NotContains(t, m.View(), "requests)")

	second := store.BeginRequest()
	assert.Contains(t, m.View(), "(2 requests)")
	first()
	second()
}

func TestModel_PeriodKeys(t *testing.T) {
	store := state.NewStore("", nil)
	m := New(Options{Store: store})

	m, cmd := press(t, m, "]")
	assert.Equal(t, "30d", store.MetricsPeriod())
	assert.NotNil(t, cmd, "changing the period refreshes")

	m, _ = press(t, m, "]", "]")
	assert.Equal(t, "90d", store.MetricsPeriod(), "period stops at the longest window")

	press(t, m, "[")
	assert.Equal(t, "30d", store.MetricsPeriod())
}

func TestModel_NavigateMessages(t *testing.T) {
	m := New(Options{})

	updated, _ := m.Update(navigateMsg{target: "/"})
	m = updated.(Model)
	assert.Equal(t, ViewSettings, m.currentView)
	assert.True(t, m.signedOut)

	updated, _ = m.Update(navigateMsg{target: "https://accounts.google.com/x"})
	m = updated.(Model)
	assert.Equal(t, "https://accounts.google.com/x", m.authURL)
	assert.True(t, m.signedOut, "opening the consent page does not sign in")

	updated, _ = m.Update(navigateMsg{target: "/dashboard"})
	m = updated.(Model)
	assert.Equal(t, ViewDashboard, m.currentView)
	assert.False(t, m.signedOut)
	assert.Empty(t, m.authURL)
}

func TestModel_GenerateReplyForSelectedLead(t *testing.T) {
	api := &fakeAPI{}
	store := state.NewStore("", nil)
	store.Update(state.Data{Leads: []hurricane.RedditPost{{ID: "p1", Title: "one"}, {ID: "p2", Title: "two"}}}, nil)
	m := newTestModel(t, api, store)

	m, _ = press(t, m, "2", "j")
	m, cmd := press(t, m, "g")
	require.NotNil(t, cmd)

	msg := cmd()
	reply, ok := msg.(replyGeneratedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "p2", reply.postID)
	assert.Equal(t, []string{"p2"}, api.generatedFor)

	updated, _ := m.Update(reply)
	m = updated.(Model)
	assert.Contains(t, m.View(), "Have you tried hurricane?")
}

func TestModel_AddKeywordsThroughModal(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(t, api, state.NewStore("", nil))

	m, _ = press(t, m, "4", "a")
	require.NotNil(t, m.modal)

	m, _ = press(t, m, "crm, sales")
	m, cmd := press(t, m, "enter")
	assert.Nil(t, m.modal)
	require.NotNil(t, cmd)

	msg := cmd()
	done, ok := msg.(actionDoneMsg)
	require.True(t, ok, "got %T", msg)
	assert.NoError(t, done.err)
	assert.True(t, done.refresh)
	assert.Equal(t, [][]string{{"crm", "sales"}}, api.createdKw)
}

func TestModel_RemoveKeywordAfterConfirm(t *testing.T) {
	api := &fakeAPI{}
	store := state.NewStore("", nil)
	store.Update(state.Data{Keywords: []hurricane.Keyword{{KeywordName: "a"}, {KeywordName: "b"}, {KeywordName: "c"}}}, nil)
	m := newTestModel(t, api, store)

	m, _ = press(t, m, "4", "j", "d")
	require.NotNil(t, m.modal)

	m, cmd := press(t, m, "y")
	assert.Nil(t, m.modal)
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, [][]string{{"a", "c"}}, api.updatedKw)
}

func TestModel_ModalSwallowsGlobalKeys(t *testing.T) {
	m := newTestModel(t, &fakeAPI{}, state.NewStore("", nil))
	m, _ = press(t, m, "6", "F")
	require.NotNil(t, m.modal)

	m, _ = press(t, m, "q")
	require.NotNil(t, m.modal, "q is typed into the input, not quit")

	m, _ = press(t, m, "esc")
	assert.Nil(t, m.modal)
}

func TestModel_SignInFlow(t *testing.T) {
	api := &fakeAPI{}
	var sessions int
	m := New(Options{API: api, SaveSession: func() error { sessions++; return nil }})

	_, cmd := press(t, m, "L")
	require.NotNil(t, cmd)
	done := cmd().(actionDoneMsg)
	assert.Equal(t, actionAuthURL, done.op)

	updated, _ := m.Update(done)
	m = updated.(Model)
	require.NotNil(t, m.modal, "a code prompt follows the consent link")

	m, _ = press(t, m, "abc123")
	_, cmd = press(t, m, "enter")
	require.NotNil(t, cmd)
	finish := cmd().(actionDoneMsg)
	assert.Equal(t, []string{"abc123"}, api.finishedCodes)

	updated, _ = m.Update(finish)
	m = updated.(Model)
	assert.Equal(t, 1, sessions)
	assert.False(t, m.signedOut)
}

func TestBridge_HoldsNavigationUntilAttached(t *testing.T) {
	b := NewBridge()
	b.Redraw()
	b.Navigate("/dashboard")

	b.mu.Lock()
	defer b.mu.Unlock()
	require.Len(t, b.pending, 1)
	assert.Equal(t, navigateMsg{target: "/dashboard"}, b.pending[0])
}

func TestDailyChartIgnoresNegativeCounts(t *testing.T) {
	m := newTestModel(t, nil, state.NewStore("", nil))

	out := m.renderDailyChart("Leads per day", []hurricane.DailyMetric{
		{Date: "2026-10-18", Count: -3},
		{Date: "2026-10-19", Count: 4},
	}, 60)
	assert.Contains(t, out, "2026-10-18")
	assert.Contains(t, out, "-3")

	out = m.renderDailyChart("Leads per day", []hurricane.DailyMetric{{Date: "2026-10-19", Count: -1}}, 60)
	assert.Contains(t, out, "2026-10-19")
}
