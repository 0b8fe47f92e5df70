package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/softwrhq/hurricane/internal/hurricane"
	"github.com/softwrhq/hurricane/internal/toast"
)

// Data is the dashboard payload loaded from the API in one refresh.
type Data struct {
	Account    hurricane.UserWithSubscription
	HasAccount bool
	Metrics    hurricane.DashboardMetrics
	HasMetrics bool
	Leads      []hurricane.RedditPost
	Replies    []hurricane.ReplyWithPostDetails
	Keywords   []hurricane.Keyword
	Subreddits []hurricane.Subreddit
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Data
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive refresh failures
}

// IsOffline returns true when the API has been unreachable for multiple refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store is the application state shared by the API client, the poller and
// the UI. The zero value is usable: sidebar open, not loading, no toasts.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot

	baseURL       string
	sidebarClosed bool
	period        string
	// loading is true while any request is in flight or the override is set.
	inflight        int
	loadingOverride bool

	toasts *toast.Queue
}

// Ensure Store can drive the client's loading flag at compile time.
var _ hurricane.LoadingTracker = (*Store)(nil)

// NewStore builds a store for the given API origin and toast queue.
func NewStore(baseURL string, toasts *toast.Queue) *Store {
	return &Store{baseURL: baseURL, toasts: toasts}
}

// BaseURL returns the API origin chosen at startup.
func (s *Store) BaseURL() string {
	return s.baseURL
}

// Toasts returns the notification queue, or nil when none is attached.
func (s *Store) Toasts() *toast.Queue {
	return s.toasts
}

// CurrentToast returns the head of the toast queue.
func (s *Store) CurrentToast() (toast.Toast, bool) {
	if s.toasts == nil {
		return toast.Toast{}, false
	}
	return s.toasts.Current()
}

// QueuedToasts returns the number of toasts waiting behind the head.
func (s *Store) QueuedToasts() int {
	if s.toasts == nil {
		return 0
	}
	return max(s.toasts.Len()-1, 0)
}

// IsShowingToast reports whether a toast is on screen.
func (s *Store) IsShowingToast() bool {
	return s.toasts != nil && s.toasts.IsShowing()
}

// SidebarOpen reports whether the sidebar is expanded.
func (s *Store) SidebarOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.sidebarClosed
}

// SetSidebarOpen expands or collapses the sidebar.
func (s *Store) SetSidebarOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarClosed = !open
}

// ToggleSidebar flips the sidebar and returns the new open state.
func (s *Store) ToggleSidebar() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarClosed = !s.sidebarClosed
	return !s.sidebarClosed
}

// MetricsPeriod returns the dashboard metrics window, empty for the API default.
func (s *Store) MetricsPeriod() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.period
}

// SetMetricsPeriod selects the dashboard metrics window used by refreshes.
func (s *Store) SetMetricsPeriod(period string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.period = period
}

// Loading reports whether a network operation is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadingOverride || s.inflight > 0
}

// SetLoading forces the loading flag on or off independently of tracked
// requests. Clearing it never hides requests that are still in flight.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadingOverride = loading
}

// InFlight returns the number of tracked requests.
func (s *Store) InFlight() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight
}

// BeginRequest marks a request as in flight. The returned func ends it and
// is safe to call more than once.
func (s *Store) BeginRequest() func() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.inflight > 0 {
				s.inflight--
			}
		})
	}
}

// Update replaces the stored data. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(data Data, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Data = cloneData(data)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Data = cloneData(s.snapshot.Data)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneData(d Data) Data {
	d.Leads = cloneSlice(d.Leads)
	d.Replies = cloneSlice(d.Replies)
	d.Keywords = cloneSlice(d.Keywords)
	d.Subreddits = cloneSlice(d.Subreddits)
	d.Metrics.LeadsByDay = cloneSlice(d.Metrics.LeadsByDay)
	d.Metrics.RepliesByDay = cloneSlice(d.Metrics.RepliesByDay)
	d.Metrics.TopSubreddits = cloneSlice(d.Metrics.TopSubreddits)
	d.Metrics.TopKeywords = cloneSlice(d.Metrics.TopKeywords)
	return d
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
