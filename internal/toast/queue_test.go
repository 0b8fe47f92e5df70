package toast

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock releases waiters only when the test advances it.
type manualClock struct {
	mu      sync.Mutex
	now     time.Duration
	waiters []manualWaiter
}

type manualWaiter struct {
	at time.Duration
	ch chan time.Time
}

func (c *manualClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan time.Time, 1)
	c.waiters = append(c.waiters, manualWaiter{at: c.now + d, ch: ch})
	return ch
}

func (c *manualClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

// blockUntil waits for at least n registered waiters.
func (c *manualClock) blockUntil(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return c.pending() >= n }, time.Second, time.Millisecond,
		"expected %d pending waiters", n)
}

func (c *manualClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
	kept := c.waiters[:0]
	for _, w := range c.waiters {
		if w.at <= c.now {
			w.ch <- time.Time{}
			continue
		}
		kept = append(kept, w)
	}
	c.waiters = kept
}

func newTestQueue(t *testing.T) (*Queue, *manualClock) {
	t.Helper()
	clock := &manualClock{}
	return NewQueue(WithClock(clock)), clock
}

func waitDrained(t *testing.T, q *Queue) {
	t.Helper()
	require.Eventually(t, func() bool { return q.Len() == 0 && !q.running() },
		time.Second, time.Millisecond, "queue did not drain")
}

func TestQueue_EmptyState(t *testing.T) {
	q := NewQueue()

	_, ok := q.Current()
	assert.False(t, ok)
	assert.False(t, q.IsShowing())
	assert.False(t, q.running())
	assert.Nil(t, q.Pending())
}

func TestQueue_SingleToastLifecycle(t *testing.T) {
	q, clock := newTestQueue(t)
	timings := DefaultTimings()

	q.Enqueue("Saved", Success)

	cur, ok := q.Current()
	require.True(t, ok)
	assert.Equal(t, "Saved", cur.Message)
	assert.Equal(t, Success, cur.Severity)
	assert.NotEmpty(t, cur.ID)
	assert.False(t, cur.Visible, "toast must start hidden")
	assert.True(t, q.running())

	clock.blockUntil(t, 1)
	clock.advance(timings.Mount)
	clock.blockUntil(t, 1)

	cur, ok = q.Current()
	require.True(t, ok)
	assert.True(t, cur.Visible)
	assert.Equal(t, "Saved", cur.Message)
	assert.True(t, q.IsShowing())

	clock.advance(timings.Display)
	clock.blockUntil(t, 1)

	cur, ok = q.Current()
	require.True(t, ok)
	assert.False(t, cur.Visible)
	assert.False(t, q.IsShowing())

	clock.advance(timings.Exit)
	waitDrained(t, q)
	assert.False(t, q.IsShowing())
}

func TestQueue_DisplaysInInsertionOrder(t *testing.T) {
	q, clock := newTestQueue(t)
	timings := DefaultTimings()

	messages := []string{"A", "B", "C", "D"}
	for _, msg := range messages {
		q.Enqueue(msg, Info)
	}

	pending := q.Pending()
	require.Len(t, pending, len(messages))
	for i, msg := range messages {
		assert.Equal(t, msg, pending[i].Message)
	}

	for _, msg := range messages {
		clock.blockUntil(t, 1)
		clock.advance(timings.Mount)
		clock.blockUntil(t, 1)

		cur, ok := q.Current()
		require.True(t, ok)
		assert.Equal(t, msg, cur.Message)
		assert.True(t, cur.Visible)

		visible := 0
		for _, p := range q.Pending() {
			if p.Visible {
				visible++
			}
		}
		assert.Equal(t, 1, visible, "exactly one toast may be visible")

		clock.advance(timings.Display)
		clock.blockUntil(t, 1)
		assert.False(t, q.IsShowing())
		clock.advance(timings.Exit)
	}

	waitDrained(t, q)
}

func TestQueue_SecondToastWaitsForFirstCycle(t *testing.T) {
	q, clock := newTestQueue(t)
	timings := DefaultTimings()

	q.Enqueue("A", Info)
	q.Enqueue("B", Info)

	clock.blockUntil(t, 1)
	clock.advance(timings.Mount)
	clock.blockUntil(t, 1)

	pending := q.Pending()
	require.Len(t, pending, 2)
	assert.True(t, pending[0].Visible)
	assert.False(t, pending[1].Visible, "B must not show while A is on screen")

	clock.advance(timings.Display)
	clock.blockUntil(t, 1)
	pending = q.Pending()
	require.Len(t, pending, 2)
	assert.False(t, pending[1].Visible)

	clock.advance(timings.Exit)
	clock.blockUntil(t, 1)

	cur, ok := q.Current()
	require.True(t, ok)
	assert.Equal(t, "B", cur.Message)
	assert.False(t, cur.Visible)
}

func TestQueue_SkipWhileVisibleDropsHead(t *testing.T) {
	q, clock := newTestQueue(t)
	timings := DefaultTimings()

	q.Enqueue("A", Info)
	clock.blockUntil(t, 1)
	clock.advance(timings.Mount)
	clock.blockUntil(t, 1)
	require.True(t, q.IsShowing())

	q.Enqueue("", Info)

	assert.Equal(t, 0, q.Len())
	assert.False(t, q.running())
	assert.False(t, q.IsShowing())

	// The aborted loop must not touch the queue once its timers fire.
	clock.advance(timings.Display + timings.Exit)
	assert.Equal(t, 0, q.Len())
	assert.False(t, q.running())
}

func TestQueue_SkipRestartsFromNextToast(t *testing.T) {
	q, clock := newTestQueue(t)
	timings := DefaultTimings()

	q.Enqueue("A", Info)
	q.Enqueue("B", Warning)
	clock.blockUntil(t, 1)

	q.Enqueue("", Info)

	cur, ok := q.Current()
	require.True(t, ok)
	assert.Equal(t, "B", cur.Message)
	assert.True(t, q.running())

	// Stale mount waiter from A plus the fresh one from B.
	clock.blockUntil(t, 2)
	clock.advance(timings.Mount)
	clock.blockUntil(t, 1)

	cur, ok = q.Current()
	require.True(t, ok)
	assert.Equal(t, "B", cur.Message)
	assert.True(t, cur.Visible)
	assert.Equal(t, 1, q.Len())

	clock.advance(timings.Display)
	clock.blockUntil(t, 1)
	clock.advance(timings.Exit)
	waitDrained(t, q)
}

func TestQueue_SkipOnEmptyQueueIsNoop(t *testing.T) {
	var calls int
	q := NewQueue(WithOnChange(func() { calls++ }))

	q.Enqueue("", Error)

	assert.Equal(t, 0, q.Len())
	assert.False(t, q.running())
	assert.Equal(t, 0, calls)
}

func TestQueue_OnChangeFiresForEachTransition(t *testing.T) {
	clock := &manualClock{}
	var mu sync.Mutex
	var calls int
	q := NewQueue(WithClock(clock), WithOnChange(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	}))
	timings := DefaultTimings()

	q.Enqueue("hello", Success)
	clock.blockUntil(t, 1)
	clock.advance(timings.Mount)
	clock.blockUntil(t, 1)
	clock.advance(timings.Display)
	clock.blockUntil(t, 1)
	clock.advance(timings.Exit)
	waitDrained(t, q)

	// enqueue, show, hide, remove, stop
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 5
	}, time.Second, time.Millisecond)
}

func TestQueue_EnqueueAfterDrainRestartsLoop(t *testing.T) {
	q := NewQueue(WithTimings(Timings{
		Mount:   time.Millisecond,
		Display: time.Millisecond,
		Exit:    time.Millisecond,
	}))

	q.Enqueue("first", Info)
	waitDrained(t, q)

	q.Enqueue("second", Info)
	cur, ok := q.Current()
	require.True(t, ok)
	assert.Equal(t, "second", cur.Message)
	waitDrained(t, q)
}

func TestWithTimings_ZeroFieldsKeepDefaults(t *testing.T) {
	q := NewQueue(WithTimings(Timings{Display: time.Second}))
	def := DefaultTimings()

	assert.Equal(t, def.Mount, q.timings.Mount)
	assert.Equal(t, time.Second, q.timings.Display)
	assert.Equal(t, def.Exit, q.timings.Exit)
}
