package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Timings control how long each phase of a toast lasts.
type Timings struct {
	Mount   time.Duration // delay before the head becomes visible
	Display time.Duration // time the head stays visible
	Exit    time.Duration // settle time after hiding, before removal
}

// DefaultTimings mirror the dashboard's animation budget.
func DefaultTimings() Timings {
	return Timings{
		Mount:   10 * time.Millisecond,
		Display: 3 * time.Second,
		Exit:    300 * time.Millisecond,
	}
}

// Clock schedules the queue's timed waits.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Option customises a Queue.
type Option func(*Queue)

// WithTimings overrides the phase durations. Zero fields keep their defaults.
func WithTimings(t Timings) Option {
	return func(q *Queue) {
		if t.Mount > 0 {
			q.timings.Mount = t.Mount
		}
		if t.Display > 0 {
			q.timings.Display = t.Display
		}
		if t.Exit > 0 {
			q.timings.Exit = t.Exit
		}
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(q *Queue) {
		if c != nil {
			q.clock = c
		}
	}
}

// WithOnChange registers a hook invoked after every queue transition. The
// hook runs without the queue lock held and may call back into the queue.
func WithOnChange(fn func()) Option {
	return func(q *Queue) { q.onChange = fn }
}

// Queue presents toasts one at a time in insertion order.
type Queue struct {
	mu         sync.Mutex
	toasts     []*Toast
	processing bool
	// abort is owned by the active display loop; closing it cancels that
	// loop's pending wait.
	abort chan struct{}

	timings  Timings
	clock    Clock
	onChange func()
}

// Ensure Queue implements Notifier at compile time.
var _ Notifier = (*Queue)(nil)

// NewQueue builds an empty queue.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		timings: DefaultTimings(),
		clock:   realClock{},
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue appends a toast and starts the display loop when idle. An empty
// message drops the current head instead and restarts the loop from the
// next toast.
func (q *Queue) Enqueue(message string, severity Severity) {
	if message == "" {
		q.skip()
		return
	}

	q.mu.Lock()
	q.toasts = append(q.toasts, &Toast{
		ID:       uuid.NewString(),
		Message:  message,
		Severity: severity,
	})
	var abort chan struct{}
	if !q.processing {
		abort = q.startLocked()
	}
	q.mu.Unlock()

	q.changed()
	if abort != nil {
		go q.run(abort)
	}
}

// Current returns a copy of the head toast.
func (q *Queue) Current() (Toast, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.toasts) == 0 {
		return Toast{}, false
	}
	return *q.toasts[0], true
}

// IsShowing reports whether the head toast is currently visible.
func (q *Queue) IsShowing() bool {
	current, ok := q.Current()
	return ok && current.Visible
}

// Pending returns copies of every queued toast, head first.
func (q *Queue) Pending() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.toasts) == 0 {
		return nil
	}
	out := make([]Toast, len(q.toasts))
	for i, t := range q.toasts {
		out[i] = *t
	}
	return out
}

// Len returns the number of queued toasts, including the head.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.toasts)
}

// running reports whether the display loop is active.
func (q *Queue) running() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.processing
}

func (q *Queue) startLocked() chan struct{} {
	q.processing = true
	q.abort = make(chan struct{})
	return q.abort
}

func (q *Queue) stopLocked() {
	q.processing = false
	q.abort = nil
}

func (q *Queue) skip() {
	q.mu.Lock()
	if len(q.toasts) == 0 {
		q.mu.Unlock()
		return
	}
	if q.abort != nil {
		close(q.abort)
	}
	q.toasts[0] = nil
	q.toasts = q.toasts[1:]

	var abort chan struct{}
	if len(q.toasts) > 0 {
		abort = q.startLocked()
	} else {
		q.stopLocked()
	}
	q.mu.Unlock()

	q.changed()
	if abort != nil {
		go q.run(abort)
	}
}

// run drives the head of the queue through mount, display and exit until the
// queue drains or the loop is superseded by a skip.
func (q *Queue) run(abort chan struct{}) {
	for {
		q.mu.Lock()
		if q.abort != abort {
			q.mu.Unlock()
			return
		}
		if len(q.toasts) == 0 {
			q.stopLocked()
			q.mu.Unlock()
			q.changed()
			return
		}
		head := q.toasts[0]
		q.mu.Unlock()

		if !q.wait(q.timings.Mount, abort) || !q.setVisible(head, true, abort) {
			return
		}
		if !q.wait(q.timings.Display, abort) || !q.setVisible(head, false, abort) {
			return
		}
		if !q.wait(q.timings.Exit, abort) {
			return
		}

		q.mu.Lock()
		if q.abort != abort {
			q.mu.Unlock()
			return
		}
		q.toasts[0] = nil
		q.toasts = q.toasts[1:]
		q.mu.Unlock()
		q.changed()
	}
}

func (q *Queue) wait(d time.Duration, abort <-chan struct{}) bool {
	select {
	case <-q.clock.After(d):
		return true
	case <-abort:
		return false
	}
}

func (q *Queue) setVisible(head *Toast, visible bool, abort chan struct{}) bool {
	q.mu.Lock()
	if q.abort != abort {
		q.mu.Unlock()
		return false
	}
	head.Visible = visible
	q.mu.Unlock()
	q.changed()
	return true
}

func (q *Queue) changed() {
	if q.onChange != nil {
		q.onChange()
	}
}
