package orchestrator

import (
	"sync"
	"time"

	"github.com/spriteforge/autopaint/internal/provider"
)

// DefaultGrace is how long Close waits for a run to observe cancellation.
const DefaultGrace = 500 * time.Millisecond

// Task runs orchestrations off the caller's control path, one at a time.
// The result channel it hands out is the completion signal: buffered, so
// the background goroutine writes and moves on, and the channel receive
// gives the caller the happens-before edge that makes the result safe to
// read without further locking.
type Task struct {
	orch  *Orchestrator
	grace time.Duration

	mu      sync.Mutex
	current *run
}

type run struct {
	token *Token
	// result is written exactly once, for whichever caller still holds it.
	result chan SessionResult
	// finished is closed when the goroutine exits, whether or not anyone
	// consumed the result.
	finished chan struct{}
}

// NewTask wraps an orchestrator in a single-flight background runner.
// grace <= 0 selects DefaultGrace.
func NewTask(o *Orchestrator, grace time.Duration) *Task {
	if grace <= 0 {
		grace = DefaultGrace
	}
	return &Task{orch: o, grace: grace}
}

// Start begins a run and returns its completion signal. If a run is still
// active it is cancelled first and Start waits for it to terminate, so at
// most one run is ever in flight; the superseded run's result is dropped.
func (t *Task) Start(rc provider.RequestContext) <-chan SessionResult {
	t.mu.Lock()
	prev := t.current
	t.mu.Unlock()

	if prev != nil {
		prev.token.Cancel()
		<-prev.finished
	}

	r := &run{
		token:    &Token{},
		result:   make(chan SessionResult, 1),
		finished: make(chan struct{}),
	}

	t.mu.Lock()
	t.current = r
	t.mu.Unlock()

	go func() {
		r.result <- t.orch.Run(r.token, rc)
		close(r.finished)

		t.mu.Lock()
		if t.current == r {
			t.current = nil
		}
		t.mu.Unlock()
	}()

	return r.result
}

// Cancel requests cancellation of the active run, if any. It returns
// immediately; the run terminates at its next checkpoint.
func (t *Task) Cancel() {
	t.mu.Lock()
	cur := t.current
	t.mu.Unlock()

	if cur != nil {
		cur.token.Cancel()
	}
}

// Active reports whether a run is currently in flight.
func (t *Task) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current != nil
}

// Close cancels the active run and waits up to the grace period for it to
// observe the token. A run still blocked inside a transport call after
// that is abandoned, not force-terminated: its goroutine eventually parks
// its result in its own buffered channel and exits without touching
// anything the caller owns.
func (t *Task) Close() {
	t.mu.Lock()
	cur := t.current
	t.current = nil
	t.mu.Unlock()

	if cur == nil {
		return
	}

	cur.token.Cancel()
	select {
	case <-cur.finished:
	case <-time.After(t.grace):
	}
}
