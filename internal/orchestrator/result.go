package orchestrator

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/spriteforge/autopaint/internal/provider"
)

// OutcomeKind classifies one backend attempt.
type OutcomeKind string

const (
	// OutcomeSuccess: the backend produced usable generated text.
	OutcomeSuccess OutcomeKind = "success"
	// OutcomeUnconfigured: no credential resolved; the backend was skipped
	// without any network traffic. Expected, not a failure.
	OutcomeUnconfigured OutcomeKind = "unconfigured"
	// OutcomeTransportFailure: the HTTP exchange did not complete.
	OutcomeTransportFailure OutcomeKind = "transport_failure"
	// OutcomeSoftFailure: the backend was reachable but the reply is
	// unusable (API error, unrecognized shape, or quota/overload signal).
	OutcomeSoftFailure OutcomeKind = "soft_failure"
)

// AttemptOutcome records the result of one backend attempt. A backend is
// never attempted twice within the same run.
type AttemptOutcome struct {
	Provider provider.ID
	Kind     OutcomeKind
	Reason   string
	Latency  time.Duration
}

// Status is the terminal state of one run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusExhausted Status = "exhausted"
	StatusCancelled Status = "cancelled"
)

// SessionResult is produced exactly once per run.
type SessionResult struct {
	RunID      string
	Status     Status
	Text       string
	ProviderID provider.ID
	// ErrorMessage carries the aggregated failure for exhausted runs.
	// Cancelled runs carry no message at all.
	ErrorMessage string
	Attempts     []AttemptOutcome
	Elapsed      time.Duration
}

// Token is the cooperative cancellation flag for one run: single writer,
// many readers, set once and never cleared. Cancellation only takes effect
// at the run's checkpoints, so its latency is bounded by the longest single
// transport call, never by force-termination.
type Token struct {
	flag atomic.Bool
	init sync.Once
	done chan struct{}
}

func (t *Token) channel() chan struct{} {
	t.init.Do(func() { t.done = make(chan struct{}) })
	return t.done
}

// Cancel sets the flag. Safe to call more than once.
func (t *Token) Cancel() {
	ch := t.channel()
	if t.flag.CompareAndSwap(false, true) {
		close(ch)
	}
}

// Cancelled reports whether Cancel has been called.
func (t *Token) Cancelled() bool {
	return t.flag.Load()
}

// Done returns a channel closed once Cancel is called, for waits that
// must unblock as soon as the token fires.
func (t *Token) Done() <-chan struct{} {
	return t.channel()
}
