package orchestrator

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spriteforge/autopaint/internal/provider"
)

// gateTransport blocks every exchange until released, signalling entry.
type gateTransport struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
	body    string
}

func newGateTransport(body string) *gateTransport {
	return &gateTransport{
		entered: make(chan struct{}, 8),
		release: make(chan struct{}),
		body:    body,
	}
}

func (g *gateTransport) Exchange(context.Context, string, map[string]string, []byte) ([]byte, error) {
	g.calls.Add(1)
	g.entered <- struct{}{}
	<-g.release
	return []byte(g.body), nil
}

func newGatedTask(t *testing.T, grace time.Duration) (*Task, *gateTransport) {
	t.Helper()
	gate := newGateTransport(chatBody("done"))
	spec := chatSpec("alpha", "http://unused.invalid")
	o := New([]provider.Spec{spec}, configuredResolver(spec), zap.NewNop(), WithTransport(gate))
	return NewTask(o, grace), gate
}

func TestTask_CompletesAndClearsActive(t *testing.T) {
	task, gate := newGatedTask(t, 0)
	close(gate.release)

	ch := task.Start(provider.RequestContext{Prompt: "p"})
	res := <-ch
	assert.Equal(t, StatusCompleted, res.Status)
	assert.Equal(t, "done", res.Text)

	assert.Eventually(t, func() bool { return !task.Active() }, time.Second, 5*time.Millisecond)
}

func TestTask_CancelDuringTransport(t *testing.T) {
	task, gate := newGatedTask(t, 0)

	ch := task.Start(provider.RequestContext{Prompt: "p"})
	<-gate.entered

	task.Cancel()
	close(gate.release)

	res := <-ch
	// The transport reply arrived but the token fired first: the computed
	// outcome is discarded and no failure text is surfaced.
	assert.Equal(t, StatusCancelled, res.Status)
	assert.Empty(t, res.Text)
	assert.Empty(t, res.ErrorMessage)
}

func TestTask_StartSupersedesActiveRun(t *testing.T) {
	task, gate := newGatedTask(t, 0)

	ch1 := task.Start(provider.RequestContext{Prompt: "first"})
	<-gate.entered

	done2 := make(chan (<-chan SessionResult), 1)
	go func() {
		// Blocks until the first run observes cancellation and finishes
		done2 <- task.Start(provider.RequestContext{Prompt: "second"})
	}()

	// Let the first run return from its transport call
	gate.release <- struct{}{}

	res1 := <-ch1
	assert.Equal(t, StatusCancelled, res1.Status)

	ch2 := <-done2
	<-gate.entered
	gate.release <- struct{}{}

	res2 := <-ch2
	assert.Equal(t, StatusCompleted, res2.Status)
	assert.Equal(t, int32(2), gate.calls.Load())
}

func TestTask_CloseAbandonsBlockedRun(t *testing.T) {
	task, gate := newGatedTask(t, 50*time.Millisecond)

	task.Start(provider.RequestContext{Prompt: "p"})
	<-gate.entered

	start := time.Now()
	task.Close() // run is stuck in transport; grace elapses, run abandoned
	elapsed := time.Since(start)

	require.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
	assert.False(t, task.Active())

	// Unblock the abandoned goroutine so it can park its result and exit
	close(gate.release)
}

func TestTask_CloseWithoutRunIsNoop(t *testing.T) {
	task, _ := newGatedTask(t, 0)
	task.Close()
	assert.False(t, task.Active())
}
