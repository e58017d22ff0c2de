// Package orchestrator drives the ordered backend attempt sequence for one
// generation run and exposes it as a cancellable background task.
package orchestrator

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spriteforge/autopaint/internal/credentials"
	"github.com/spriteforge/autopaint/internal/httpclient"
	"github.com/spriteforge/autopaint/internal/provider"
)

// softFailureTokens mark replies that transported and possibly even parsed
// fine but signal quota exhaustion, overload, or rate limiting. The scan is
// a case-insensitive substring match over the whole raw body: legitimate
// generated text containing one of these words is also classified as a soft
// failure.
var softFailureTokens = []string{"overloaded", "quota", "rate limit"}

const noProviderConfiguredMsg = "no provider is configured; set at least one API key"

// Transport performs one blocking HTTP exchange. It is the only I/O the
// run performs and the only operation cancellation cannot interrupt.
type Transport interface {
	Exchange(ctx context.Context, url string, headers map[string]string, body []byte) ([]byte, error)
}

// httpTransport adapts httpclient to the Transport interface.
type httpTransport struct {
	client  *http.Client
	timeout time.Duration
}

func (t *httpTransport) Exchange(ctx context.Context, url string, headers map[string]string, body []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return httpclient.Exchange(ctx, t.client, url, headers, body)
}

// Orchestrator tries backends in priority order until one succeeds.
type Orchestrator struct {
	specs     []provider.Spec
	creds     *credentials.Resolver
	transport Transport
	limiters  map[provider.ID]*rate.Limiter
	logger    *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTransport replaces the default HTTP transport.
func WithTransport(t Transport) Option {
	return func(o *Orchestrator) { o.transport = t }
}

// WithRateLimit throttles outbound attempts against one backend.
func WithRateLimit(id provider.ID, rps float64, burst int) Option {
	return func(o *Orchestrator) {
		o.limiters[id] = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithHTTPTimeout bounds each transport exchange. Only effective for the
// default transport.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if t, ok := o.transport.(*httpTransport); ok {
			t.timeout = d
		}
	}
}

// New creates an orchestrator over the given backend list. The list order
// is the fallback priority order.
func New(specs []provider.Spec, creds *credentials.Resolver, logger *zap.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		specs:     specs,
		creds:     creds,
		transport: &httpTransport{client: &http.Client{}, timeout: 60 * time.Second},
		limiters:  make(map[provider.ID]*rate.Limiter),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Specs returns the configured backend list in attempt order.
func (o *Orchestrator) Specs() []provider.Spec {
	return o.specs
}

// Run executes one full attempt sequence and returns its terminal result.
// Attempts are strictly sequential; tok is checked at every transition
// boundary and an in-flight attempt's outcome is discarded once it is set.
func (o *Orchestrator) Run(tok *Token, rc provider.RequestContext) SessionResult {
	runID := uuid.NewString()
	started := time.Now()
	log := o.logger.With(zap.String("run_id", runID))

	res := SessionResult{RunID: runID}
	lastErr := ""

	for _, spec := range o.specs {
		if tok.Cancelled() {
			return o.finish(log, res, StatusCancelled, started)
		}

		outcome := o.attempt(tok, spec, rc, &res)
		if outcome == nil {
			// Token fired inside the attempt; whatever was computed for
			// it is discarded.
			return o.finish(log, res, StatusCancelled, started)
		}

		res.Attempts = append(res.Attempts, *outcome)
		log.Info("provider attempt finished",
			zap.String("provider", string(spec.ID)),
			zap.String("outcome", string(outcome.Kind)),
			zap.String("reason", outcome.Reason),
			zap.Int64("latency_ms", outcome.Latency.Milliseconds()),
		)

		switch outcome.Kind {
		case OutcomeSuccess:
			res.ProviderID = spec.ID
			return o.finish(log, res, StatusCompleted, started)
		case OutcomeUnconfigured:
			// Expected state, does not contribute to the aggregate error.
		default:
			lastErr = outcome.Reason
		}
	}

	if lastErr == "" {
		lastErr = noProviderConfiguredMsg
	}
	res.ErrorMessage = lastErr
	return o.finish(log, res, StatusExhausted, started)
}

// attempt processes a single backend. A nil return means the token fired
// and the run must terminate as cancelled.
func (o *Orchestrator) attempt(tok *Token, spec provider.Spec, rc provider.RequestContext, res *SessionResult) *AttemptOutcome {
	start := time.Now()
	outcome := func(kind OutcomeKind, reason string) *AttemptOutcome {
		return &AttemptOutcome{
			Provider: spec.ID,
			Kind:     kind,
			Reason:   reason,
			Latency:  time.Since(start),
		}
	}

	key := o.creds.Resolve(spec.KeyName)
	if tok.Cancelled() {
		return nil
	}
	if key == "" {
		return outcome(OutcomeUnconfigured, "no API key for "+spec.KeyName)
	}

	built, err := provider.Build(spec, rc, key)
	if err != nil {
		return outcome(OutcomeSoftFailure, err.Error())
	}

	if lim, ok := o.limiters[spec.ID]; ok {
		// The admission wait can be long; let the token interrupt it.
		ctx, cancel := tokenContext(tok)
		err := lim.Wait(ctx)
		cancel()
		if tok.Cancelled() {
			return nil
		}
		if err != nil {
			return outcome(OutcomeSoftFailure, err.Error())
		}
	}

	raw, err := o.transport.Exchange(context.Background(), built.URL, built.Headers, built.Body)
	if tok.Cancelled() {
		return nil
	}
	if err != nil {
		return outcome(OutcomeTransportFailure, err.Error())
	}

	text, err := provider.Normalize(raw)
	if err != nil {
		return outcome(OutcomeSoftFailure, err.Error())
	}

	if reason, soft := scanSoftFailure(raw); soft {
		return outcome(OutcomeSoftFailure, reason)
	}

	res.Text = text
	return outcome(OutcomeSuccess, "")
}

// tokenContext derives a context that is cancelled as soon as tok fires.
// The caller must invoke the returned CancelFunc to release the watcher.
func tokenContext(tok *Token) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-tok.Done():
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// scanSoftFailure applies the quota/overload heuristic to the raw body.
// It runs even after successful normalization.
func scanSoftFailure(raw []byte) (string, bool) {
	body := strings.ToLower(string(raw))
	for _, token := range softFailureTokens {
		if strings.Contains(body, token) {
			return "provider signalled " + token, true
		}
	}
	return "", false
}

func (o *Orchestrator) finish(log *zap.Logger, res SessionResult, status Status, started time.Time) SessionResult {
	res.Status = status
	res.Elapsed = time.Since(started)

	switch status {
	case StatusCompleted:
		log.Info("run completed",
			zap.String("provider", string(res.ProviderID)),
			zap.Int64("elapsed_ms", res.Elapsed.Milliseconds()),
		)
	case StatusExhausted:
		res.Text = ""
		res.ProviderID = ""
		log.Warn("run exhausted", zap.String("error", res.ErrorMessage))
	case StatusCancelled:
		// A cancelled run must not surface any result or message: the
		// user action that cancelled it already explains the absence.
		res.Text = ""
		res.ProviderID = ""
		res.ErrorMessage = ""
		log.Debug("run cancelled")
	}

	return res
}
