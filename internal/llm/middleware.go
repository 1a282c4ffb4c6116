package llm

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/recap-flow/internal/metrics"
)

type timeoutCompleter struct {
	next    Completer
	timeout time.Duration
}

// WithTimeout bounds every call made through c. A call that runs out of time fails
// with a *CompletionError wrapping context.DeadlineExceeded.
func WithTimeout(c Completer, timeout time.Duration) Completer {
	if timeout <= 0 {
		return c
	}
	return &timeoutCompleter{next: c, timeout: timeout}
}

func (t *timeoutCompleter) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	out, err := t.next.Complete(ctx, req)
	if err != nil {
		return "", wrap("", err)
	}
	return out, nil
}

type instrumentedCompleter struct {
	next     Completer
	provider string
	metrics  *metrics.Metrics
}

// Instrument records the latency and outcome of every call made through c.
func Instrument(c Completer, provider string, m *metrics.Metrics) Completer {
	if m == nil {
		return c
	}
	return &instrumentedCompleter{next: c, provider: provider, metrics: m}
}

func (i *instrumentedCompleter) Complete(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	out, err := i.next.Complete(ctx, req)
	i.metrics.ObserveCompletion(i.provider, time.Since(start).Seconds(), err)
	return out, err
}
