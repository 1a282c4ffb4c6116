// Package llmtest provides a scripted llm.Completer for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/recap-flow/internal/llm"
)

// Fake records every request and answers through Respond. Safe for concurrent use.
type Fake struct {
	// Respond builds the reply for a request. When nil, Reply is returned.
	Respond func(req llm.Request) (string, error)
	Reply   string

	mu       sync.Mutex
	requests []llm.Request
}

func (f *Fake) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", &llm.CompletionError{Provider: "fake", Err: err}
	}
	if f.Respond != nil {
		return f.Respond(req)
	}
	return f.Reply, nil
}

// Requests returns a copy of the recorded requests in arrival order.
func (f *Fake) Requests() []llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.Request(nil), f.requests...)
}

// Calls returns the number of recorded requests.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}
