package llm

import (
	"errors"
	"fmt"
)

// CompletionError is the single failure kind of the completion capability: network,
// authentication, rate limiting, timeouts and malformed responses all end up here.
type CompletionError struct {
	Provider string
	Err      error
}

func (e *CompletionError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("completion failed: %v", e.Err)
	}
	return fmt.Sprintf("%s completion failed: %v", e.Provider, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// IsCompletionError reports whether err carries a *CompletionError.
func IsCompletionError(err error) bool {
	var ce *CompletionError
	return errors.As(err, &ce)
}

var errEmptyResponse = errors.New("empty response")

func wrap(provider string, err error) error {
	if err == nil || IsCompletionError(err) {
		return err
	}
	return &CompletionError{Provider: provider, Err: err}
}
