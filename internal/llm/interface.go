// Package llm is the completion capability: a black box that turns a system prompt,
// a user prompt and optional prior turns into text.
package llm

import "context"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one prior conversational turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is a single completion call.
type Request struct {
	SystemPrompt string
	// History is replayed before UserPrompt, oldest first.
	History         []Message
	UserPrompt      string
	Temperature     float64
	MaxOutputTokens int
}

// Completer performs one completion call. Implementations never retry; every failure
// is reported as a *CompletionError.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
