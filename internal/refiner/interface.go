package refiner

import (
	"context"

	"github.com/nguyentantai21042004/recap-flow/internal/llm"
)

// Outcome is the classification of one refinement reply.
type Outcome struct {
	IsReplacementSummary bool
	// CleanedText is the reply without its leading preamble when it replaces the
	// summary, and the previous summary otherwise.
	CleanedText string
}

// Classifier decides whether a model reply is a new summary or a conversational answer.
type Classifier interface {
	Classify(reply, previous string) Outcome
}

// Turn is one user message in a refinement conversation about a summary.
type Turn struct {
	CurrentSummary string
	Language       string
	UserMessage    string
	History        []llm.Message
}

// Result is what the caller shows and, when IsSummaryUpdated, persists.
type Result struct {
	AssistantMessage string
	IsSummaryUpdated bool
	UpdatedSummary   string
}

// Refiner runs one conversational refinement turn.
type Refiner interface {
	Refine(ctx context.Context, turn Turn) (Result, error)
}
