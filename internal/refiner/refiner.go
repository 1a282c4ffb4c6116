package refiner

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/recap-flow/internal/llm"
)

const systemPromptTemplate = `You help a user refine a meeting summary written in Markdown.

Current summary:
---
%s
---

If the user asks for a change to the summary (shorter, longer, another focus, another structure,
added or removed sections, different emphasis), reply with the complete revised summary in Markdown
and nothing else: no introduction, no explanation after it.
If the user asks a question or the request is unclear, answer briefly in plain text without
rewriting the summary.
Always write in %s.`

var languageNames = map[string]string{
	"en": "English",
	"fr": "French",
}

func languageName(code string) string {
	if name, ok := languageNames[strings.ToLower(strings.TrimSpace(code))]; ok {
		return name
	}
	return languageNames["en"]
}

// Refine replays the conversation, asks for one reply and classifies it.
func (r *implRefiner) Refine(ctx context.Context, turn Turn) (Result, error) {
	reply, err := r.completer.Complete(ctx, llm.Request{
		SystemPrompt:    fmt.Sprintf(systemPromptTemplate, turn.CurrentSummary, languageName(turn.Language)),
		History:         turn.History,
		UserPrompt:      turn.UserMessage,
		Temperature:     *r.cfg.Temperature,
		MaxOutputTokens: r.cfg.MaxOutputTokens,
	})
	if err != nil {
		r.logger.Error(ctx, "Refinement completion failed: %v", err)
		return Result{}, err
	}

	outcome := r.classifier.Classify(reply, turn.CurrentSummary)
	r.metrics.ObserveRefinement(outcome.IsReplacementSummary)
	r.logger.Info(ctx, "Refinement reply (%d chars) replaces summary: %t", len(reply), outcome.IsReplacementSummary)

	return Result{
		AssistantMessage: reply,
		IsSummaryUpdated: outcome.IsReplacementSummary,
		UpdatedSummary:   outcome.CleanedText,
	}, nil
}
