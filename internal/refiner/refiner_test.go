package refiner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/recap-flow/internal/llm"
	"github.com/nguyentantai21042004/recap-flow/internal/llm/llmtest"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/metrics"
)

const previous = "## Old\n- previous summary"

// summaryBody is a markdown summary longer than 300 characters with no meta phrase.
var summaryBody = "## Decisions\n" + strings.Repeat("- The team agreed to ship the release on Friday.\n", 10)

func TestHeuristicClassifier(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		wantReplace bool
		wantText    string
	}{
		{
			name:        "markdown summary",
			reply:       summaryBody,
			wantReplace: true,
			wantText:    summaryBody,
		},
		{
			name:        "reply without preamble is kept verbatim",
			reply:       "\n" + summaryBody + "\n\n",
			wantReplace: true,
			wantText:    "\n" + summaryBody + "\n\n",
		},
		{
			name:        "preamble stripped",
			reply:       "Here's the refined version:\n\n" + summaryBody,
			wantReplace: true,
			wantText:    strings.TrimSpace(summaryBody),
		},
		{
			name:        "other preamble stripped",
			reply:       "  Here is the refined version:  " + summaryBody,
			wantReplace: true,
			wantText:    strings.TrimSpace(summaryBody),
		},
		{
			name:        "question",
			reply:       "What specific aspects should I focus on?",
			wantReplace: false,
			wantText:    previous,
		},
		{
			name:        "meta commentary",
			reply:       "I've updated the summary to include the budget discussion.\n\n" + summaryBody,
			wantReplace: false,
			wantText:    previous,
		},
		{
			name:        "meta phrase is case insensitive",
			reply:       "LET ME know if this works.\n" + summaryBody,
			wantReplace: false,
			wantText:    previous,
		},
		{
			name:        "meta phrase after window is ignored",
			reply:       summaryBody + "\nLet me know if you want more.",
			wantReplace: true,
			wantText:    summaryBody + "\nLet me know if you want more.",
		},
		{
			name:        "long reply without heading",
			reply:       strings.Repeat("plain text answer ", 30),
			wantReplace: false,
			wantText:    previous,
		},
		{
			name:        "short markdown",
			reply:       "## Title\n- one",
			wantReplace: false,
			wantText:    previous,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HeuristicClassifier{}.Classify(tt.reply, previous)
			assert.Equal(t, tt.wantReplace, got.IsReplacementSummary)
			assert.Equal(t, tt.wantText, got.CleanedText)
		})
	}
}

func TestRefineReplacesSummary(t *testing.T) {
	fake := &llmtest.Fake{Reply: "Here's the updated summary:\n" + summaryBody}
	m := metrics.New(prometheus.NewRegistry())
	r := New(fake, Config{}, logger.NewNop(), m)

	history := []llm.Message{
		{Role: llm.RoleUser, Content: "Can you shorten it?"},
		{Role: llm.RoleAssistant, Content: "Which part?"},
	}
	res, err := r.Refine(context.Background(), Turn{
		CurrentSummary: previous,
		Language:       "fr",
		UserMessage:    "Focus on decisions",
		History:        history,
	})
	require.NoError(t, err)
	assert.True(t, res.IsSummaryUpdated)
	assert.Equal(t, strings.TrimSpace(summaryBody), res.UpdatedSummary)
	assert.Equal(t, fake.Reply, res.AssistantMessage)

	require.Equal(t, 1, fake.Calls())
	req := fake.Requests()[0]
	assert.Contains(t, req.SystemPrompt, previous)
	assert.Contains(t, req.SystemPrompt, "French")
	assert.Equal(t, "Focus on decisions", req.UserPrompt)
	assert.Equal(t, history, req.History)
	assert.InDelta(t, 0.3, req.Temperature, 1e-9)
	assert.Equal(t, 2500, req.MaxOutputTokens)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RefinementOutcomes.WithLabelValues("summary")))
}

func TestRefineExplicitZeroTemperature(t *testing.T) {
	fake := &llmtest.Fake{Reply: "ok"}
	zero := 0.0
	r := New(fake, Config{Temperature: &zero}, logger.NewNop(), nil)

	_, err := r.Refine(context.Background(), Turn{CurrentSummary: previous, UserMessage: "x"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, fake.Requests()[0].Temperature)
}

func TestRefineConversationalReply(t *testing.T) {
	fake := &llmtest.Fake{Reply: "Would you like me to drop the timeline section?"}
	r := New(fake, Config{}, logger.NewNop(), nil)

	res, err := r.Refine(context.Background(), Turn{CurrentSummary: previous, UserMessage: "hmm"})
	require.NoError(t, err)
	assert.False(t, res.IsSummaryUpdated)
	assert.Equal(t, previous, res.UpdatedSummary)
	assert.Equal(t, fake.Reply, res.AssistantMessage)
	assert.Contains(t, fake.Requests()[0].SystemPrompt, "English")
}

type alwaysReplace struct{}

func (alwaysReplace) Classify(reply, _ string) Outcome {
	return Outcome{IsReplacementSummary: true, CleanedText: reply}
}

func TestRefineCustomClassifier(t *testing.T) {
	fake := &llmtest.Fake{Reply: "short"}
	r := New(fake, Config{}, logger.NewNop(), nil, WithClassifier(alwaysReplace{}))

	res, err := r.Refine(context.Background(), Turn{CurrentSummary: previous, UserMessage: "x"})
	require.NoError(t, err)
	assert.True(t, res.IsSummaryUpdated)
	assert.Equal(t, "short", res.UpdatedSummary)
}

func TestRefineCompletionError(t *testing.T) {
	fake := &llmtest.Fake{Respond: func(llm.Request) (string, error) {
		return "", &llm.CompletionError{Provider: "fake", Err: errors.New("unauthorized")}
	}}
	r := New(fake, Config{}, logger.NewNop(), nil)

	res, err := r.Refine(context.Background(), Turn{CurrentSummary: previous, UserMessage: "x"})
	require.Error(t, err)
	assert.True(t, llm.IsCompletionError(err))
	assert.Equal(t, Result{}, res)
}
