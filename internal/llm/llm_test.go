package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/openai/openai-go/option"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/metrics"
)

type stubCompleter struct {
	out   string
	err   error
	delay time.Duration
}

func (s stubCompleter) Complete(ctx context.Context, req Request) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.out, s.err
}

func TestCompletionError(t *testing.T) {
	base := errors.New("429 too many requests")
	err := error(&CompletionError{Provider: "openai", Err: base})

	assert.True(t, IsCompletionError(err))
	assert.True(t, IsCompletionError(errors.Join(errors.New("summarize"), err)))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "openai completion failed: 429 too many requests", err.Error())
	assert.False(t, IsCompletionError(base))
}

func TestWithTimeout(t *testing.T) {
	c := WithTimeout(stubCompleter{out: "late", delay: time.Second}, 20*time.Millisecond)

	_, err := c.Complete(context.Background(), Request{UserPrompt: "x"})
	require.Error(t, err)
	assert.True(t, IsCompletionError(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWithTimeoutPassesThrough(t *testing.T) {
	c := WithTimeout(stubCompleter{out: "fast"}, time.Second)

	out, err := c.Complete(context.Background(), Request{UserPrompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "fast", out)
}

func TestInstrument(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	ok := Instrument(stubCompleter{out: "a"}, "openai", m)
	bad := Instrument(stubCompleter{err: &CompletionError{Provider: "openai", Err: errors.New("boom")}}, "openai", m)

	_, _ = ok.Complete(context.Background(), Request{})
	_, _ = bad.Complete(context.Background(), Request{})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CompletionRequests.WithLabelValues("openai", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CompletionRequests.WithLabelValues("openai", "error")))
}

func TestOpenAIComplete(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "## Summary\nAll good."}}]
		}`))
	}))
	defer srv.Close()

	c, err := NewOpenAI("sk-test", "gpt-4o-mini", option.WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), Request{
		SystemPrompt:    "system",
		History:         []Message{{Role: RoleUser, Content: "shorter"}, {Role: RoleAssistant, Content: "ok"}},
		UserPrompt:      "now",
		Temperature:     0.2,
		MaxOutputTokens: 1500,
	})
	require.NoError(t, err)
	assert.Equal(t, "## Summary\nAll good.", out)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.InDelta(t, 0.2, got.Temperature, 1e-9)
	assert.Equal(t, 1500, got.MaxTokens)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Equal(t, "now", got.Messages[3].Content)
}

func TestOpenAIRateLimitIsCompletionError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limited", "type": "rate_limit_exceeded"}}`))
	}))
	defer srv.Close()

	c, err := NewOpenAI("sk-test", "gpt-4o-mini", option.WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), Request{UserPrompt: "x"})
	require.Error(t, err)
	assert.True(t, IsCompletionError(err))
	assert.Equal(t, int32(1), calls.Load(), "no implicit retry")
}

func TestNewValidatesKeys(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"openai without key", config.Config{LLM: config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini"}}, true},
		{"openai with key", config.Config{LLM: config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini", APIKey: "sk"}}, false},
		{"gemini without keys", config.Config{LLM: config.LLMConfig{Provider: "gemini", Model: "gemini-2.5-flash"}}, true},
		{"gemini with keys", config.Config{LLM: config.LLMConfig{Provider: "gemini", Model: "gemini-2.5-flash", APIKeys: []string{"k"}}}, false},
		{"unknown provider", config.Config{LLM: config.LLMConfig{Provider: "other"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(&tt.cfg, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestGeminiRotatesKeys(t *testing.T) {
	c, err := NewGemini([]string{"a", "b", "c"}, "gemini-2.5-flash")
	require.NoError(t, err)
	g := c.(*geminiCompleter)

	assert.Equal(t, []string{"a", "b", "c", "a"}, []string{g.rotateKey(), g.rotateKey(), g.rotateKey(), g.rotateKey()})
}

func TestGeminiRequestMapping(t *testing.T) {
	req := Request{
		SystemPrompt:    "sys",
		History:         []Message{{Role: RoleUser, Content: "q"}, {Role: RoleAssistant, Content: "a"}},
		UserPrompt:      "next",
		Temperature:     0.3,
		MaxOutputTokens: 2500,
	}

	contents := geminiContents(req)
	require.Len(t, contents, 3)
	assert.Equal(t, "model", string(contents[1].Role))
	assert.Equal(t, "next", contents[2].Parts[0].Text)

	cfg := geminiConfig(req)
	assert.Equal(t, int32(2500), cfg.MaxOutputTokens)
	assert.InDelta(t, 0.3, float64(*cfg.Temperature), 1e-6)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "sys", cfg.SystemInstruction.Parts[0].Text)
}
