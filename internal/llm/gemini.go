package llm

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"google.golang.org/genai"
)

const providerGemini = "gemini"

type geminiCompleter struct {
	apiKeys []string
	next    atomic.Uint64
	model   string
}

// NewGemini creates a Completer backed by the Gemini API. Calls are spread over the
// supplied keys round-robin; a failed call is not retried on another key.
func NewGemini(apiKeys []string, model string) (Completer, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("gemini: no api keys")
	}
	if model == "" {
		return nil, fmt.Errorf("gemini: model is empty")
	}
	return &geminiCompleter{
		apiKeys: append([]string(nil), apiKeys...),
		model:   model,
	}, nil
}

func (g *geminiCompleter) rotateKey() string {
	n := g.next.Add(1) - 1
	return g.apiKeys[n%uint64(len(g.apiKeys))]
}

func (g *geminiCompleter) Complete(ctx context.Context, req Request) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.rotateKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", wrap(providerGemini, fmt.Errorf("create client: %w", err))
	}

	result, err := client.Models.GenerateContent(ctx, g.model, geminiContents(req), geminiConfig(req))
	if err != nil {
		return "", wrap(providerGemini, fmt.Errorf("generate content: %w", err))
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text.WriteString(part.Text)
			}
		}
		if text.Len() > 0 {
			return text.String(), nil
		}
	}

	return "", wrap(providerGemini, errEmptyResponse)
}

func geminiContents(req Request) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, m := range req.History {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.Role(genai.RoleModel)
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return append(contents, genai.NewContentFromText(req.UserPrompt, genai.Role(genai.RoleUser)))
}

func geminiConfig(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxOutputTokens),
	}
	if req.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.Role(genai.RoleUser))
	}
	return cfg
}
