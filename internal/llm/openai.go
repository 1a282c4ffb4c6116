package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const providerOpenAI = "openai"

type openAICompleter struct {
	client openai.Client
	model  string
}

// NewOpenAI creates a Completer backed by the OpenAI chat completions API. The SDK's
// built-in retries are disabled.
func NewOpenAI(apiKey, model string, opts ...option.RequestOption) (Completer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: api key is empty")
	}
	if model == "" {
		return nil, fmt.Errorf("openai: model is empty")
	}

	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &openAICompleter{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (c *openAICompleter) Complete(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.History)+2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	for _, m := range req.History {
		if m.Role == RoleAssistant {
			messages = append(messages, openai.AssistantMessage(m.Content))
		} else {
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	messages = append(messages, openai.UserMessage(req.UserPrompt))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxOutputTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxOutputTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", wrap(providerOpenAI, err)
	}
	if len(resp.Choices) == 0 {
		return "", wrap(providerOpenAI, errEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
