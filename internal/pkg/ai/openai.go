// Package ai provides AI text generation for the standup tool.
package ai

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the default model for OpenAI.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIGenerator implements TextGenerator for OpenAI and
// OpenAI-compatible endpoints.
type OpenAIGenerator struct {
	client *openai.Client
}

// NewOpenAIGenerator creates a new OpenAI generator.
func NewOpenAIGenerator(cfg Config) (*OpenAIGenerator, error) {
	if err := validateAPIKey(ProviderNameOpenAI, cfg.APIKey); err != nil {
		return nil, err
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)

	// Support custom endpoints (for OpenAI-compatible APIs)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// Name returns the provider name.
func (g *OpenAIGenerator) Name() string {
	return ProviderNameOpenAI
}

// Generate sends a single-turn chat completion request. The effective
// prompt travels as one user message; callers fold any system
// instruction into the prompt before reaching this boundary.
func (g *OpenAIGenerator) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no response from AI provider")
	}

	return &GenerateResult{
		Text: resp.Choices[0].Message.Content,
		Usage: &TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
