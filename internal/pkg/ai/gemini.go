// Package ai provides AI text generation for the standup tool.
package ai

import (
	"context"
	"errors"

	"google.golang.org/genai"

	apperrors "github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/errors"
)

// DefaultGeminiModel is the default model for Google Gemini.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiGenerator implements TextGenerator for Google Gemini.
type GeminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator creates a new Gemini generator.
func NewGeminiGenerator(cfg Config) (*GeminiGenerator, error) {
	// Validate before constructing the SDK client; genai falls back to
	// ambient GEMINI_API_KEY/GOOGLE_API_KEY env vars when the config
	// key is empty.
	if err := validateAPIKey(ProviderNameGemini, cfg.APIKey); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to create Gemini client")
	}

	return &GeminiGenerator{client: client}, nil
}

// Name returns the provider name.
func (g *GeminiGenerator) Name() string {
	return ProviderNameGemini
}

// Generate sends a single-turn generation request. Gemini has no
// separate system role here; callers fold any system instruction into
// the prompt before reaching this boundary.
func (g *GeminiGenerator) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: int32(req.MaxTokens),
	}

	result, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), genConfig)
	if err != nil {
		return nil, err
	}

	if result == nil || len(result.Candidates) == 0 {
		return nil, errors.New("no response from AI provider")
	}

	out := &GenerateResult{
		Text: result.Text(),
	}
	if result.UsageMetadata != nil {
		out.Usage = &TokenUsage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return out, nil
}
