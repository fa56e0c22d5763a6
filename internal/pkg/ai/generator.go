// Package ai provides AI text generation for the standup tool.
package ai

import "context"

// Config contains configuration for an AI service.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	MaxTokens   int
}

// TokenUsage reports token accounting for a single generation call.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// GenerateRequest contains the data for a single generation call.
type GenerateRequest struct {
	Model       string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// GenerateResult contains the raw output of a generation call.
// Usage is nil when the provider reports no token accounting.
type GenerateResult struct {
	Text  string
	Usage *TokenUsage
}

// TextGenerator is the provider boundary: one prompt in, one completion
// out. Implementations must be safe for concurrent use.
type TextGenerator interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error)
	Name() string
}
