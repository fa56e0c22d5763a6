// Package ai provides AI text generation for the standup tool.
package ai

import (
	apperrors "github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/errors"
)

// ProviderName constants for supported providers.
const (
	ProviderNameOpenAI = "openai"
	ProviderNameGemini = "gemini"
)

// IsSupportedProvider reports whether NewService accepts the named provider.
func IsSupportedProvider(name string) bool {
	switch name {
	case ProviderNameOpenAI, ProviderNameGemini:
		return true
	}
	return false
}

const (
	// DefaultTemperature is the default temperature for AI generation.
	DefaultTemperature = 0.7

	// DefaultMaxTokens is the default max tokens for AI generation.
	DefaultMaxTokens = 1000
)

// NewService creates a Service for the named provider. Every call
// constructs a fresh Service; instances share no state.
func NewService(provider string, cfg Config) (*Service, error) {
	// Set defaults
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	var generator TextGenerator
	var err error

	switch provider {
	case ProviderNameOpenAI:
		if cfg.Model == "" {
			cfg.Model = DefaultOpenAIModel
		}
		generator, err = NewOpenAIGenerator(cfg)

	case ProviderNameGemini:
		if cfg.Model == "" {
			cfg.Model = DefaultGeminiModel
		}
		generator, err = NewGeminiGenerator(cfg)

	default:
		return nil, apperrors.NewUnsupportedProviderError(provider)
	}

	if err != nil {
		return nil, err
	}

	return NewServiceWithGenerator(generator, cfg), nil
}

// validateAPIKey is the fail-fast key check shared by all providers.
func validateAPIKey(provider, apiKey string) error {
	if apiKey == "" {
		return apperrors.NewMissingAPIKeyError(provider)
	}

	if len(apiKey) < 20 {
		return apperrors.NewInvalidConfigError("API key appears to be invalid (too short)")
	}

	return nil
}
