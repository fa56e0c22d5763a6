// Package ai provides AI text generation for the standup tool.
package ai

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/errors"
)

// Response contains generated content and optional token accounting.
type Response struct {
	Content string
	Usage   *TokenUsage
}

// Service generates text through a single underlying provider. The
// provider-specific work lives behind the TextGenerator interface, so
// one Service covers every provider.
//
// A Service holds only its generator and read-only config, so a single
// instance is safe for concurrent use.
type Service struct {
	generator TextGenerator
	config    Config
}

// NewServiceWithGenerator creates a Service on top of an existing
// generator. Most callers should use NewService instead.
func NewServiceWithGenerator(generator TextGenerator, cfg Config) *Service {
	return &Service{
		generator: generator,
		config:    cfg,
	}
}

// Provider returns the name of the underlying provider.
func (s *Service) Provider() string {
	return s.generator.Name()
}

// Model returns the model identifier requests are sent with.
func (s *Service) Model() string {
	return s.config.Model
}

// GenerateResponse produces a completion for the given prompt. When
// systemPrompt is non-empty it is prepended to the prompt separated by
// a blank line; otherwise the prompt is sent exactly as given.
//
// Each call issues exactly one upstream request: no retries, no
// caching, no service-imposed timeout. Cancellation and deadlines
// arrive through ctx.
func (s *Service) GenerateResponse(ctx context.Context, prompt, systemPrompt string) (*Response, error) {
	effective := prompt
	if systemPrompt != "" {
		effective = systemPrompt + "\n\n" + prompt
	}

	requestID := uuid.NewString()
	apperrors.LogAPIRequest(requestID, s.generator.Name(), s.config.Model, len(effective))
	startTime := time.Now()

	result, err := s.generator.Generate(ctx, &GenerateRequest{
		Model:       s.config.Model,
		Prompt:      effective,
		Temperature: s.config.Temperature,
		MaxTokens:   s.config.MaxTokens,
	})
	if err != nil {
		apperrors.Debug("generation failed: id=%s, provider=%s: %v",
			requestID, s.generator.Name(), apperrors.SanitizeErrorMessage(err.Error()))
		return nil, apperrors.NewGenerationError(s.generator.Name(), err)
	}

	apperrors.LogAPIResponse(requestID, s.generator.Name(), len(result.Text), time.Since(startTime))

	return &Response{
		Content: result.Text,
		Usage:   normalizeUsage(result.Usage),
	}, nil
}

// SummarizeCommits generates a standup summary from commit subjects.
// It renders the fixed standup prompt with the subjects newline-joined,
// delegates to GenerateResponse, and returns only the summary text.
func (s *Service) SummarizeCommits(ctx context.Context, commits []string) (string, error) {
	if len(commits) == 0 {
		return "", apperrors.New(apperrors.ErrNoCommits, "no commits provided")
	}

	prompt, err := RenderSummaryPrompt(commits)
	if err != nil {
		return "", err
	}

	resp, err := s.GenerateResponse(ctx, prompt, SummarySystemPrompt)
	if err != nil {
		return "", err
	}

	return resp.Content, nil
}

// normalizeUsage copies the provider's usage, filling in the total when
// only the prompt and completion counts were reported.
func normalizeUsage(usage *TokenUsage) *TokenUsage {
	if usage == nil {
		return nil
	}

	out := *usage
	if out.TotalTokens == 0 {
		out.TotalTokens = out.PromptTokens + out.CompletionTokens
	}
	return &out
}
