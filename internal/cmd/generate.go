package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/config"
	apperrors "github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/errors"
	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/security"
)

// NewGenerateCmd creates the generate command for free-form prompts.
func NewGenerateCmd() *cobra.Command {
	var systemPrompt string

	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Send a free-form prompt to the configured AI provider",
		Long: `Send a free-form prompt to the configured AI provider and print the
response to stdout.

An optional system prompt can be supplied with --system; it is placed
before the prompt. This bypasses git entirely and is useful for trying
out providers and models.

Examples:
  standup generate "Summarize: fixed login bug, added tests"
  standup generate --system "Answer in one sentence." "What is a standup?"
  standup generate --provider gemini "Hello"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], systemPrompt)
		},
	}

	cmd.Flags().StringVar(&systemPrompt, "system", "", "System prompt placed before the prompt")

	return cmd
}

// runGenerate executes a single generation call outside the standup workflow.
func runGenerate(cmd *cobra.Command, prompt, systemPrompt string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	verbose, _ := cmd.Flags().GetBool("verbose")
	configPath, _ := cmd.Flags().GetString("config")
	providerOverride, _ := cmd.Flags().GetString("provider")
	modelOverride, _ := cmd.Flags().GetString("model")

	apperrors.SetVerbose(verbose)

	if strings.TrimSpace(prompt) == "" {
		return apperrors.NewInvalidArgumentsError("prompt cannot be empty")
	}

	cfgMgr, err := config.NewManager(configPath)
	if err != nil {
		apperrors.Error("Failed to create config manager: %v", err)
		return apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to create config manager")
	}

	if !cfgMgr.ConfigExists() {
		return apperrors.NewInvalidConfigError("no configuration found")
	}

	if providerOverride != "" {
		cfgMgr.SetOverride("provider.name", providerOverride)
	}
	if modelOverride != "" {
		cfgMgr.SetOverride("provider.model", modelOverride)
	}

	cfg, err := cfgMgr.Load()
	if err != nil {
		apperrors.Error("Failed to load config: %v", err)
		return apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to load config")
	}

	if err := security.ValidateAPIKeyFormat(cfg.Provider.Name, cfg.Provider.APIKey); err != nil {
		apperrors.Error("API key validation failed: %v", err)
		return apperrors.Wrap(err, apperrors.ErrInvalidConfig, "invalid API key")
	}

	svc, err := newAIService(cfg)
	if err != nil {
		return err
	}

	if verbose {
		apperrors.Info("Using provider: %s", svc.Provider())
		apperrors.Info("Using model: %s", svc.Model())
	}

	resp, err := svc.GenerateResponse(ctx, prompt, systemPrompt)
	if err != nil {
		return err
	}

	fmt.Println(resp.Content)

	if verbose && resp.Usage != nil {
		apperrors.Info("Token usage: prompt=%d completion=%d total=%d",
			resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
	}

	return nil
}
