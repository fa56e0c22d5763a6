package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/config"
	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/security"
)

// RunInteractiveSetup runs the first-run setup wizard using Bubble Tea (huh).
func RunInteractiveSetup(cfgMgr *config.ViperManager) error {
	fmt.Println("No configuration found. Let's set up your standup summaries!")
	fmt.Println()

	// Ensure the config file and directory exist; an existing file is fine.
	_ = cfgMgr.Init()

	var provider string

	// Stage 1: Select Provider
	err := huh.NewSelect[string]().
		Title("Select AI Provider").
		Options(
			huh.NewOption("OpenAI", "openai"),
			huh.NewOption("Gemini", "gemini"),
		).
		Value(&provider).
		Run()
	if err != nil {
		return err
	}

	var apiKey string
	var model string
	var endpoint string

	// Set defaults based on provider
	switch provider {
	case "openai":
		model = "gpt-4o-mini"
	case "gemini":
		model = "gemini-2.5-flash"
	}

	// Stage 2: Details
	fields := []huh.Field{
		huh.NewInput().
			Title("API Key").
			Description("Enter your API key").
			Value(&apiKey).
			Password(true).
			Validate(func(s string) error {
				return security.ValidateAPIKeyFormat(provider, strings.TrimSpace(s))
			}),
		huh.NewInput().
			Title("Model Name").
			Description("Model to use").
			Value(&model).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("model name cannot be empty")
				}
				return nil
			}),
	}

	if provider == "openai" {
		fields = append(fields,
			huh.NewInput().
				Title("API Endpoint").
				Description("Optional custom endpoint").
				Value(&endpoint),
		)
	}

	err = huh.NewForm(huh.NewGroup(fields...)).Run()
	if err != nil {
		return err
	}

	// Save configuration
	if err := cfgMgr.Set("provider.name", provider); err != nil {
		return fmt.Errorf("failed to set provider: %w", err)
	}

	if err := cfgMgr.Set("provider.api_key", strings.TrimSpace(apiKey)); err != nil {
		return fmt.Errorf("failed to set api key: %w", err)
	}

	if err := cfgMgr.Set("provider.model", strings.TrimSpace(model)); err != nil {
		return fmt.Errorf("failed to set model: %w", err)
	}

	if endpoint != "" {
		if err := cfgMgr.Set("provider.base_url", strings.TrimSpace(endpoint)); err != nil {
			return fmt.Errorf("failed to set endpoint: %w", err)
		}
	}

	// The user just typed their key in, so the first-use warning is covered.
	if err := cfgMgr.AcknowledgeSecurityWarning(); err != nil {
		fmt.Println("Warning: could not record security acknowledgment:", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", cfgMgr.GetConfigPath())
	fmt.Println("Setup complete! Run 'standup' to summarize your recent commits.")
	fmt.Println()

	return nil
}
