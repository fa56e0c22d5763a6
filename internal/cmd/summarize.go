package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/r-vigneshwaran/ai-standup-summary/internal/app"
	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/ai"
	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/config"
	apperrors "github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/errors"
	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/git"
	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/history"
	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/security"
	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/ui"
)

// SummarizeFlags holds the command-line flags for the summarize command.
type SummarizeFlags struct {
	Since         string
	Author        string
	Limit         int
	IncludeMerges bool
	OutputFile    string
	Yes           bool
}

// NewSummarizeCmd creates the summarize command.
func NewSummarizeCmd() *cobra.Command {
	flags := &SummarizeFlags{}

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize recent commits into a standup update",
		Long: `Summarize the commits in a time window into a short standup update.

The command collects commit subjects from the repository in the current
directory, sends them to the configured AI provider, and displays the
generated summary.

Examples:
  standup summarize                        # Commits from the last 24 hours
  standup summarize --since "3 days ago"   # A wider window
  standup summarize --author alice         # Commits by one author
  standup summarize -o standup.txt         # Also write the summary to a file
  standup summarize --yes                  # Non-interactive mode`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummarize(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.Since, "since", "", `Time window for commits (e.g. "24 hours ago")`)
	cmd.Flags().StringVar(&flags.Author, "author", "", "Only include commits from this author")
	cmd.Flags().IntVar(&flags.Limit, "limit", 0, "Maximum number of commits to summarize")
	cmd.Flags().BoolVar(&flags.IncludeMerges, "include-merges", false, "Include merge commits")
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", "", "Write the summary to a file")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip confirmation prompts (non-interactive mode)")

	return cmd
}

// runSummarize executes the summarize workflow.
func runSummarize(cmd *cobra.Command, flags *SummarizeFlags) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	verbose, _ := cmd.Flags().GetBool("verbose")
	configPath, _ := cmd.Flags().GetString("config")
	providerOverride, _ := cmd.Flags().GetString("provider")
	modelOverride, _ := cmd.Flags().GetString("model")

	apperrors.SetVerbose(verbose)

	if !git.Installed() {
		return apperrors.New(apperrors.ErrGitCommandFailed, "git not found in PATH").
			WithSuggestion("Install git and make sure it is on your PATH")
	}

	cfgMgr, err := config.NewManager(configPath)
	if err != nil {
		apperrors.Error("Failed to create config manager: %v", err)
		return apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to create config manager")
	}

	if configPath != "" {
		apperrors.Debug("Using custom config path: %s", configPath)
	}

	if !cfgMgr.ConfigExists() {
		if flags.Yes {
			// The setup wizard needs a terminal; non-interactive runs can't use it.
			return apperrors.NewInvalidConfigError("no configuration found")
		}
		if err := ui.RunInteractiveSetup(cfgMgr); err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}
	}

	// Flag overrides take highest priority and never persist.
	if providerOverride != "" {
		cfgMgr.SetOverride("provider.name", providerOverride)
		apperrors.Debug("Provider overridden via flag: %s", providerOverride)
	}
	if modelOverride != "" {
		cfgMgr.SetOverride("provider.model", modelOverride)
		apperrors.Debug("Model overridden via flag: %s", modelOverride)
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

	if !cfg.Security.WarningAcknowledged {
		if err := showSecurityWarning(cfgMgr, flags.Yes); err != nil {
			return err
		}
	}

	if verbose {
		apperrors.Info("Using provider: %s", cfg.Provider.Name)
		apperrors.Info("Using model: %s", cfg.Provider.Model)
		if cfg.Provider.APIKey != "" {
			apperrors.Info("API key: %s", security.MaskAPIKey(cfg.Provider.APIKey))
		}
	}

	summarizer, err := newAIService(cfg)
	if err != nil {
		return err
	}
	apperrors.Debug("AI provider created: %s", summarizer.Provider())

	gitClient := git.NewClient()
	uiMgr := newUIManager(flags.Yes, cfg.UI.ColorEnabled)
	historyMgr := newHistoryManager(cfgMgr)

	service := app.NewStandupService(gitClient, summarizer, uiMgr, historyMgr, cfg)

	opts := &app.StandupOptions{
		Since:         flags.Since,
		Author:        flags.Author,
		Limit:         flags.Limit,
		IncludeMerges: flags.IncludeMerges,
		OutputFile:    flags.OutputFile,
		SkipConfirm:   flags.Yes,
	}

	return service.Run(ctx, opts)
}

// newAIService builds the AI service from the provider configuration.
// Factory errors already carry codes and suggestions, so they pass
// through unwrapped.
func newAIService(cfg *config.Config) (*ai.Service, error) {
	svc, err := ai.NewService(cfg.Provider.Name, ai.Config{
		APIKey:      cfg.Provider.APIKey,
		Model:       cfg.Provider.Model,
		BaseURL:     cfg.Provider.BaseURL,
		Temperature: cfg.Provider.Temperature,
		MaxTokens:   cfg.Provider.MaxTokens,
	})
	if err != nil {
		apperrors.Error("Failed to create AI service: %v", err)
		return nil, err
	}
	return svc, nil
}

// newUIManager picks the UI for the session.
func newUIManager(nonInteractive, colorEnabled bool) ui.Manager {
	if nonInteractive {
		return ui.NewNonInteractiveManager()
	}
	return ui.NewDefaultManager(colorEnabled)
}

// newHistoryManager stores summaries next to the config file, so a
// custom --config path gets its own history.
func newHistoryManager(cfgMgr *config.ViperManager) history.Manager {
	historyPath := filepath.Join(filepath.Dir(cfgMgr.GetConfigPath()), "history.json")
	return history.NewFileManager(historyPath, history.DefaultMaxEntries)
}

// showSecurityWarning displays the first-use security warning and asks the
// user to acknowledge it. With autoAccept the prompt is skipped.
func showSecurityWarning(cfgMgr *config.ViperManager, autoAccept bool) error {
	fmt.Print(security.FirstUseWarning)

	if autoAccept {
		fmt.Println("Auto-acknowledging security warning (--yes flag provided)")
	} else {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Do you acknowledge and accept these terms? [y/N]: ")

		response, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read user input: %w", err)
		}

		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			return fmt.Errorf("security warning not acknowledged - operation cancelled")
		}
	}

	if err := cfgMgr.AcknowledgeSecurityWarning(); err != nil {
		apperrors.Warn("Failed to save security acknowledgment: %v", err)
	}

	fmt.Println(security.FirstUseAcknowledgment)
	return nil
}
