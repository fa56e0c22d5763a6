// Package app contains the application layer with business orchestration logic.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/config"
	apperrors "github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/errors"
	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/git"
	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/history"
	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/ui"
)

// writeFile is a variable to allow mocking in tests.
var writeFile = os.WriteFile

// FallbackCommitCount is how many commits are offered when the requested
// window turns out to be empty.
const FallbackCommitCount = 10

// DefaultWindow is used when neither the options nor the configuration
// name a time window.
const DefaultWindow = "24 hours ago"

// Summarizer narrows the AI service to what the standup flow needs.
type Summarizer interface {
	SummarizeCommits(ctx context.Context, commits []string) (string, error)
	Provider() string
	Model() string
}

// StandupOptions contains options for the standup workflow. Zero values
// fall back to the configuration.
type StandupOptions struct {
	Since         string
	Author        string
	Limit         int
	IncludeMerges bool
	OutputFile    string
	SkipConfirm   bool
}

// StandupService orchestrates the standup summary workflow.
type StandupService struct {
	gitClient  git.Client
	summarizer Summarizer
	uiManager  ui.Manager
	history    history.Manager
	config     *config.Config
}

// NewStandupService creates a new StandupService with the given dependencies.
// A nil history manager disables summary recording.
func NewStandupService(
	gitClient git.Client,
	summarizer Summarizer,
	uiManager ui.Manager,
	historyMgr history.Manager,
	cfg *config.Config,
) *StandupService {
	return &StandupService{
		gitClient:  gitClient,
		summarizer: summarizer,
		uiManager:  uiManager,
		history:    historyMgr,
		config:     cfg,
	}
}

// Run executes the standup workflow.
// Workflow: verify repo, collect commits, summarize, display, record,
// then an optional file write.
func (s *StandupService) Run(ctx context.Context, opts *StandupOptions) error {
	if opts == nil {
		opts = &StandupOptions{}
	}
	resolved := s.resolveOptions(opts)

	// Step 1: Make sure we are inside a repository
	if !s.gitClient.IsRepository(ctx) {
		return apperrors.New(apperrors.ErrGitCommandFailed, "not a git repository").
			WithSuggestion("Run standup inside a git repository")
	}

	// Step 2: Collect the commit window
	spinner := s.uiManager.ShowSpinner("Collecting recent commits...")
	spinner.Start()

	commits, err := s.gitClient.RecentCommits(ctx, git.LogOptions{
		Since:         resolved.Since,
		Author:        resolved.Author,
		Limit:         resolved.Limit,
		IncludeMerges: resolved.IncludeMerges,
	})
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("failed to collect commits: %w", err)
	}

	// Step 3: Offer the last few commits when the window is empty
	if len(commits) == 0 {
		commits, err = s.fallbackToLastCommits(ctx, &resolved)
		if err != nil {
			return err
		}
	}

	// Step 4: Generate the summary
	spinner = s.uiManager.ShowSpinner(fmt.Sprintf("Summarizing %d commits...", len(commits)))
	spinner.Start()

	summary, err := s.summarizer.SummarizeCommits(ctx, git.Subjects(commits))
	spinner.Stop()
	if err != nil {
		return err
	}

	// Step 5: Display
	meta := ui.SummaryMeta{
		CommitCount: len(commits),
		Window:      resolved.Since,
		Provider:    s.summarizer.Provider(),
		Model:       s.summarizer.Model(),
	}
	if err := s.uiManager.DisplaySummary(summary, meta); err != nil {
		return fmt.Errorf("failed to display summary: %w", err)
	}

	// Step 6: Record the summary. Failures here are not fatal.
	s.recordSummary(summary, meta)

	// Step 7: Optional file output
	if resolved.OutputFile != "" {
		return s.writeToFile(resolved.OutputFile, summary)
	}

	return nil
}

// recordSummary stores the generated summary in the local history.
func (s *StandupService) recordSummary(summary string, meta ui.SummaryMeta) {
	if s.history == nil {
		return
	}

	entry := &history.Entry{
		Summary:     summary,
		CommitCount: meta.CommitCount,
		Window:      meta.Window,
		Provider:    meta.Provider,
		Model:       meta.Model,
	}
	if err := s.history.Save(entry); err != nil {
		apperrors.Warn("Failed to record summary in history: %v", err)
	}
}

// resolveOptions fills unset options from the configuration.
func (s *StandupService) resolveOptions(opts *StandupOptions) StandupOptions {
	resolved := *opts

	if s.config != nil {
		if resolved.Since == "" {
			resolved.Since = s.config.Git.Since
		}
		if resolved.Author == "" {
			resolved.Author = s.config.Git.Author
		}
		if resolved.Limit <= 0 {
			resolved.Limit = s.config.Git.MaxCommits
		}
		if !resolved.IncludeMerges {
			resolved.IncludeMerges = s.config.Git.IncludeMerges
		}
	}
	if resolved.Since == "" {
		resolved.Since = DefaultWindow
	}

	return resolved
}

// fallbackToLastCommits prompts the user to summarize the most recent
// commits when the requested window came back empty.
func (s *StandupService) fallbackToLastCommits(ctx context.Context, opts *StandupOptions) ([]git.Commit, error) {
	prompt := fmt.Sprintf("No commits found since %s. Summarize the last %d commits instead?",
		opts.Since, FallbackCommitCount)
	confirmed, err := s.uiManager.PromptConfirm(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to prompt user: %w", err)
	}
	if !confirmed {
		return nil, apperrors.NewNoCommitsError(opts.Since)
	}

	spinner := s.uiManager.ShowSpinner("Collecting last commits...")
	spinner.Start()

	commits, err := s.gitClient.RecentCommits(ctx, git.LogOptions{
		Author:        opts.Author,
		Limit:         FallbackCommitCount,
		IncludeMerges: opts.IncludeMerges,
	})
	spinner.Stop()
	if err != nil {
		return nil, fmt.Errorf("failed to collect commits: %w", err)
	}
	if len(commits) == 0 {
		return nil, apperrors.NewNoCommitsError(opts.Since)
	}

	return commits, nil
}

// writeToFile writes the summary to a file.
func (s *StandupService) writeToFile(filePath, content string) error {
	if err := writeFile(filePath, []byte(content+"\n"), 0644); err != nil {
		return apperrors.NewFileSystemError(filePath, err)
	}

	s.uiManager.ShowSuccess(fmt.Sprintf("Summary written to %s", filePath))
	return nil
}
