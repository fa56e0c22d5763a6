// Package cmd contains the CLI command definitions for the standup tool.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the standup CLI.
func NewRootCmd(version, commitHash, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "standup",
		Short: "AI-powered standup summaries from your git history",
		Long: `Standup turns your recent git commits into a short daily standup summary.

It collects commit subjects from a configurable time window, sends them to
a configurable AI provider (OpenAI, Gemini), and prints a summary you can
paste into chat or read aloud in your standup meeting.`,
		Version: version,
		// Errors are formatted centrally in main with exit codes and
		// suggestions, so cobra's own reporting stays quiet.
		SilenceErrors: true,
		SilenceUsage:  true,
		// Default action is to run the summarize command
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get summarize-specific flags from root command
			since, _ := cmd.Flags().GetString("since")
			author, _ := cmd.Flags().GetString("author")
			limit, _ := cmd.Flags().GetInt("limit")
			includeMerges, _ := cmd.Flags().GetBool("include-merges")
			output, _ := cmd.Flags().GetString("output")
			yes, _ := cmd.Flags().GetBool("yes")

			flags := &SummarizeFlags{
				Since:         since,
				Author:        author,
				Limit:         limit,
				IncludeMerges: includeMerges,
				OutputFile:    output,
				Yes:           yes,
			}

			return runSummarize(cmd, flags)
		},
	}

	// Set version template
	rootCmd.SetVersionTemplate(`standup {{.Version}}
Commit: ` + commitHash + `
Built:  ` + date + "\n")

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: ~/.standup/config.yaml)")
	rootCmd.PersistentFlags().String("provider", "", "AI provider to use (openai, gemini)")
	rootCmd.PersistentFlags().String("model", "", "AI model to use")

	// Add summarize-specific flags to root command for the default action
	rootCmd.Flags().String("since", "", `Time window for commits (e.g. "24 hours ago")`)
	rootCmd.Flags().String("author", "", "Only include commits from this author")
	rootCmd.Flags().Int("limit", 0, "Maximum number of commits to summarize")
	rootCmd.Flags().Bool("include-merges", false, "Include merge commits")
	rootCmd.Flags().StringP("output", "o", "", "Write the summary to a file")
	rootCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompts (non-interactive mode)")

	// Add subcommands
	rootCmd.AddCommand(NewSummarizeCmd())
	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewHistoryCmd())

	return rootCmd
}
