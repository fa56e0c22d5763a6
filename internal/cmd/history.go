package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/config"
	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/history"
)

// NewHistoryCmd creates the history command and its subcommands.
func NewHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "View previously generated summaries",
		Long: `View and manage previously generated standup summaries.

Every successful run records its summary in a history file stored next
to the configuration file.`,
	}

	historyCmd.AddCommand(newHistoryListCmd())
	historyCmd.AddCommand(newHistoryClearCmd())

	return historyCmd
}

// newHistoryListCmd creates the 'history list' subcommand.
func newHistoryListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent summaries",
		Long: `Display recently generated summaries, newest first.

Examples:
  standup history list
  standup history list --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfgMgr, err := config.NewManager(configPath)
			if err != nil {
				return fmt.Errorf("failed to create config manager: %w", err)
			}

			entries, err := newHistoryManager(cfgMgr).List(limit)
			if err != nil {
				if errors.Is(err, history.ErrCorrupt) {
					return fmt.Errorf("%w (run 'standup history clear' to reset it)", err)
				}
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No summaries recorded yet.")
				return nil
			}

			for _, entry := range entries {
				printHistoryEntry(entry)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of summaries to show")

	return cmd
}

// newHistoryClearCmd creates the 'history clear' subcommand.
func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfgMgr, err := config.NewManager(configPath)
			if err != nil {
				return fmt.Errorf("failed to create config manager: %w", err)
			}

			if err := newHistoryManager(cfgMgr).Clear(); err != nil {
				return err
			}

			fmt.Println("History cleared.")
			return nil
		},
	}
}

// printHistoryEntry renders one entry with a metadata header followed by
// the indented summary text.
func printHistoryEntry(entry *history.Entry) {
	noun := "commits"
	if entry.CommitCount == 1 {
		noun = "commit"
	}

	fmt.Printf("%s  %s/%s  %d %s",
		entry.CreatedAt.Format("2006-01-02 15:04"),
		entry.Provider, entry.Model,
		entry.CommitCount, noun)
	if entry.Window != "" {
		fmt.Printf("  (since %s)", entry.Window)
	}
	fmt.Println()

	for _, line := range strings.Split(strings.TrimSpace(entry.Summary), "\n") {
		fmt.Println("  " + line)
	}
	fmt.Println()
}
