package cmd

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/ui"
)

// genSinceWindow generates time window expressions accepted by git log.
func genSinceWindow() gopter.Gen {
	return gen.OneConstOf(
		"24 hours ago",
		"3 days ago",
		"1 week ago",
		"yesterday",
		"2020-01-01",
	)
}

// genAuthor generates author filter values, including the empty filter.
func genAuthor() gopter.Gen {
	return gen.OneConstOf(
		"",
		"alice",
		"bob",
		"Carol Example",
	)
}

// TestProperty_UIManagerSelection verifies that the --yes flag alone decides
// whether the session is interactive, independent of the color setting.
func TestProperty_UIManagerSelection(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("yes flag always selects the non-interactive manager", prop.ForAll(
		func(colorEnabled bool) bool {
			_, ok := newUIManager(true, colorEnabled).(*ui.NonInteractiveManager)
			return ok
		},
		gen.Bool(),
	))

	properties.Property("interactive sessions always get the default manager", prop.ForAll(
		func(colorEnabled bool) bool {
			_, ok := newUIManager(false, colorEnabled).(*ui.DefaultManager)
			return ok
		},
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestProperty_SummarizeFlagParsing verifies that summarize flag values
// survive command-line parsing unchanged.
func TestProperty_SummarizeFlagParsing(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("summarize flags survive command-line parsing", prop.ForAll(
		func(since, author string, limit int, yes, merges bool) bool {
			cmd := NewSummarizeCmd()

			args := []string{
				"--since", since,
				"--author", author,
				"--limit", strconv.Itoa(limit),
			}
			if yes {
				args = append(args, "--yes")
			}
			if merges {
				args = append(args, "--include-merges")
			}

			if err := cmd.ParseFlags(args); err != nil {
				return false
			}

			gotSince, _ := cmd.Flags().GetString("since")
			gotAuthor, _ := cmd.Flags().GetString("author")
			gotLimit, _ := cmd.Flags().GetInt("limit")
			gotYes, _ := cmd.Flags().GetBool("yes")
			gotMerges, _ := cmd.Flags().GetBool("include-merges")

			return gotSince == since &&
				gotAuthor == author &&
				gotLimit == limit &&
				gotYes == yes &&
				gotMerges == merges
		},
		genSinceWindow(),
		genAuthor(),
		gen.IntRange(1, 100),
		gen.Bool(),
		gen.Bool(),
	))

	properties.Property("root command parses the same summarize flags", prop.ForAll(
		func(since string, limit int, yes bool) bool {
			cmd := NewRootCmd("test", "none", "unknown")

			args := []string{
				"--since", since,
				"--limit", strconv.Itoa(limit),
			}
			if yes {
				args = append(args, "--yes")
			}

			if err := cmd.ParseFlags(args); err != nil {
				return false
			}

			gotSince, _ := cmd.Flags().GetString("since")
			gotLimit, _ := cmd.Flags().GetInt("limit")
			gotYes, _ := cmd.Flags().GetBool("yes")

			return gotSince == since && gotLimit == limit && gotYes == yes
		},
		genSinceWindow(),
		gen.IntRange(1, 100),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
