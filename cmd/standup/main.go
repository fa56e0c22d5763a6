// Package main is the entry point for the standup CLI application.
// Standup is an AI-powered command-line tool that turns recent git
// commits into a short daily standup summary.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/r-vigneshwaran/ai-standup-summary/internal/cmd"
	apperrors "github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/errors"
)

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// A local .env file can provide STANDUP_* variables; absence is fine.
	_ = godotenv.Load()

	rootCmd := cmd.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		if apperrors.IsVerbose() {
			fmt.Fprintln(os.Stderr, apperrors.FormatErrorVerbose(err))
		} else {
			fmt.Fprintln(os.Stderr, apperrors.FormatError(err))
		}
		os.Exit(apperrors.GetExitCode(err))
	}
}
