// Package git provides commit log access for the standup tool.
package git

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/r-vigneshwaran/ai-standup-summary/internal/pkg/errors"
)

const (
	// GitCommandTimeout is the default timeout for git commands.
	GitCommandTimeout = 10 * time.Second

	// logFormat is the pretty format for commit extraction:
	// hash, author name, author date (ISO 8601), subject, tab-separated.
	logFormat = "--pretty=format:%H%x09%an%x09%aI%x09%s"
)

// Commit is a single commit as collected for summarization.
type Commit struct {
	Hash    string
	Author  string
	When    time.Time
	Subject string
}

// LogOptions narrows the commit window passed to git log.
type LogOptions struct {
	// Since and Until accept anything git's --since/--until accept
	// ("24 hours ago", "yesterday", ISO dates).
	Since string
	Until string
	// Author filters by author name or email (git --author pattern).
	Author string
	// Limit caps the number of commits returned; 0 means no cap.
	Limit int
	// IncludeMerges keeps merge commits in the window.
	IncludeMerges bool
}

// Client defines the interface for commit collection.
type Client interface {
	RecentCommits(ctx context.Context, opts LogOptions) ([]Commit, error)
	CurrentBranch(ctx context.Context) (string, error)
	IsRepository(ctx context.Context) bool
}

// DefaultClient implements the Client interface using exec.CommandContext.
type DefaultClient struct {
	// workDir is the working directory for git commands.
	// If empty, uses the current directory.
	workDir string
}

// NewClient creates a new DefaultClient.
func NewClient() *DefaultClient {
	return &DefaultClient{}
}

// NewClientWithWorkDir creates a new DefaultClient with a specific working directory.
func NewClientWithWorkDir(workDir string) *DefaultClient {
	return &DefaultClient{workDir: workDir}
}

// RecentCommits lists the commits in the window described by opts,
// newest first (git log order).
func (c *DefaultClient) RecentCommits(ctx context.Context, opts LogOptions) ([]Commit, error) {
	// Apply timeout to context
	ctx, cancel := context.WithTimeout(ctx, GitCommandTimeout)
	defer cancel()

	args := []string{"log", logFormat}
	if opts.Since != "" {
		args = append(args, "--since", opts.Since)
	}
	if opts.Until != "" {
		args = append(args, "--until", opts.Until)
	}
	if opts.Author != "" {
		args = append(args, "--author", opts.Author)
	}
	if opts.Limit > 0 {
		args = append(args, "-n", strconv.Itoa(opts.Limit))
	}
	if !opts.IncludeMerges {
		args = append(args, "--no-merges")
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, apperrors.Wrap(ctx.Err(), apperrors.ErrGitCommandFailed, "git command timed out")
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr := string(exitErr.Stderr)
			// A branch without commits is an empty window, not a failure
			if strings.Contains(stderr, "does not have any commits") {
				return nil, nil
			}
			return nil, apperrors.NewGitError(err, stderr)
		}
		return nil, apperrors.NewGitError(err, "")
	}

	return parseLog(output), nil
}

// CurrentBranch returns the name of the current branch.
func (c *DefaultClient) CurrentBranch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, GitCommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.Wrap(ctx.Err(), apperrors.ErrGitCommandFailed, "git command timed out")
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", apperrors.NewGitError(err, string(exitErr.Stderr))
		}
		return "", apperrors.NewGitError(err, "")
	}

	return strings.TrimSpace(string(output)), nil
}

// IsRepository reports whether the working directory is inside a git repository.
func (c *DefaultClient) IsRepository(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, GitCommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--git-dir")
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}

	return cmd.Run() == nil
}

// Installed reports whether the git binary is available in PATH.
func Installed() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// parseLog parses git log output in logFormat into commits.
// Malformed lines are skipped.
func parseLog(output []byte) []Commit {
	var commits []Commit
	scanner := bufio.NewScanner(bytes.NewReader(output))

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if commit, ok := parseLogLine(line); ok {
			commits = append(commits, commit)
		}
	}

	return commits
}

// parseLogLine parses one tab-separated log line:
// hash<TAB>author<TAB>iso-date<TAB>subject
// The subject keeps any tabs it contains.
func parseLogLine(line string) (Commit, bool) {
	parts := strings.SplitN(line, "\t", 4)
	if len(parts) < 4 {
		return Commit{}, false
	}

	commit := Commit{
		Hash:    parts[0],
		Author:  parts[1],
		Subject: parts[3],
	}

	// %aI is strict ISO 8601, which parses as RFC3339
	if when, err := time.Parse(time.RFC3339, parts[2]); err == nil {
		commit.When = when
	}

	return commit, true
}

// Subjects flattens commits into their subject lines, preserving order.
func Subjects(commits []Commit) []string {
	subjects := make([]string, 0, len(commits))
	for _, commit := range commits {
		subjects = append(subjects, commit.Subject)
	}
	return subjects
}
