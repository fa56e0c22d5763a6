// Package git provides commit log access for the standup tool.
package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// setupTestRepo creates a temporary git repository for testing.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	// Create temp directory
	tmpDir, err := os.MkdirTemp("", "standup-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	// Initialize git repo
	runGit(t, tmpDir, "init")
	runGit(t, tmpDir, "config", "user.email", "test@example.com")
	runGit(t, tmpDir, "config", "user.name", "Test User")

	return tmpDir
}

// runGit runs a git command in the specified directory.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, output)
	}
	return string(output)
}

// writeFile creates a file with the given content.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	// Create parent directories if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directories: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// commitEmpty creates an empty commit with the given subject.
// author and when override the repo defaults when non-empty; when accepts
// any date git understands, e.g. "2020-01-02 10:00:00 +0000".
func commitEmpty(t *testing.T, dir, subject, author, when string) {
	t.Helper()
	cmd := exec.Command("git", "commit", "--allow-empty", "-m", subject)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	if author != "" {
		cmd.Env = append(cmd.Env,
			"GIT_AUTHOR_NAME="+author,
			"GIT_COMMITTER_NAME="+author,
		)
	}
	if when != "" {
		cmd.Env = append(cmd.Env,
			"GIT_AUTHOR_DATE="+when,
			"GIT_COMMITTER_DATE="+when,
		)
	}
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git commit failed: %v\nOutput: %s", err, output)
	}
}

func TestRecentCommits_OrderAndFields(t *testing.T) {
	tmpDir := setupTestRepo(t)
	defer os.RemoveAll(tmpDir)

	commitEmpty(t, tmpDir, "feat: add login page", "", "")
	commitEmpty(t, tmpDir, "fix: handle nil session token", "", "")
	commitEmpty(t, tmpDir, "docs: update readme", "", "")

	client := NewClientWithWorkDir(tmpDir)
	commits, err := client.RecentCommits(context.Background(), LogOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(commits) != 3 {
		t.Fatalf("expected 3 commits, got %d", len(commits))
	}

	// git log is newest first
	wantSubjects := []string{
		"docs: update readme",
		"fix: handle nil session token",
		"feat: add login page",
	}
	for i, want := range wantSubjects {
		if commits[i].Subject != want {
			t.Errorf("commit %d: expected subject %q, got %q", i, want, commits[i].Subject)
		}
	}

	first := commits[0]
	if len(first.Hash) != 40 {
		t.Errorf("expected 40-char hash, got %q", first.Hash)
	}
	if first.Author != "Test User" {
		t.Errorf("expected author 'Test User', got %q", first.Author)
	}
	if first.When.IsZero() {
		t.Error("expected non-zero commit time")
	}
}

func TestRecentCommits_Limit(t *testing.T) {
	tmpDir := setupTestRepo(t)
	defer os.RemoveAll(tmpDir)

	for _, subject := range []string{"one", "two", "three", "four", "five"} {
		commitEmpty(t, tmpDir, subject, "", "")
	}

	client := NewClientWithWorkDir(tmpDir)
	commits, err := client.RecentCommits(context.Background(), LogOptions{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	if commits[0].Subject != "five" || commits[1].Subject != "four" {
		t.Errorf("expected newest two commits, got %q and %q", commits[0].Subject, commits[1].Subject)
	}
}

func TestRecentCommits_AuthorFilter(t *testing.T) {
	tmpDir := setupTestRepo(t)
	defer os.RemoveAll(tmpDir)

	commitEmpty(t, tmpDir, "feat: add parser", "Alice Example", "")
	commitEmpty(t, tmpDir, "fix: tighten validation", "Bob Example", "")
	commitEmpty(t, tmpDir, "feat: wire parser into cli", "Alice Example", "")

	client := NewClientWithWorkDir(tmpDir)
	commits, err := client.RecentCommits(context.Background(), LogOptions{Author: "Alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(commits) != 2 {
		t.Fatalf("expected 2 commits by Alice, got %d", len(commits))
	}
	for _, commit := range commits {
		if commit.Author != "Alice Example" {
			t.Errorf("expected author 'Alice Example', got %q", commit.Author)
		}
	}
}

func TestRecentCommits_SinceFilter(t *testing.T) {
	tmpDir := setupTestRepo(t)
	defer os.RemoveAll(tmpDir)

	commitEmpty(t, tmpDir, "chore: ancient history", "", "2020-01-02 10:00:00 +0000")
	commitEmpty(t, tmpDir, "feat: recent work", "", "")

	client := NewClientWithWorkDir(tmpDir)
	commits, err := client.RecentCommits(context.Background(), LogOptions{Since: "2021-01-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(commits) != 1 {
		t.Fatalf("expected 1 commit in window, got %d", len(commits))
	}
	if commits[0].Subject != "feat: recent work" {
		t.Errorf("expected recent commit, got %q", commits[0].Subject)
	}
}

func TestRecentCommits_ParsesBackdatedTime(t *testing.T) {
	tmpDir := setupTestRepo(t)
	defer os.RemoveAll(tmpDir)

	commitEmpty(t, tmpDir, "chore: ancient history", "", "2020-01-02 10:00:00 +0000")

	client := NewClientWithWorkDir(tmpDir)
	commits, err := client.RecentCommits(context.Background(), LogOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(commits) != 1 {
		t.Fatalf("expected 1 commit, got %d", len(commits))
	}
	if commits[0].When.UTC().Year() != 2020 {
		t.Errorf("expected commit dated 2020, got %v", commits[0].When)
	}
}

func TestRecentCommits_EmptyWindow(t *testing.T) {
	tmpDir := setupTestRepo(t)
	defer os.RemoveAll(tmpDir)

	commitEmpty(t, tmpDir, "chore: ancient history", "", "2020-01-02 10:00:00 +0000")

	client := NewClientWithWorkDir(tmpDir)
	commits, err := client.RecentCommits(context.Background(), LogOptions{Since: "2021-01-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(commits) != 0 {
		t.Errorf("expected empty window, got %d commits", len(commits))
	}
}

func TestRecentCommits_FreshRepoWithoutCommits(t *testing.T) {
	tmpDir := setupTestRepo(t)
	defer os.RemoveAll(tmpDir)

	client := NewClientWithWorkDir(tmpDir)
	commits, err := client.RecentCommits(context.Background(), LogOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(commits) != 0 {
		t.Errorf("expected no commits in fresh repo, got %d", len(commits))
	}
}

func TestRecentCommits_ExcludesMergesByDefault(t *testing.T) {
	tmpDir := setupTestRepo(t)
	defer os.RemoveAll(tmpDir)

	// Create initial commit so branches exist
	writeFile(t, tmpDir, "README.md", "# Test")
	runGit(t, tmpDir, "add", ".")
	runGit(t, tmpDir, "commit", "-m", "initial commit")

	base := strings.TrimSpace(runGit(t, tmpDir, "rev-parse", "--abbrev-ref", "HEAD"))
	runGit(t, tmpDir, "checkout", "-b", "feature")
	commitEmpty(t, tmpDir, "feat: branch work", "", "")
	runGit(t, tmpDir, "checkout", base)
	runGit(t, tmpDir, "merge", "--no-ff", "-m", "Merge branch 'feature'", "feature")

	client := NewClientWithWorkDir(tmpDir)

	commits, err := client.RecentCommits(context.Background(), LogOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, commit := range commits {
		if commit.Subject == "Merge branch 'feature'" {
			t.Error("merge commit should be excluded by default")
		}
	}

	commits, err = client.RecentCommits(context.Background(), LogOptions{IncludeMerges: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, commit := range commits {
		if commit.Subject == "Merge branch 'feature'" {
			found = true
		}
	}
	if !found {
		t.Error("expected merge commit when IncludeMerges is set")
	}
}

func TestRecentCommits_NotARepository(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "standup-notrepo-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	client := NewClientWithWorkDir(tmpDir)
	_, err = client.RecentCommits(context.Background(), LogOptions{})
	if err == nil {
		t.Error("expected error outside a repository")
	}
}

func TestCurrentBranch(t *testing.T) {
	tmpDir := setupTestRepo(t)
	defer os.RemoveAll(tmpDir)

	writeFile(t, tmpDir, "README.md", "# Test")
	runGit(t, tmpDir, "add", ".")
	runGit(t, tmpDir, "commit", "-m", "initial commit")
	runGit(t, tmpDir, "checkout", "-b", "feature/summaries")

	client := NewClientWithWorkDir(tmpDir)
	branch, err := client.CurrentBranch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if branch != "feature/summaries" {
		t.Errorf("expected branch 'feature/summaries', got %q", branch)
	}
}

func TestIsRepository(t *testing.T) {
	tmpDir := setupTestRepo(t)
	defer os.RemoveAll(tmpDir)

	client := NewClientWithWorkDir(tmpDir)
	if !client.IsRepository(context.Background()) {
		t.Error("expected IsRepository to be true inside a repo")
	}

	plainDir, err := os.MkdirTemp("", "standup-plain-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(plainDir)

	outside := NewClientWithWorkDir(plainDir)
	if outside.IsRepository(context.Background()) {
		t.Error("expected IsRepository to be false outside a repo")
	}
}

func TestInstalled(t *testing.T) {
	// Every other test here shells out to git, so it must be present.
	if !Installed() {
		t.Error("expected git to be installed in the test environment")
	}
}

func TestParseLogLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Commit
		wantOK  bool
		zeroDay bool
	}{
		{
			name: "well formed line",
			line: "a1b2c3d\tAlice Example\t2024-06-01T09:30:00+02:00\tfeat: add login page",
			want: Commit{
				Hash:    "a1b2c3d",
				Author:  "Alice Example",
				Subject: "feat: add login page",
			},
			wantOK: true,
		},
		{
			name: "subject keeps embedded tabs",
			line: "a1b2c3d\tAlice Example\t2024-06-01T09:30:00+02:00\tfix: align\tcolumns",
			want: Commit{
				Hash:    "a1b2c3d",
				Author:  "Alice Example",
				Subject: "fix: align\tcolumns",
			},
			wantOK: true,
		},
		{
			name:   "too few fields",
			line:   "a1b2c3d\tAlice Example",
			wantOK: false,
		},
		{
			name: "unparseable date keeps zero time",
			line: "a1b2c3d\tAlice Example\tnot-a-date\tfix: thing",
			want: Commit{
				Hash:    "a1b2c3d",
				Author:  "Alice Example",
				Subject: "fix: thing",
			},
			wantOK:  true,
			zeroDay: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseLogLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("parseLogLine(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Hash != tt.want.Hash {
				t.Errorf("hash = %q, want %q", got.Hash, tt.want.Hash)
			}
			if got.Author != tt.want.Author {
				t.Errorf("author = %q, want %q", got.Author, tt.want.Author)
			}
			if got.Subject != tt.want.Subject {
				t.Errorf("subject = %q, want %q", got.Subject, tt.want.Subject)
			}
			if tt.zeroDay && !got.When.IsZero() {
				t.Errorf("expected zero time, got %v", got.When)
			}
		})
	}
}

func TestParseLogLine_ParsesTime(t *testing.T) {
	got, ok := parseLogLine("a1b2c3d\tAlice\t2024-06-01T09:30:00+02:00\tfeat: thing")
	if !ok {
		t.Fatal("expected line to parse")
	}
	want := time.Date(2024, 6, 1, 9, 30, 0, 0, time.FixedZone("", 2*60*60))
	if !got.When.Equal(want) {
		t.Errorf("when = %v, want %v", got.When, want)
	}
}

func TestSubjects(t *testing.T) {
	commits := []Commit{
		{Subject: "feat: add login page"},
		{Subject: "fix: handle nil session token"},
		{Subject: "docs: update readme"},
	}

	subjects := Subjects(commits)
	if len(subjects) != 3 {
		t.Fatalf("expected 3 subjects, got %d", len(subjects))
	}
	want := []string{
		"feat: add login page",
		"fix: handle nil session token",
		"docs: update readme",
	}
	for i := range want {
		if subjects[i] != want[i] {
			t.Errorf("subject %d = %q, want %q", i, subjects[i], want[i])
		}
	}
}

func TestSubjects_Empty(t *testing.T) {
	subjects := Subjects(nil)
	if len(subjects) != 0 {
		t.Errorf("expected no subjects, got %d", len(subjects))
	}
}
