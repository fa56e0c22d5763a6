// Package ai provides AI text generation for the standup tool.
package ai

import (
	"bytes"
	"strings"
	"text/template"
)

// SummarySystemPrompt is the fixed system instruction for standup summaries.
const SummarySystemPrompt = `You are an expert at writing concise daily standup summaries for software engineers.

Rules:
1. Group related commits into a single bullet point
2. Use plain language, no commit hashes or file paths
3. Lead with completed work, then work in progress
4. Use past tense ("fixed" not "fixes")
5. Keep the whole summary under 10 lines

Output only the summary, no explanations.`

// summaryPromptTemplate embeds the newline-joined commit subjects into
// the user prompt.
const summaryPromptTemplate = `Summarize the following git commits into a short standup update:

{{.Commits}}

Write the update the way a developer would read it aloud in a standup meeting.`

// Parsed at package init so concurrent callers never race on a lazy parse.
var summaryTmpl = template.Must(template.New("summaryPrompt").Parse(summaryPromptTemplate))

// RenderSummaryPrompt renders the standup prompt for a list of commit
// subjects. The subjects are joined by newlines in their given order.
func RenderSummaryPrompt(commits []string) (string, error) {
	data := struct {
		Commits string
	}{
		Commits: strings.Join(commits, "\n"),
	}

	var buf bytes.Buffer
	if err := summaryTmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
