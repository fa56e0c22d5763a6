// Package ui provides interactive terminal UI components for the standup tool.
package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SummaryMeta describes the commit window a summary was generated from.
type SummaryMeta struct {
	CommitCount int
	Window      string
	Provider    string
	Model       string
}

// Spinner provides loading animation functionality.
type Spinner interface {
	Start()
	Stop()
	UpdateText(text string)
}

// Manager defines the interface for UI operations.
type Manager interface {
	DisplaySummary(summary string, meta SummaryMeta) error
	ShowSpinner(text string) Spinner
	ShowError(err error)
	ShowSuccess(message string)
	PromptConfirm(message string) (bool, error)
}

// DefaultManager implements the Manager interface using charmbracelet libraries.
type DefaultManager struct {
	colorEnabled bool
	styles       *styles
}

// styles holds the lipgloss styles for UI rendering.
type styles struct {
	title      lipgloss.Style
	body       lipgloss.Style
	meta       lipgloss.Style
	success    lipgloss.Style
	errorStyle lipgloss.Style
	info       lipgloss.Style
	border     lipgloss.Style
}

// NewDefaultManager creates a new DefaultManager with the specified options.
func NewDefaultManager(colorEnabled bool) *DefaultManager {
	m := &DefaultManager{
		colorEnabled: colorEnabled,
	}
	m.initStyles()
	return m
}

// initStyles initializes the lipgloss styles.
func (m *DefaultManager) initStyles() {
	if !m.colorEnabled {
		m.styles = &styles{
			title:      lipgloss.NewStyle(),
			body:       lipgloss.NewStyle(),
			meta:       lipgloss.NewStyle(),
			success:    lipgloss.NewStyle(),
			errorStyle: lipgloss.NewStyle(),
			info:       lipgloss.NewStyle(),
			border:     lipgloss.NewStyle(),
		}
		return
	}

	m.styles = &styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1),
		body: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		meta: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true),
		success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		errorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),
		border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Width(80),
	}
}

// DisplaySummary displays the generated standup summary to the user.
func (m *DefaultManager) DisplaySummary(summary string, meta SummaryMeta) error {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return fmt.Errorf("summary cannot be empty")
	}

	fmt.Println()
	fmt.Println(m.styles.title.Render("Standup Summary"))
	fmt.Println(m.styles.border.Render(m.styles.body.Render(summary)))
	fmt.Println(m.styles.meta.Render(formatMeta(meta)))
	fmt.Println()

	return nil
}

// formatMeta renders the summary footer line.
func formatMeta(meta SummaryMeta) string {
	parts := make([]string, 0, 3)

	noun := "commits"
	if meta.CommitCount == 1 {
		noun = "commit"
	}
	parts = append(parts, fmt.Sprintf("%d %s", meta.CommitCount, noun))

	if meta.Window != "" {
		parts = append(parts, fmt.Sprintf("since %s", meta.Window))
	}
	if meta.Provider != "" {
		source := meta.Provider
		if meta.Model != "" {
			source = fmt.Sprintf("%s/%s", meta.Provider, meta.Model)
		}
		parts = append(parts, source)
	}

	return strings.Join(parts, " | ")
}

// ShowSpinner creates and returns a spinner for loading states.
func (m *DefaultManager) ShowSpinner(text string) Spinner {
	return newBubbleSpinner(text)
}

// ShowError displays an error message to the user.
func (m *DefaultManager) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Println()
	fmt.Println(m.styles.errorStyle.Render("Error: " + err.Error()))
	fmt.Println()
}

// ShowSuccess displays a success message to the user.
func (m *DefaultManager) ShowSuccess(message string) {
	fmt.Println()
	fmt.Println(m.styles.success.Render("[OK] " + message))
	fmt.Println()
}

// PromptConfirm prompts the user for a yes/no confirmation using Bubble Tea.
func (m *DefaultManager) PromptConfirm(message string) (bool, error) {
	model := newConfirmModel(message)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	result := finalModel.(confirmModel)
	return result.confirmed, nil
}

// confirmModel is the Bubble Tea model for yes/no confirmation.
type confirmModel struct {
	message   string
	cursor    int // 0 = Yes, 1 = No
	confirmed bool
	done      bool
}

func newConfirmModel(message string) confirmModel {
	return confirmModel{
		message: message,
		cursor:  0, // Default to Yes
	}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "n":
			m.confirmed = false
			m.done = true
			return m, tea.Quit
		case "y", "Y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "left", "h":
			m.cursor = 0
		case "right", "l":
			m.cursor = 1
		case "enter", " ":
			m.confirmed = m.cursor == 0
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("220"))

	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("42"))

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.message))
	sb.WriteString(" ")

	yesStyle := normalStyle
	noStyle := normalStyle
	if m.cursor == 0 {
		yesStyle = selectedStyle
	} else {
		noStyle = selectedStyle
	}

	sb.WriteString(yesStyle.Render("[Y]es"))
	sb.WriteString(" / ")
	sb.WriteString(noStyle.Render("[N]o"))

	return sb.String()
}

// bubbleSpinner implements Spinner using Bubble Tea.
type bubbleSpinner struct {
	text    string
	program *tea.Program
	model   *spinnerModel
	mu      sync.Mutex
}

// spinnerModel is the Bubble Tea model for simple spinner.
type spinnerModel struct {
	spinner  spinner.Model
	text     string
	quitting bool
}

// spinnerTickMsg is sent to update spinner text from outside.
type spinnerTickMsg struct {
	text string
}

// spinnerQuitMsg signals the spinner to quit.
type spinnerQuitMsg struct{}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		m.text = msg.text
		return m, nil
	case spinnerQuitMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.text)
}

func newBubbleSpinner(text string) *bubbleSpinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	model := &spinnerModel{
		spinner: s,
		text:    text,
	}

	return &bubbleSpinner{
		text:  text,
		model: model,
	}
}

func (s *bubbleSpinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.program = tea.NewProgram(s.model)
	go func() {
		_, _ = s.program.Run()
	}()
}

func (s *bubbleSpinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program != nil {
		s.program.Send(spinnerQuitMsg{})
		time.Sleep(50 * time.Millisecond)
	}
}

func (s *bubbleSpinner) UpdateText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = text
	if s.program != nil {
		s.program.Send(spinnerTickMsg{text: text})
	}
}

// NonInteractiveManager implements Manager for non-interactive mode (--yes flag
// or piped output). Summaries print unstyled so they can be redirected.
type NonInteractiveManager struct{}

// NewNonInteractiveManager creates a new NonInteractiveManager.
func NewNonInteractiveManager() *NonInteractiveManager {
	return &NonInteractiveManager{}
}

// DisplaySummary prints the summary without decoration.
func (m *NonInteractiveManager) DisplaySummary(summary string, meta SummaryMeta) error {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return fmt.Errorf("summary cannot be empty")
	}

	fmt.Println(summary)
	return nil
}

// ShowSpinner returns a no-op spinner in non-interactive mode.
func (m *NonInteractiveManager) ShowSpinner(text string) Spinner {
	return &noopSpinner{}
}

// ShowError displays an error message.
func (m *NonInteractiveManager) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}

// ShowSuccess displays a success message.
func (m *NonInteractiveManager) ShowSuccess(message string) {
	fmt.Println(message)
}

// PromptConfirm always returns true in non-interactive mode.
func (m *NonInteractiveManager) PromptConfirm(message string) (bool, error) {
	return true, nil
}

// noopSpinner is a no-op implementation of Spinner.
type noopSpinner struct{}

func (s *noopSpinner) Start()            {}
func (s *noopSpinner) Stop()             {}
func (s *noopSpinner) UpdateText(string) {}
