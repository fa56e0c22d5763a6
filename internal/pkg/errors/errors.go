// Package errors provides error types and handling utilities for the standup tool.
package errors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrorCode represents the category of an error.
type ErrorCode int

const (
	// User errors (Exit Code 1)
	ErrInvalidConfig ErrorCode = iota + 100
	ErrMissingAPIKey
	ErrUnsupportedProvider
	ErrNoCommits
	ErrInvalidArguments

	// System errors (Exit Code 2)
	ErrGitCommandFailed ErrorCode = iota + 200
	ErrFileSystemError

	// External errors (Exit Code 3)
	ErrGenerationFailed ErrorCode = iota + 300
)

// ExitCode returns the appropriate exit code for an error code.
func (c ErrorCode) ExitCode() int {
	switch {
	case c >= 100 && c < 200:
		return 1 // User errors
	case c >= 200 && c < 300:
		return 2 // System errors
	case c >= 300:
		return 3 // External errors
	default:
		return 1
	}
}

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrMissingAPIKey:
		return "MissingAPIKey"
	case ErrUnsupportedProvider:
		return "UnsupportedProvider"
	case ErrNoCommits:
		return "NoCommits"
	case ErrInvalidArguments:
		return "InvalidArguments"
	case ErrGitCommandFailed:
		return "GitCommandFailed"
	case ErrFileSystemError:
		return "FileSystemError"
	case ErrGenerationFailed:
		return "GenerationFailed"
	default:
		return "Unknown"
	}
}

// AppError represents an application error with context.
type AppError struct {
	Code       ErrorCode
	Message    string
	Cause      error
	Context    map[string]interface{}
	Suggestion string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion to the error.
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestion = suggestion
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with context.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WrapWithContext wraps an error with a context message.
func WrapWithContext(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// GetExitCode returns the appropriate exit code for an error.
func GetExitCode(err error) int {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code.ExitCode()
	}
	return 1 // Default to user error
}

// Common error constructors with suggestions

// NewMissingAPIKeyError creates an error for missing API key.
func NewMissingAPIKeyError(provider string) *AppError {
	return &AppError{
		Code:       ErrMissingAPIKey,
		Message:    fmt.Sprintf("API key is required for %s provider", provider),
		Suggestion: "Set your API key using 'standup config set provider.api_key <your-key>' or set the STANDUP_PROVIDER_API_KEY environment variable",
	}
}

// NewUnsupportedProviderError creates an error for an unknown provider name.
func NewUnsupportedProviderError(provider string) *AppError {
	return &AppError{
		Code:       ErrUnsupportedProvider,
		Message:    fmt.Sprintf("unsupported provider: %s", provider),
		Suggestion: "Supported providers are 'openai' and 'gemini'",
	}
}

// NewInvalidConfigError creates an error for invalid configuration.
func NewInvalidConfigError(message string) *AppError {
	return &AppError{
		Code:       ErrInvalidConfig,
		Message:    message,
		Suggestion: "Run 'standup config init' to create a valid configuration file",
	}
}

// NewNoCommitsError creates an error for an empty commit window.
func NewNoCommitsError(since string) *AppError {
	return &AppError{
		Code:       ErrNoCommits,
		Message:    fmt.Sprintf("no commits found since %s", since),
		Suggestion: "Widen the window with '--since' or check '--author' matches your git identity",
	}
}

// NewInvalidArgumentsError creates an error for bad command-line input.
func NewInvalidArgumentsError(message string) *AppError {
	return &AppError{
		Code:    ErrInvalidArguments,
		Message: message,
	}
}

// NewGitError creates an error for git command failures.
func NewGitError(err error, output string) *AppError {
	appErr := &AppError{
		Code:    ErrGitCommandFailed,
		Message: "git command failed",
		Cause:   err,
	}
	if output != "" {
		appErr.Context = map[string]interface{}{
			"output": output,
		}
	}
	return appErr
}

// NewFileSystemError creates an error for filesystem failures.
func NewFileSystemError(path string, err error) *AppError {
	return &AppError{
		Code:    ErrFileSystemError,
		Message: fmt.Sprintf("filesystem operation failed for %s", path),
		Cause:   err,
	}
}

// NewGenerationError creates an error for AI generation failures.
// The original provider error is preserved as the cause so callers can
// inspect it with errors.Is/errors.As.
func NewGenerationError(provider string, err error) *AppError {
	appErr := &AppError{
		Code:       ErrGenerationFailed,
		Message:    "Failed to generate response",
		Cause:      err,
		Suggestion: "Please check your API key and network connectivity",
	}
	if provider != "" {
		appErr.Context = map[string]interface{}{
			"provider": provider,
		}
	}
	return appErr
}

// FormatError formats an error for user display.
// API keys and other sensitive data are automatically masked.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(appErr.Message))

		if appErr.Cause != nil {
			sb.WriteString("\n  Cause: ")
			sb.WriteString(SanitizeErrorMessage(appErr.Cause.Error()))
		}

		if appErr.Suggestion != "" {
			sb.WriteString("\n  Suggestion: ")
			sb.WriteString(appErr.Suggestion)
		}
	} else {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(err.Error()))
	}

	return sb.String()
}

// FormatErrorVerbose formats an error with full details for verbose mode.
// API keys and other sensitive data are automatically masked.
func FormatErrorVerbose(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString(fmt.Sprintf("Error [%s]: %s\n", appErr.Code.String(), SanitizeErrorMessage(appErr.Message)))

		if appErr.Cause != nil {
			sb.WriteString(fmt.Sprintf("  Cause: %v\n", SanitizeErrorMessage(appErr.Cause.Error())))
			// Print the full error chain
			sb.WriteString("  Error chain:\n")
			printErrorChain(&sb, appErr.Cause, 2)
		}

		if len(appErr.Context) > 0 {
			sb.WriteString("  Context:\n")
			for k, v := range appErr.Context {
				// Sanitize context values as well
				sb.WriteString(fmt.Sprintf("    %s: %v\n", k, SanitizeErrorMessage(fmt.Sprintf("%v", v))))
			}
		}

		if appErr.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("  Suggestion: %s\n", appErr.Suggestion))
		}
	} else {
		sb.WriteString(fmt.Sprintf("Error: %v\n", SanitizeErrorMessage(err.Error())))
		sb.WriteString("  Error chain:\n")
		printErrorChain(&sb, err, 2)
	}

	return sb.String()
}

// printErrorChain prints the error chain with indentation.
func printErrorChain(sb *strings.Builder, err error, indent int) {
	if err == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)
	// Sanitize error message to mask any API keys
	errMsg := SanitizeErrorMessage(err.Error())
	sb.WriteString(fmt.Sprintf("%s- %T: %v\n", prefix, err, errMsg))

	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		printErrorChain(sb, unwrapped, indent+1)
	}
}

// SanitizeErrorMessage masks any API keys or sensitive data in error messages.
func SanitizeErrorMessage(msg string) string {
	result := msg
	for _, pattern := range apiKeyPatterns {
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			if len(match) <= 4 {
				return "****"
			}
			return strings.Repeat("*", len(match)-4) + match[len(match)-4:]
		})
	}
	return result
}

// apiKeyPatterns matches common API key shapes: OpenAI sk- keys and
// Google AIza keys.
var apiKeyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`sk-[a-zA-Z0-9_-]{20,}`),
	regexp.MustCompile(`AIza[a-zA-Z0-9_-]{30,}`),
}
