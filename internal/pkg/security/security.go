// Package security provides security utilities for the standup tool.
package security

import (
	"fmt"
	"regexp"
	"strings"
)

// APIKeyFormat defines the expected format patterns for different providers.
var APIKeyFormat = map[string]*regexp.Regexp{
	"openai": regexp.MustCompile(`^sk-[a-zA-Z0-9_-]{20,}$`),
	"gemini": regexp.MustCompile(`^AIza[a-zA-Z0-9_-]{30,}$`),
}

// MaskAPIKey masks an API key, showing only the last 4 characters.
// This should be used when logging or displaying API keys.
func MaskAPIKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// ValidateAPIKeyFormat validates the format of an API key for a given provider.
// Returns nil if the key format is valid, or an error describing the issue.
func ValidateAPIKeyFormat(provider, apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("API key is required for %s provider", provider)
	}

	// Check minimum length
	if len(apiKey) < 20 {
		return fmt.Errorf("API key appears to be invalid (too short)")
	}

	// Check format if we have a pattern for this provider
	pattern, exists := APIKeyFormat[provider]
	if exists && pattern != nil {
		if !pattern.MatchString(apiKey) {
			return fmt.Errorf("API key format appears invalid for %s provider", provider)
		}
	}

	return nil
}

// SanitizeForLogging sanitizes a string for safe logging by masking potential secrets.
// It looks for common patterns like API keys, passwords, and tokens.
func SanitizeForLogging(s string) string {
	// Patterns to mask
	patterns := []struct {
		regex       *regexp.Regexp
		replacement string
	}{
		// OpenAI-style keys (sk-...)
		{regexp.MustCompile(`sk-[a-zA-Z0-9_-]{20,}`), "sk-****"},
		// Google-style keys (AIza...)
		{regexp.MustCompile(`AIza[a-zA-Z0-9_-]{30,}`), "AIza****"},
		// Bearer tokens
		{regexp.MustCompile(`Bearer\s+[a-zA-Z0-9._-]+`), "Bearer ****"},
		// Generic API key patterns
		{regexp.MustCompile(`(?i)(api[_-]?key|apikey|api_secret|secret[_-]?key)\s*[:=]\s*["']?[a-zA-Z0-9._-]+["']?`), "$1=****"},
		// Password patterns
		{regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[:=]\s*["']?[^\s"']+["']?`), "$1=****"},
	}

	result := s
	for _, p := range patterns {
		result = p.regex.ReplaceAllString(result, p.replacement)
	}

	return result
}

// FirstUseWarning is the warning message displayed on first use.
const FirstUseWarning = `
⚠️  IMPORTANT SECURITY NOTICE ⚠️

This tool sends your recent git commit subjects to external AI services
(OpenAI or Google Gemini) to generate standup summaries.

This means your commit messages will be transmitted over the internet to
third-party servers. Please ensure you:

1. Do not put sensitive information (API keys, passwords, secrets) in commit subjects
2. Review the commits in the window before generating a summary
3. Check your organization's policy before using this on private repositories

`

// FirstUseAcknowledgment is the message shown after user acknowledges the warning.
const FirstUseAcknowledgment = "Thank you for acknowledging the security notice. This warning will not be shown again."
