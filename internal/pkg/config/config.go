// Package config provides configuration management for the standup tool.
package config

// Config represents the complete standup tool configuration.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Git      GitConfig      `mapstructure:"git"`
	UI       UIConfig       `mapstructure:"ui"`
	Security SecurityConfig `mapstructure:"security"`
}

// ProviderConfig contains AI provider settings.
type ProviderConfig struct {
	Name        string  `mapstructure:"name"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// GitConfig contains commit collection settings.
type GitConfig struct {
	Since         string `mapstructure:"since"`
	Author        string `mapstructure:"author"`
	MaxCommits    int    `mapstructure:"max_commits"`
	IncludeMerges bool   `mapstructure:"include_merges"`
}

// UIConfig contains UI-related settings.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// SecurityConfig contains security-related settings.
type SecurityConfig struct {
	// WarningAcknowledged indicates if the user has acknowledged the first-use security warning.
	WarningAcknowledged bool `mapstructure:"warning_acknowledged"`
}

// Manager defines the interface for configuration management.
type Manager interface {
	Load() (*Config, error)
	Save(config *Config) error
	Set(key string, value string) error
	Get(key string) (string, error)
	Init() error
	List() map[string]interface{}
	GetConfigPath() string
}
