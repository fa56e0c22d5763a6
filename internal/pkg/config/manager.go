package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigDirName is the directory under the user's home that holds the config file.
	DefaultConfigDirName = ".standup"
	// DefaultConfigFileExt is the default config file extension.
	DefaultConfigFileExt = "yaml"
)

// ViperManager implements the Manager interface using Viper.
type ViperManager struct {
	v          *viper.Viper
	configPath string
}

// NewManager creates a new configuration manager.
// If configPath is empty, it uses the default path (~/.standup/config.yaml).
func NewManager(configPath string) (*ViperManager, error) {
	v := viper.New()

	// Set config file type
	v.SetConfigType(DefaultConfigFileExt)

	// Determine config path
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(homeDir, DefaultConfigDirName, "config.yaml")
	}

	// Set config file path
	v.SetConfigFile(configPath)

	// Set up environment variable binding
	v.SetEnvPrefix("STANDUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults first (required for env binding to work with nested keys)
	setDefaults(v)

	// Explicitly bind environment variables for nested keys
	bindEnvVars(v)

	return &ViperManager{
		v:          v,
		configPath: configPath,
	}, nil
}

// bindEnvVars explicitly binds environment variables for all config keys.
// This is needed because Viper's AutomaticEnv doesn't work well with nested keys.
func bindEnvVars(v *viper.Viper) {
	// Provider settings
	_ = v.BindEnv("provider.name", "STANDUP_PROVIDER_NAME")
	_ = v.BindEnv("provider.api_key", "STANDUP_PROVIDER_API_KEY")
	_ = v.BindEnv("provider.model", "STANDUP_PROVIDER_MODEL")
	_ = v.BindEnv("provider.base_url", "STANDUP_PROVIDER_BASE_URL")
	_ = v.BindEnv("provider.temperature", "STANDUP_PROVIDER_TEMPERATURE")
	_ = v.BindEnv("provider.max_tokens", "STANDUP_PROVIDER_MAX_TOKENS")

	// Git settings
	_ = v.BindEnv("git.since", "STANDUP_GIT_SINCE")
	_ = v.BindEnv("git.author", "STANDUP_GIT_AUTHOR")
	_ = v.BindEnv("git.max_commits", "STANDUP_GIT_MAX_COMMITS")
	_ = v.BindEnv("git.include_merges", "STANDUP_GIT_INCLUDE_MERGES")

	// UI settings
	_ = v.BindEnv("ui.color_enabled", "STANDUP_UI_COLOR_ENABLED")

	// Security settings
	_ = v.BindEnv("security.warning_acknowledged", "STANDUP_SECURITY_WARNING_ACKNOWLEDGED")
}

// setDefaults sets the default configuration values.
func setDefaults(v *viper.Viper) {
	// Provider defaults. The model default is left empty so each provider
	// can fill in its own.
	v.SetDefault("provider.name", "openai")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.model", "")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.temperature", 0.7)
	v.SetDefault("provider.max_tokens", 1000)

	// Git defaults
	v.SetDefault("git.since", "24 hours ago")
	v.SetDefault("git.author", "")
	v.SetDefault("git.max_commits", 50)
	v.SetDefault("git.include_merges", false)

	// UI defaults
	v.SetDefault("ui.color_enabled", true)

	// Security defaults
	v.SetDefault("security.warning_acknowledged", false)
}

// GetConfigPath returns the path to the configuration file.
func (m *ViperManager) GetConfigPath() string {
	return m.configPath
}

// Load loads the configuration from file, environment, and defaults.
// Priority: flags > env > file > defaults
func (m *ViperManager) Load() (*Config, error) {
	// Try to read config file (ignore error if file doesn't exist)
	if err := m.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error if it's not a "file not found" error
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Init creates a new configuration file with default values.
// Sets file permissions to 0600 for security.
func (m *ViperManager) Init() error {
	// Check if config file already exists
	if _, err := os.Stat(m.configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", m.configPath)
	}

	// Ensure parent directory exists
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write default config to file
	if err := m.v.WriteConfigAs(m.configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Set file permissions to 0600 (user read/write only) for security
	if err := os.Chmod(m.configPath, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	return nil
}

// Save saves the configuration to file.
func (m *ViperManager) Save(config *Config) error {
	// Update viper with config values
	m.v.Set("provider", config.Provider)
	m.v.Set("git", config.Git)
	m.v.Set("ui", config.UI)
	m.v.Set("security", config.Security)

	// Write to file
	if err := m.v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Set sets a configuration value by key.
// Supports nested keys using dot notation (e.g., "provider.name").
func (m *ViperManager) Set(key string, value string) error {
	// Load existing config first
	if err := m.v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Convert value to appropriate type based on existing value type
	existingValue := m.v.Get(key)
	convertedValue, err := convertValue(value, existingValue)
	if err != nil {
		return fmt.Errorf("failed to convert value for key %s: %w", key, err)
	}

	m.v.Set(key, convertedValue)

	// Write updated config
	if err := m.v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// convertValue converts a string value to the appropriate type based on the existing value type.
func convertValue(value string, existingValue interface{}) (interface{}, error) {
	if existingValue == nil {
		return value, nil
	}

	switch existingValue.(type) {
	case bool:
		return strconv.ParseBool(value)
	case int, int64:
		return strconv.ParseInt(value, 10, 64)
	case float32, float64:
		return strconv.ParseFloat(value, 64)
	case []interface{}, []string:
		// For arrays, split by comma
		return strings.Split(value, ","), nil
	default:
		return value, nil
	}
}

// Get retrieves a configuration value by key.
func (m *ViperManager) Get(key string) (string, error) {
	// Load config first
	if err := m.v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read config file: %w", err)
		}
	}

	value := m.v.Get(key)
	if value == nil {
		return "", fmt.Errorf("key not found: %s", key)
	}

	return fmt.Sprintf("%v", value), nil
}

// List returns all configuration values as a map.
func (m *ViperManager) List() map[string]interface{} {
	// Load config first (ignore errors, use defaults)
	_ = m.v.ReadInConfig()

	return m.v.AllSettings()
}

// SetOverride sets a temporary override for a configuration key.
// This is used for command-line flag overrides that shouldn't persist.
func (m *ViperManager) SetOverride(key string, value interface{}) {
	m.v.Set(key, value)
}

// MaskAPIKey masks an API key, showing only the last 4 characters.
func MaskAPIKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// ConfigExists checks if the configuration file exists.
func (m *ViperManager) ConfigExists() bool {
	_, err := os.Stat(m.configPath)
	return err == nil
}

// AcknowledgeSecurityWarning marks the security warning as acknowledged.
func (m *ViperManager) AcknowledgeSecurityWarning() error {
	return m.Set("security.warning_acknowledged", "true")
}

// IsSecurityWarningAcknowledged checks if the security warning has been acknowledged.
func (m *ViperManager) IsSecurityWarningAcknowledged() bool {
	// Load config first (ignore errors, use defaults)
	_ = m.v.ReadInConfig()
	return m.v.GetBool("security.warning_acknowledged")
}
