package config

import (
	"fmt"

	"github.com/mfukushima/recipechat/internal/recipechat"
	"github.com/spf13/viper"
)

// Config holds the configuration for the recipe chatbot
type Config struct {
	Model                 string   `toml:"model" mapstructure:"model"` // Format: "provider:model" (e.g., "openai:gpt-4o-mini")
	OpenAIBaseURL         string   `toml:"openai_base_url" mapstructure:"openai_base_url"`
	OpenAIToken           string   `toml:"openai_token" mapstructure:"openai_token"`
	AnthropicBaseURL      string   `toml:"anthropic_base_url" mapstructure:"anthropic_base_url"`
	AnthropicToken        string   `toml:"anthropic_token" mapstructure:"anthropic_token"`
	GeminiBaseURL         string   `toml:"gemini_base_url" mapstructure:"gemini_base_url"`
	GeminiToken           string   `toml:"gemini_token" mapstructure:"gemini_token"`
	PersonaDirs           []string `toml:"persona_dirs" mapstructure:"persona_dirs"`
	SessionTokenThreshold int      `toml:"session_token_threshold" mapstructure:"session_token_threshold"` // 0 = disabled
	SessionRetentionDays  int      `toml:"session_retention_days" mapstructure:"session_retention_days"`   // Number of days to retain sessions (default: 30)
}

// GetModel returns the model string in "provider:model" format
func (c *Config) GetModel() string {
	return c.Model
}

// GetProvider extracts provider name from the model string
func (c *Config) GetProvider() (string, error) {
	provider, _, err := recipechat.ParseModelString(c.Model)
	return provider, err
}

// GetModelName extracts the bare model name from the model string
func (c *Config) GetModelName() (string, error) {
	_, model, err := recipechat.ParseModelString(c.Model)
	return model, err
}

// NewDefaultConfig returns a new Config with default values
func NewDefaultConfig(personaDir string) *Config {
	return &Config{
		Model:                 "openai:gpt-4o-mini",
		OpenAIBaseURL:         "https://api.openai.com/v1",
		OpenAIToken:           "$OPENAI_API_KEY", // Default to env var
		AnthropicBaseURL:      "https://api.anthropic.com/v1",
		AnthropicToken:        "$ANTHROPIC_API_KEY",
		GeminiBaseURL:         "https://generativelanguage.googleapis.com/v1beta",
		GeminiToken:           "$GEMINI_API_KEY",
		PersonaDirs:           []string{personaDir},
		SessionTokenThreshold: 6000, // Approximate context tokens before warning (0 = disabled)
		SessionRetentionDays:  30,   // Default: delete sessions older than 30 days
	}
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	// Convert persona directories to absolute paths
	for i, personaDir := range config.PersonaDirs {
		absPath, err := ResolvePath(personaDir)
		if err != nil {
			return nil, fmt.Errorf("error resolving persona directory path '%s': %v", personaDir, err)
		}
		config.PersonaDirs[i] = absPath
	}

	return config, nil
}
