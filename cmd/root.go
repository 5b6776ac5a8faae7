/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mfukushima/recipechat/internal/recipechat/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "recipechat",
	Short: "A recipe chatbot backed by LLM completion APIs",
	Long: `recipechat is a conversational recipe assistant.
It keeps a chat transcript, injects a recipe-curator persona as the system
prompt when the transcript lacks one, and forwards the conversation to an
LLM completion provider (openai, anthropic or gemini).
You can configure the tool using a TOML configuration file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/recipechat/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Set environment variable prefix and automatic env
	viper.SetEnvPrefix("RECIPECHAT")
	viper.AutomaticEnv()

	// Determine config directory for user config
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	userConfigDir := filepath.Join(home, ".config", "recipechat")

	// Persona directories; later directories in the array take precedence
	defaultPersonaDirs := []string{
		"/usr/share/recipechat/personas",
		"/usr/local/share/recipechat/personas",
		filepath.Join(userConfigDir, "personas"),
	}
	defaultConfig := config.NewDefaultConfig(filepath.Join(userConfigDir, "personas"))

	// Set default values
	viper.SetDefault("model", defaultConfig.Model)
	viper.SetDefault("openai_base_url", defaultConfig.OpenAIBaseURL)
	viper.SetDefault("openai_token", defaultConfig.OpenAIToken)
	viper.SetDefault("anthropic_base_url", defaultConfig.AnthropicBaseURL)
	viper.SetDefault("anthropic_token", defaultConfig.AnthropicToken)
	viper.SetDefault("gemini_base_url", defaultConfig.GeminiBaseURL)
	viper.SetDefault("gemini_token", defaultConfig.GeminiToken)
	viper.SetDefault("persona_dirs", defaultPersonaDirs)
	viper.SetDefault("session_token_threshold", defaultConfig.SessionTokenThreshold)
	viper.SetDefault("session_retention_days", defaultConfig.SessionRetentionDays)

	// Bind environment variables
	viper.BindEnv("model", "RECIPECHAT_MODEL")
	viper.BindEnv("openai_base_url", "RECIPECHAT_OPENAI_BASE_URL")
	viper.BindEnv("openai_token", "RECIPECHAT_OPENAI_TOKEN")
	viper.BindEnv("anthropic_base_url", "RECIPECHAT_ANTHROPIC_BASE_URL")
	viper.BindEnv("anthropic_token", "RECIPECHAT_ANTHROPIC_TOKEN")
	viper.BindEnv("gemini_base_url", "RECIPECHAT_GEMINI_BASE_URL")
	viper.BindEnv("gemini_token", "RECIPECHAT_GEMINI_TOKEN")
	viper.BindEnv("session_token_threshold", "RECIPECHAT_SESSION_TOKEN_THRESHOLD")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	} else {
		// Load system-wide config first (lower priority)
		systemConfigPaths := []string{
			"/etc/recipechat",
			"/usr/local/etc/recipechat",
		}

		systemConfigLoaded := false
		for _, path := range systemConfigPaths {
			viper.AddConfigPath(path)
		}
		viper.SetConfigType("toml")
		viper.SetConfigName("config")

		// Try to read system-wide config
		if err := viper.ReadInConfig(); err == nil {
			systemConfigLoaded = true
			if verbose {
				fmt.Fprintln(os.Stderr, "Loaded system-wide config:", viper.ConfigFileUsed())
			}
		}

		// Load user config (higher priority) - merge with system config
		viper.AddConfigPath(userConfigDir)
		if systemConfigLoaded {
			if err := viper.MergeInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					fmt.Fprintf(os.Stderr, "Error merging user config file: %v\n", err)
				}
			} else if verbose {
				fmt.Fprintln(os.Stderr, "Merged user config:", viper.ConfigFileUsed())
			}
		} else {
			if err := viper.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
				}
			}
		}
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		fmt.Fprintln(os.Stderr, "Environment variables:")
		fmt.Fprintln(os.Stderr, "  RECIPECHAT_MODEL:", viper.GetString("model"))
		fmt.Fprintln(os.Stderr, "  RECIPECHAT_OPENAI_BASE_URL:", viper.GetString("openai_base_url"))
		fmt.Fprintln(os.Stderr, "  RECIPECHAT_ANTHROPIC_BASE_URL:", viper.GetString("anthropic_base_url"))
		fmt.Fprintln(os.Stderr, "  RECIPECHAT_GEMINI_BASE_URL:", viper.GetString("gemini_base_url"))
		fmt.Fprintln(os.Stderr, "  RECIPECHAT_PERSONA_DIRS:", viper.GetStringSlice("persona_dirs"))
	}
}
