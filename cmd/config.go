package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mfukushima/recipechat/internal/recipechat/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [field]",
	Short: "Display current configuration",
	Long: `Display the current configuration values.
This command shows all configuration values loaded from the config file and environment variables.

If a field name is specified, only that field's value is displayed.
Available fields: configfile, model, openai_base_url, openai_token, anthropic_base_url, anthropic_token, gemini_base_url, gemini_token, personadirs, session_token_threshold, session_retention_days

Examples:
  recipechat config                    # Show all configuration
  recipechat config model              # Show only model
  recipechat config openai_token       # Show only OpenAI token (masked)`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		// If a field is specified, show only that field
		if len(args) > 0 {
			field := strings.ToLower(args[0])
			switch field {
			case "configfile":
				fmt.Println(viper.ConfigFileUsed())
			case "model":
				fmt.Println(cfg.Model)
			case "openai_base_url", "openaibaseurl":
				fmt.Println(cfg.OpenAIBaseURL)
			case "openai_token", "openaitoken":
				fmt.Println(maskToken(cfg.OpenAIToken))
			case "anthropic_base_url", "anthropicbaseurl":
				fmt.Println(cfg.AnthropicBaseURL)
			case "anthropic_token", "anthropictoken":
				fmt.Println(maskToken(cfg.AnthropicToken))
			case "gemini_base_url", "geminibaseurl":
				fmt.Println(cfg.GeminiBaseURL)
			case "gemini_token", "geminitoken":
				fmt.Println(maskToken(cfg.GeminiToken))
			case "personadirs":
				fmt.Println(strings.Join(cfg.PersonaDirs, ","))
			case "session_token_threshold":
				fmt.Println(cfg.SessionTokenThreshold)
			case "session_retention_days":
				fmt.Println(cfg.SessionRetentionDays)
			default:
				fmt.Fprintf(os.Stderr, "Unknown field: %s\n", args[0])
				fmt.Fprintf(os.Stderr, "Available fields: configfile, model, openai_base_url, openai_token, anthropic_base_url, anthropic_token, gemini_base_url, gemini_token, personadirs, session_token_threshold, session_retention_days\n")
				os.Exit(1)
			}
			return
		}

		// Display all configuration values
		fmt.Printf("ConfigFile: %s\n", viper.ConfigFileUsed())
		fmt.Printf("Model: %s\n", cfg.Model)
		fmt.Printf("OpenAIBaseURL: %s\n", cfg.OpenAIBaseURL)
		fmt.Printf("OpenAIToken: %s\n", maskToken(cfg.OpenAIToken))
		fmt.Printf("AnthropicBaseURL: %s\n", cfg.AnthropicBaseURL)
		fmt.Printf("AnthropicToken: %s\n", maskToken(cfg.AnthropicToken))
		fmt.Printf("GeminiBaseURL: %s\n", cfg.GeminiBaseURL)
		fmt.Printf("GeminiToken: %s\n", maskToken(cfg.GeminiToken))
		fmt.Printf("PersonaDirectories: %s\n", strings.Join(cfg.PersonaDirs, ","))
		fmt.Printf("SessionTokenThreshold: %d\n", cfg.SessionTokenThreshold)
		fmt.Printf("SessionRetentionDays: %d\n", cfg.SessionRetentionDays)
	},
}

// maskToken returns a masked version of the token for security
func maskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func init() {
	rootCmd.AddCommand(configCmd)
}
