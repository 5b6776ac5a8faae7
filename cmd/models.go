/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mfukushima/recipechat/internal/anthropic"
	"github.com/mfukushima/recipechat/internal/gemini"
	"github.com/mfukushima/recipechat/internal/openai"
	"github.com/mfukushima/recipechat/internal/recipechat"
	"github.com/mfukushima/recipechat/internal/recipechat/config"
	"github.com/spf13/cobra"
)

// modelsCmd represents the models command
var modelsCmd = &cobra.Command{
	Use:   "models [provider]",
	Short: "List available models for the specified provider(s)",
	Long: `List all available models for the specified provider.
Fetches the latest model information directly from the provider's API.

Supported providers: openai, anthropic, gemini

If no provider is specified, lists models from all providers.

Example:
  recipechat models            # List models from all providers
  recipechat models openai     # List OpenAI models
  recipechat models anthropic  # List Anthropic models`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		allProviders := []string{openai.ProviderName, anthropic.ProviderName, gemini.ProviderName}

		// Determine which providers to list
		var providers []string
		if len(args) == 0 {
			providers = allProviders
		} else {
			targetProvider := args[0]
			supported := false
			for _, p := range allProviders {
				if targetProvider == p {
					supported = true
					break
				}
			}
			if !supported {
				return fmt.Errorf("unsupported provider '%s'\nSupported providers: %s", targetProvider, strings.Join(allProviders, ", "))
			}
			providers = []string{targetProvider}
		}

		type providerResult struct {
			provider string
			models   []recipechat.ModelInfo
			err      error
		}

		var results []providerResult

		for _, targetProvider := range providers {
			result := providerResult{provider: targetProvider}

			if verbose {
				fmt.Fprintf(os.Stderr, "Listing models for provider: %s\n", targetProvider)
			}

			svc, err := newCompletionService(cfg, targetProvider)
			if err != nil {
				result.err = err
				results = append(results, result)
				continue
			}

			models, err := svc.ListModels()
			if err != nil {
				result.err = fmt.Errorf("failed to list models: %w", err)
				results = append(results, result)
				continue
			}
			if len(models) == 0 {
				result.err = fmt.Errorf("no models returned from API")
				results = append(results, result)
				continue
			}

			result.models = models
			results = append(results, result)
		}

		// Display successful results first
		successCount := 0
		for _, result := range results {
			if result.err != nil {
				continue
			}

			if successCount > 0 {
				fmt.Println()
			}
			successCount++

			fmt.Printf("Available models for %s:\n\n", result.provider)

			// Calculate column widths
			maxModelWidth := 15
			for _, model := range result.models {
				modelName := recipechat.FormatModelString(result.provider, model.ID)
				if len(modelName) > maxModelWidth {
					maxModelWidth = len(modelName)
				}
			}

			fmt.Printf("%-*s  %-10s  %s\n", maxModelWidth, "MODEL", "DEFAULT", "DESCRIPTION")
			fmt.Printf("%s  %s  %s\n",
				strings.Repeat("-", maxModelWidth),
				strings.Repeat("-", 10),
				strings.Repeat("-", 50))

			for _, model := range result.models {
				defaultMark := ""
				if model.IsDefault {
					defaultMark = "Yes"
				}
				fmt.Printf("%-*s  %-10s  %s\n",
					maxModelWidth,
					recipechat.FormatModelString(result.provider, model.ID),
					defaultMark,
					model.Description)
			}

			fmt.Printf("\nUse a model with: recipechat chat --model <model> [message]\n")
		}

		// Display errors at the end
		errorCount := 0
		for _, result := range results {
			if result.err == nil {
				continue
			}

			if errorCount == 0 && successCount > 0 {
				fmt.Println()
			}
			errorCount++

			fmt.Fprintf(os.Stderr, "Warning: Skipping %s - %v\n", result.provider, result.err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
