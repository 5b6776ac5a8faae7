/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/mfukushima/recipechat/internal/recipechat/config"
	personapkg "github.com/mfukushima/recipechat/internal/recipechat/persona"
	"github.com/spf13/cobra"
)

// personasCmd represents the personas command
var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List available persona files",
	Long: `List all available persona files from the configured persona directories.
This command recursively scans all persona directories specified in the configuration and displays
the names of available .toml persona files, including those in subdirectories.

A persona file overrides the built-in recipe-curator system prompt:
system = "Your custom system instruction"
model = "provider:model"  # Optional: overrides the default model for this persona

Persona names are displayed as relative paths from the persona directory root.
For example, a file at ${persona_dir}/regional/italian.toml is displayed as "regional/italian".`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "Persona directories: %v\n", cfg.PersonaDirs)
		}

		names, err := personapkg.List(cfg.PersonaDirs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing personas: %v\n", err)
			os.Exit(1)
		}

		if len(names) == 0 {
			fmt.Println("No persona files found; the built-in recipe persona is used.")
			fmt.Println("Create .toml files in the following directories:")
			for _, personaDir := range cfg.PersonaDirs {
				fmt.Printf("  - %s\n", personaDir)
			}
			return
		}

		fmt.Printf("Available personas (%d found):\n\n", len(names))
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}

		fmt.Printf("\nUse a persona with: recipechat chat --persona <name> [message]\n")
		fmt.Printf("Example: recipechat chat --persona regional/italian [message]\n")
	},
}

func init() {
	rootCmd.AddCommand(personasCmd)
}
