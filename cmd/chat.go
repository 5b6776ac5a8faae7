/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mfukushima/recipechat/internal/recipechat"
	"github.com/mfukushima/recipechat/internal/recipechat/config"
	personapkg "github.com/mfukushima/recipechat/internal/recipechat/persona"
	"github.com/mfukushima/recipechat/internal/recipechat/session"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	model           string
	personaName     string
	useEditor       bool
	sessionID       string
	newSession      bool
	sessionName     string
	ignoreThreshold bool
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Send a message to the recipe assistant",
	Long: `Send a message to the recipe assistant and print the reply.

The conversation transcript always carries exactly one leading system
message: the built-in recipe-curator persona is injected when the
transcript does not start with one, and a persona already present is
used verbatim.

If no message is provided as an argument, it reads from stdin.
If --editor flag is set, it opens the default editor (from EDITOR environment variable) to compose the message.

Without session flags this is a one-shot call. Use --new-session to start
a persistent conversation and --session to continue one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration from file
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// Validate session flags
		if sessionID != "" && newSession {
			return fmt.Errorf("cannot specify both --session and --new-session")
		}

		// A persona only applies when the transcript is fresh
		if sessionID != "" && personaName != "" {
			return fmt.Errorf("cannot use --persona with an existing session")
		}

		// Get message from arguments, editor, or stdin
		var message string
		if useEditor {
			message, err = getMessageFromEditor()
			if err != nil {
				return fmt.Errorf("getting message from editor: %w", err)
			}
		} else if len(args) > 0 {
			message = strings.Join(args, " ")
		} else {
			input, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading from stdin: %w", err)
			}
			message = strings.TrimSpace(string(input))
		}

		// Resolve the persona instruction
		personaText := recipechat.DefaultPersona
		var personaModel *string
		if personaName != "" {
			p, err := personapkg.Resolve(personaName, cfg.PersonaDirs)
			if err != nil {
				return fmt.Errorf("resolving persona: %w", err)
			}
			personaText = p.System
			personaModel = p.Model
			if verbose {
				fmt.Fprintf(os.Stderr, "Using persona: %s\n", personaName)
			}
		}

		// Determine session mode
		var sess *session.Session
		var isNewSession bool

		if sessionID != "" {
			// Load existing session
			sess, err = session.FindSessionByPrefix(sessionID)
			if err != nil {
				return fmt.Errorf("finding session: %w", err)
			}

			// Check context size threshold
			threshold := cfg.SessionTokenThreshold
			if threshold > 0 && !ignoreThreshold {
				if tokens := sess.EstimateTokens(); tokens >= threshold {
					fmt.Fprintf(os.Stderr, "\nWarning: Session %s holds roughly %d context tokens (threshold: %d).\n",
						sess.GetShortID(), tokens, threshold)
					fmt.Fprintf(os.Stderr, "Long sessions may impact performance and token usage.\n")
					fmt.Fprintf(os.Stderr, "\nOptions:\n")
					fmt.Fprintf(os.Stderr, "  1. Continue anyway with --ignore-threshold flag\n")
					fmt.Fprintf(os.Stderr, "  2. Start a new session: recipechat chat --new-session\n\n")

					fmt.Fprint(os.Stderr, "Continue with this session? [y/N]: ")
					var response string
					fmt.Scanln(&response)

					if response != "y" && response != "Y" {
						fmt.Fprintln(os.Stderr, "Cancelled.")
						return nil
					}
				}
			}

			// Use the session's model
			cfg.Model = sess.Model

			if verbose {
				fmt.Fprintf(os.Stderr, "Continuing session: %s\n", sess.GetShortID())
				fmt.Fprintf(os.Stderr, "Model: %s\n", sess.Model)
			}
		} else {
			// Apply model with priority: flag > env > persona file > config file
			envModel := os.Getenv("RECIPECHAT_MODEL")
			if cmd.Flags().Changed("model") {
				if _, _, err := recipechat.ParseModelString(model); err != nil {
					return fmt.Errorf("invalid model from flag: %w", err)
				}
				cfg.Model = model
			} else if envModel != "" {
				if _, _, err := recipechat.ParseModelString(envModel); err != nil {
					return fmt.Errorf("invalid model from environment: %w", err)
				}
				cfg.Model = envModel
			} else if personaModel != nil {
				// Already validated by the persona loader
				cfg.Model = *personaModel
				if verbose {
					fmt.Fprintf(os.Stderr, "Using model from persona file: %s\n", cfg.Model)
				}
			}

			if newSession {
				isNewSession = true
				sess = session.NewSession(cfg.Model)
				sess.Name = sessionName
				sess.PersonaName = personaName

				if verbose {
					fmt.Fprintf(os.Stderr, "Creating new session: %s\n", sess.GetShortID())
					fmt.Fprintf(os.Stderr, "Model: %s\n", sess.Model)
				}
			}
		}

		// Select provider
		providerName, err := cfg.GetProvider()
		if err != nil {
			return fmt.Errorf("parsing model: %w", err)
		}
		modelName, err := cfg.GetModelName()
		if err != nil {
			return fmt.Errorf("parsing model: %w", err)
		}
		svc, err := newCompletionService(cfg, providerName)
		if err != nil {
			return fmt.Errorf("creating provider: %w", err)
		}

		agent := recipechat.NewAgent(svc, modelName, personaText)

		// Build the request history: the stored transcript (if any) plus
		// the new user message.
		var history []recipechat.Message
		if sess != nil {
			history = append(history, sess.Messages...)
		}
		history = append(history, recipechat.Message{Role: recipechat.RoleUser, Content: message})

		transcript, err := agent.Advance(history)
		if err != nil {
			return fmt.Errorf("chat request failed: %w", err)
		}

		reply := transcript[len(transcript)-1].Content

		if sess != nil {
			sess.SetMessages(transcript)
			if err := session.SaveSession(sess); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}
		}

		fmt.Println(reply)

		if isNewSession {
			fmt.Fprintf(os.Stderr, "\nSession created: %s\n", sess.GetShortID())
			sessionDir, _ := session.GetSessionDir()
			fmt.Fprintf(os.Stderr, "Path: %s/%s.json\n", sessionDir, sess.ID)
			fmt.Fprintf(os.Stderr, "\nNext time, use:\n  recipechat chat -s %s \"your message\"\n", sess.GetShortID())
		}

		return nil
	},
}

// getMessageFromEditor opens the default editor and returns the edited message
func getMessageFromEditor() (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return "", fmt.Errorf("EDITOR environment variable is not set")
	}

	tmpFile, err := os.CreateTemp("", "recipechat-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	cmd := exec.Command(editor, tmpFile.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to open editor: %v", err)
	}

	content, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited content: %v", err)
	}

	return strings.TrimSpace(string(content)), nil
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVarP(&model, "model", "m", viper.GetString("model"), "Model to use (format: provider:model, e.g., openai:gpt-4o-mini)")
	chatCmd.Flags().StringVarP(&personaName, "persona", "p", "", "Name of a persona file overriding the built-in recipe persona (without .toml extension)")
	chatCmd.Flags().BoolVarP(&useEditor, "editor", "e", false, "Use default editor (from EDITOR environment variable) to compose message")

	// Session flags
	chatCmd.Flags().StringVarP(&sessionID, "session", "s", "", "Session ID (short or full UUID, or 'latest' for most recent session)")
	chatCmd.Flags().BoolVarP(&newSession, "new-session", "n", false, "Create a new session")
	chatCmd.Flags().StringVar(&sessionName, "session-name", "", "Name for the new session (optional)")
	chatCmd.Flags().BoolVar(&ignoreThreshold, "ignore-threshold", false, "Ignore session context size warning")
}
