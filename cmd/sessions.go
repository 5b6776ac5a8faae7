package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mfukushima/recipechat/internal/recipechat"
	"github.com/mfukushima/recipechat/internal/recipechat/config"
	"github.com/mfukushima/recipechat/internal/recipechat/session"
	"github.com/spf13/cobra"
)

var (
	clearAll     bool
	clearExpired bool
)

// sessionsCmd represents the sessions command
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage conversation sessions",
	Long: `Manage conversation sessions including listing, viewing, and deleting sessions.

Sessions allow you to maintain conversation history across multiple interactions.`,
}

// sessionsListCmd represents the sessions list command
var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sessions",
	Long:  `List all conversation sessions sorted by most recently updated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := session.ListSessions()
		if err != nil {
			return fmt.Errorf("listing sessions: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			fmt.Println("\nCreate a new session with:")
			fmt.Println("  recipechat chat --new-session \"your message\"")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tMODEL\tCREATED\tMESSAGES\tTOKENS\tNAME")
		fmt.Fprintln(w, "--\t-----\t-------\t--------\t------\t----")

		for _, sess := range sessions {
			name := sess.Name
			if name == "" {
				name = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
				sess.GetShortID(),
				sess.Model,
				sess.CreatedAt.Format("2006-01-02"),
				sess.MessageCount(),
				sess.EstimateTokens(),
				name,
			)
		}
		w.Flush()

		fmt.Println("\nUse 'recipechat sessions show <id>' to view session details.")
		return nil
	},
}

// sessionsShowCmd represents the sessions show command
var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show session details and history",
	Long: `Show detailed information about a session including all messages.

The ID can be a short ID (minimum 4 characters), full UUID, or "latest" for the most recent session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := session.FindSessionByPrefix(args[0])
		if err != nil {
			return fmt.Errorf("finding session: %w", err)
		}

		fmt.Printf("Session: %s\n", sess.ID)
		if sess.Name != "" {
			fmt.Printf("Name: %s\n", sess.Name)
		}
		fmt.Printf("Model: %s\n", sess.Model)
		fmt.Printf("Created: %s\n", sess.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Updated: %s\n", sess.UpdatedAt.Format("2006-01-02 15:04:05"))
		if sess.PersonaName != "" {
			fmt.Printf("Persona: %s\n", sess.PersonaName)
		}
		fmt.Printf("Messages: %d\n", sess.MessageCount())
		fmt.Printf("Context tokens (approx.): %d\n", sess.EstimateTokens())
		fmt.Println()

		if len(sess.Messages) == 0 {
			fmt.Println("No messages in this session.")
			return nil
		}

		fmt.Println("Message History:")
		fmt.Println("----------------")
		for i, msg := range sess.Messages {
			var roleLabel string
			switch msg.Role {
			case recipechat.RoleSystem:
				roleLabel = "System"
			case recipechat.RoleAssistant:
				roleLabel = "Assistant"
			default:
				roleLabel = "You"
			}

			fmt.Printf("\n[%d] %s:\n%s\n", i+1, roleLabel, msg.Content)
		}

		fmt.Printf("\nContinue this session with:\n  recipechat chat -s %s \"your message\"\n", sess.GetShortID())
		return nil
	},
}

// sessionsDeleteCmd represents the sessions delete command
var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session",
	Long: `Delete a conversation session permanently.

The ID can be a short ID (minimum 4 characters), full UUID, or "latest" for the most recent session.

Warning: This action cannot be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := session.FindSessionByPrefix(args[0])
		if err != nil {
			return fmt.Errorf("finding session: %w", err)
		}

		fmt.Printf("Are you sure you want to delete session %s? [y/N]: ", sess.GetShortID())
		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Deletion cancelled.")
			return nil
		}

		if err := session.DeleteSession(sess.ID); err != nil {
			return fmt.Errorf("deleting session: %w", err)
		}

		fmt.Printf("Session %s deleted successfully.\n", sess.GetShortID())
		return nil
	},
}

// sessionsRenameCmd represents the sessions rename command
var sessionsRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a session",
	Long: `Rename a conversation session.

The ID can be a short ID (minimum 4 characters), full UUID, or "latest" for the most recent session.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := session.FindSessionByPrefix(args[0])
		if err != nil {
			return fmt.Errorf("finding session: %w", err)
		}

		sess.Name = args[1]
		if err := session.SaveSession(sess); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		fmt.Printf("Session %s renamed to %q.\n", sess.GetShortID(), sess.Name)
		return nil
	},
}

// sessionsClearCmd represents the sessions clear command
var sessionsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete old or all sessions",
	Long: `Delete sessions in bulk.

With --expired, deletes sessions older than the configured retention
period (session_retention_days). With --all, deletes every session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if clearAll == clearExpired {
			return fmt.Errorf("specify exactly one of --all or --expired")
		}

		if clearExpired {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			deleted, err := session.PruneSessions(cfg.SessionRetentionDays)
			if err != nil {
				return fmt.Errorf("pruning sessions: %w", err)
			}
			fmt.Printf("Deleted %d session(s) older than %d days.\n", deleted, cfg.SessionRetentionDays)
			return nil
		}

		sessions, err := session.ListSessions()
		if err != nil {
			return fmt.Errorf("listing sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		fmt.Printf("Are you sure you want to delete all %d session(s)? [y/N]: ", len(sessions))
		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Deletion cancelled.")
			return nil
		}

		for _, sess := range sessions {
			if err := session.DeleteSession(sess.ID); err != nil {
				return fmt.Errorf("deleting session %s: %w", sess.GetShortID(), err)
			}
		}

		fmt.Printf("Deleted %d session(s).\n", len(sessions))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsRenameCmd)
	sessionsCmd.AddCommand(sessionsClearCmd)

	sessionsClearCmd.Flags().BoolVar(&clearAll, "all", false, "Delete all sessions")
	sessionsClearCmd.Flags().BoolVar(&clearExpired, "expired", false, "Delete sessions older than the retention period")
}
