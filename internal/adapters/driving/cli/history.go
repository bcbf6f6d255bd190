package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [session]",
	Short: "Show past chat sessions",
	Long: `Without arguments, lists stored chat sessions, most recent first.
With a session ID, prints that session's transcript.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyStore == nil {
		return errors.New("history store not configured")
	}

	ctx := context.Background()

	if len(args) == 0 {
		sessions, err := historyStore.Sessions(ctx)
		if err != nil {
			return fmt.Errorf("listing sessions: %w", err)
		}
		if len(sessions) == 0 {
			cmd.Println("No chat sessions recorded yet.")
			return nil
		}
		for _, id := range sessions {
			cmd.Println(id)
		}
		return nil
	}

	messages, err := historyStore.Messages(ctx, args[0])
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	if len(messages) == 0 {
		cmd.Println("Session is empty or unknown.")
		return nil
	}

	for _, msg := range messages {
		cmd.Printf("[%s] %s\n", msg.Role, msg.Content)
	}
	return nil
}
