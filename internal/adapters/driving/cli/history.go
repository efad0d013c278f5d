package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyLimit   int
	historySession string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show conversation history",
	Long:  `Shows the most recent messages in a conversation session.`,
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear conversation history",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historySession, "session", cliSessionID, "conversation session ID")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of messages")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryShow(cmd *cobra.Command, _ []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	messages, err := answerService.History(cmd.Context(), historySession, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	if len(messages) == 0 {
		cmd.Println("No conversation history.")
		return nil
	}

	for i := range messages {
		cmd.Printf("[%s] %s\n", messages[i].Role, messages[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println(messages[i].Content)
		cmd.Println()
	}

	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	if err := answerService.ClearHistory(cmd.Context(), historySession); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	cmd.Printf("Cleared history for session %q.\n", historySession)
	return nil
}
