package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// cliSessionID scopes conversation history for one-shot commands.
// Every ask from the terminal shares this session, so follow-up
// questions see earlier turns.
const cliSessionID = "cli"

var askSession string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about indexed documents",
	Long: `Retrieves the most relevant document segments and generates an
answer grounded in them, with source citations.

Two special commands are recognised:
  summarize              - summarise everything that has been indexed
  translate:<language>   - translate the indexed content

Examples:
  quaero ask "what are the payment terms?"
  quaero ask summarize
  quaero ask translate:french`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askSession, "session", cliSessionID, "conversation session ID")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	answer, err := answerService.Ask(cmd.Context(), askSession, args[0])
	if err != nil {
		return fmt.Errorf("failed to answer: %w", err)
	}

	cmd.Println(answer.Text)

	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		seen := make(map[string]bool, len(answer.Sources))
		for i := range answer.Sources {
			doc := answer.Sources[i].Document
			if seen[doc.ID] {
				continue
			}
			seen[doc.ID] = true

			title := doc.Title
			if title == "" {
				title = doc.ID
			}
			cmd.Printf("  - %s\n", title)
		}
	}

	return nil
}
