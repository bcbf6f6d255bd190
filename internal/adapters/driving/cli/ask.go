package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question about the documents",
	Long: `Builds (or reuses) the index for the document folder and answers
one question, printing the answer followed by the source passages it
was grounded on.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if answerService == nil {
		return errors.New("answer service not configured")
	}

	ctx := context.Background()
	pipeline, err := buildPipeline(ctx)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	answer, err := answerService.Answer(ctx, question, pipeline.Index())
	if err != nil {
		return fmt.Errorf("answering: %w", err)
	}

	cmd.Println(answer.Text)

	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, src := range answer.Sources {
			cmd.Printf("  [%s, page %d] %s\n", src.DocumentID, src.Page, src.Excerpt)
		}
	}

	return nil
}
