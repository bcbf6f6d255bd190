package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the index for the document folder",
	Long: `Scans the document folder, extracts and chunks every PDF, embeds
the chunks and reports what was indexed. Subsequent questions against
the unchanged folder reuse this index.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	pipeline, err := buildPipeline(context.Background())
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	docs := pipeline.Documents()
	cmd.Printf("Indexed %d chunks from %d documents:\n", pipeline.ChunkCount(), len(docs))
	for _, doc := range docs {
		cmd.Printf("  %s\n", doc)
	}

	return nil
}
