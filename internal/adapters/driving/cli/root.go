// Package cli provides the command-line interface for docchat.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/core/services"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services holds the wired application services the commands use.
type Services struct {
	Pipeline driving.PipelineService
	Answerer driving.AnswerService

	// History persists chat sessions. Optional; ask works without it.
	History driven.HistoryStore

	// Config is the persistent configuration store.
	Config driven.ConfigStore

	// Settings is the effective configuration after defaults and
	// config file merging.
	Settings domain.AppSettings
}

var (
	pipelineService driving.PipelineService
	answerService   driving.AnswerService
	historyStore    driven.HistoryStore
	configStore     driven.ConfigStore
	appSettings     domain.AppSettings
)

// Flags shared across commands.
var (
	verbose bool
	docsDir string
	rebuild bool
)

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Ask questions about a folder of PDF documents",
	Long: `Docchat answers questions about the PDF documents in a folder.

Documents are split into overlapping chunks, embedded and held in an
in-memory vector index. Each question retrieves the most similar
passages and asks the configured language model for a grounded answer
with source references.

The index is built on first use and rebuilt automatically when the
folder's PDF set changes.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&docsDir, "docs", "", "folder containing PDF documents (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&rebuild, "rebuild", false, "force a fresh index build even if cached")
}

// SetServices wires application services into the command tree.
// Must be called before Execute.
func SetServices(s *Services) {
	pipelineService = s.Pipeline
	answerService = s.Answerer
	historyStore = s.History
	configStore = s.Config
	appSettings = s.Settings
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// corpusFolder resolves the document folder from flag or settings.
func corpusFolder() string {
	if docsDir != "" {
		return docsDir
	}
	return appSettings.DocsDir
}

// buildPipeline fingerprints the folder and returns the pipeline for its
// current state, building it if needed. --rebuild salts the signature so
// the cached pipeline is bypassed for this invocation.
func buildPipeline(ctx context.Context) (driving.Pipeline, error) {
	if pipelineService == nil {
		return nil, errors.New("pipeline service not configured")
	}

	folder := corpusFolder()
	signature := pipelineService.Signature(folder)
	if rebuild {
		signature = services.SaltSignature(signature)
	}

	return pipelineService.GetOrBuild(ctx, signature, folder)
}
