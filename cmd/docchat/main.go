// Command docchat answers questions about a folder of PDF documents.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/ai"
	configfile "github.com/custodia-labs/docchat-cli/internal/adapters/driven/config/file"
	pdfextractor "github.com/custodia-labs/docchat-cli/internal/adapters/driven/extractor/pdf"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/vectorindex/memory"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/services"
	"github.com/custodia-labs/docchat-cli/internal/logger"
	"github.com/custodia-labs/docchat-cli/internal/postprocessors/chunker"
)

// cloudEmbedRateLimit caps embedding calls per second against cloud APIs.
const cloudEmbedRateLimit = 5.0

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	settings := configStore.Settings()
	settings.Embedding.APIKey = apiKeyFor(settings.Embedding.Provider)
	settings.LLM.APIKey = apiKeyFor(settings.LLM.Provider)

	// AI services are created up front but only pinged on use, so
	// commands like version and config work without credentials.
	var embedder driven.EmbeddingService
	var llm driven.LLMService

	if settings.Embedding.IsConfigured() {
		embedder, err = ai.CreateEmbeddingService(&settings.Embedding)
		if err != nil {
			logger.Warn("embedding service unavailable: %v", err)
		}
	} else {
		logger.Warn("embedding provider not configured; set %s or run 'docchat config'",
			apiKeyEnvVar(settings.Embedding.Provider))
	}

	if settings.LLM.IsConfigured() {
		llm, err = ai.CreateLLMService(&settings.LLM)
		if err != nil {
			logger.Warn("LLM service unavailable: %v", err)
		}
	} else {
		logger.Warn("LLM provider not configured; set %s or run 'docchat config'",
			apiKeyEnvVar(settings.LLM.Provider))
	}

	loader := services.NewDocumentLoader(pdfextractor.New())
	chunkerProc := chunker.New(
		chunker.WithChunkSize(settings.Chunking.ChunkSize),
		chunker.WithOverlap(settings.Chunking.Overlap),
	)

	batcherOpts := []services.BatcherOption{
		services.WithBatchSize(settings.Retrieval.BatchSize),
	}
	if !settings.Embedding.Provider.IsLocal() {
		batcherOpts = append(batcherOpts, services.WithRateLimit(cloudEmbedRateLimit))
	}
	batcher := services.NewEmbeddingBatcher(embedder, batcherOpts...)

	pipelineSvc := services.NewPipelineService(loader, chunkerProc, batcher,
		func(entries []domain.IndexEntry) (driven.VectorIndex, error) {
			return memory.New(entries)
		})

	answerer := services.NewAnswerer(embedder, llm,
		services.WithTopK(settings.Retrieval.TopK))

	// Chat history is best-effort; the pipeline works without it.
	var history driven.HistoryStore
	if store, err := sqlite.NewStore(""); err != nil {
		logger.Warn("chat history unavailable: %v", err)
	} else {
		history = store
		defer store.Close()
	}

	cli.SetServices(&cli.Services{
		Pipeline: pipelineSvc,
		Answerer: answerer,
		History:  history,
		Config:   configStore,
		Settings: settings,
	})

	return cli.Execute()
}

// apiKeyFor reads the provider's API key from the environment.
func apiKeyFor(provider domain.AIProvider) string {
	if !provider.RequiresAPIKey() {
		return ""
	}
	return os.Getenv(apiKeyEnvVar(provider))
}

// apiKeyEnvVar names the environment variable holding the provider's key.
func apiKeyEnvVar(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderOpenAI:
		return "OPENAI_API_KEY"
	case domain.AIProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}
