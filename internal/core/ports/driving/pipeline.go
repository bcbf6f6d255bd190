package driving

import (
	"context"

	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// Pipeline is a fully built question-answering pipeline for one corpus
// state: its vector index plus the services needed to answer questions.
type Pipeline interface {
	// Index returns the built vector index.
	Index() driven.VectorIndex

	// ChunkCount returns the number of indexed chunks.
	ChunkCount() int

	// Documents returns the PDF file names that were indexed.
	Documents() []string
}

// PipelineService builds and caches answer pipelines keyed by the corpus
// signature. Only one build per signature proceeds at a time.
type PipelineService interface {
	// Signature fingerprints the folder's PDF set. It never fails;
	// a missing or empty folder yields a sentinel signature.
	Signature(folder string) string

	// GetOrBuild returns the cached pipeline for the signature, building
	// it once if absent. Build errors are returned and not cached.
	GetOrBuild(ctx context.Context, signature, folder string) (Pipeline, error)
}
