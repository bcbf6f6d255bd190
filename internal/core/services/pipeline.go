package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.PipelineService = (*PipelineService)(nil)

// Signature sentinels for folders that cannot be fingerprinted normally.
const (
	SignatureMissing = "missing"
	SignatureEmpty   = "empty"
)

// forceMarker is appended to a signature to guarantee a cache miss.
// It contains a character that never occurs in a natural signature's
// trailing position, so a salted signature equals no natural one.
const forceMarker = ":force"

// SaltSignature returns a signature guaranteed distinct from any
// naturally occurring one, forcing a fresh build.
func SaltSignature(signature string) string {
	return signature + forceMarker
}

// Pipeline is a built index plus its corpus metadata.
type Pipeline struct {
	index      driven.VectorIndex
	chunkCount int
	documents  []string
}

// Ensure Pipeline implements the interface.
var _ driving.Pipeline = (*Pipeline)(nil)

// Index returns the built vector index.
func (p *Pipeline) Index() driven.VectorIndex { return p.index }

// ChunkCount returns the number of indexed chunks.
func (p *Pipeline) ChunkCount() int { return p.chunkCount }

// Documents returns the PDF file names that were indexed.
func (p *Pipeline) Documents() []string { return p.documents }

// IndexFactory builds a vector index from the first embedding batch.
// The batch is never empty.
type IndexFactory func(entries []domain.IndexEntry) (driven.VectorIndex, error)

// buildCall tracks an in-flight build so duplicate GetOrBuild calls for
// the same signature wait for one build instead of spending embeddings
// twice.
type buildCall struct {
	done     chan struct{}
	pipeline *Pipeline
	err      error
}

// PipelineService builds answer pipelines and memoizes them by corpus
// signature. Only one build per signature proceeds at a time.
type PipelineService struct {
	loader   *DocumentLoader
	chunker  driven.Chunker
	batcher  *EmbeddingBatcher
	newIndex IndexFactory

	mu       sync.Mutex
	built    map[string]*Pipeline
	inflight map[string]*buildCall
}

// NewPipelineService creates a pipeline service.
func NewPipelineService(
	loader *DocumentLoader,
	chunker driven.Chunker,
	batcher *EmbeddingBatcher,
	newIndex IndexFactory,
) *PipelineService {
	return &PipelineService{
		loader:   loader,
		chunker:  chunker,
		batcher:  batcher,
		newIndex: newIndex,
		built:    make(map[string]*Pipeline),
		inflight: make(map[string]*buildCall),
	}
}

// Signature fingerprints the folder's PDF set as sorted name:mtime pairs.
// It never fails: a folder that cannot be read yields the "missing"
// sentinel, a folder without PDFs yields "empty". The signature is
// advisory, used only as the cache key for built pipelines.
func (s *PipelineService) Signature(folder string) string {
	files, err := ListPDFs(folder)
	if err != nil {
		return SignatureMissing
	}
	if len(files) == 0 {
		return SignatureEmpty
	}

	parts := make([]string, 0, len(files))
	for _, name := range files {
		info, err := os.Stat(filepath.Join(folder, name))
		if err != nil {
			parts = append(parts, name+":0")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%d", name, info.ModTime().Unix()))
	}
	return strings.Join(parts, "|")
}

// GetOrBuild returns the cached pipeline for signature, building it once
// if absent. Concurrent calls for the same signature coalesce onto a
// single build. Build errors are returned to every waiter and are not
// cached, so a retry re-executes the full build.
func (s *PipelineService) GetOrBuild(ctx context.Context, signature, folder string) (driving.Pipeline, error) {
	s.mu.Lock()
	if pipeline, ok := s.built[signature]; ok {
		s.mu.Unlock()
		logger.Debug("Pipeline cache hit for signature %q", signature)
		return pipeline, nil
	}

	if call, ok := s.inflight[signature]; ok {
		s.mu.Unlock()
		<-call.done
		if call.err != nil {
			return nil, call.err
		}
		return call.pipeline, nil
	}

	call := &buildCall{done: make(chan struct{})}
	s.inflight[signature] = call
	s.mu.Unlock()

	call.pipeline, call.err = s.build(ctx, folder)

	s.mu.Lock()
	delete(s.inflight, signature)
	if call.err == nil {
		s.built[signature] = call.pipeline
	}
	s.mu.Unlock()
	close(call.done)

	if call.err != nil {
		logger.Error("Pipeline build failed: %v", call.err)
		return nil, call.err
	}
	return call.pipeline, nil
}

// build runs the full pipeline: load pages, chunk, embed in batches and
// construct the index incrementally. The index is initialized from the
// first batch and later batches are inserted in order, so memory stays
// bounded and a failing batch is detected before a single massive call.
// Any failure aborts the build; no partial index is ever returned.
func (s *PipelineService) build(ctx context.Context, folder string) (*Pipeline, error) {
	pages, err := s.loader.Load(ctx, folder)
	if err != nil {
		return nil, err
	}

	chunks, err := s.chunker.Split(pages)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: chunking yielded no chunks for %s", domain.ErrEmptyCorpus, folder)
	}

	logger.Section("Index Build")
	logger.Info("Chunks: %d, batch size: %d", len(chunks), s.batcher.BatchSize())

	var index driven.VectorIndex
	for i, batch := range s.batcher.Batches(chunks) {
		vectors, err := s.batcher.EmbedBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", i+1, err)
		}

		entries := make([]domain.IndexEntry, len(batch))
		for j := range batch {
			entries[j] = domain.IndexEntry{Chunk: batch[j], Embedding: vectors[j]}
		}

		if index == nil {
			index, err = s.newIndex(entries)
		} else {
			err = index.Insert(entries)
		}
		if err != nil {
			return nil, err
		}
	}

	documents, err := ListPDFs(folder)
	if err != nil {
		return nil, fmt.Errorf("reading folder %s: %w", folder, err)
	}

	logger.Info("Index built: %d entries from %d documents", index.Len(), len(documents))

	return &Pipeline{
		index:      index,
		chunkCount: len(chunks),
		documents:  documents,
	}, nil
}
