package services

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// DefaultBatchSize bounds the number of chunks per embedding request.
// Providers reject requests whose aggregate token count exceeds a limit;
// keeping batches small keeps every request under that limit regardless
// of document length.
const DefaultBatchSize = 64

// EmbeddingBatcher converts chunks into vectors in bounded-size batches.
type EmbeddingBatcher struct {
	embedder  driven.EmbeddingService
	batchSize int
	limiter   *rate.Limiter
}

// BatcherOption configures the embedding batcher.
type BatcherOption func(*EmbeddingBatcher)

// WithBatchSize sets the maximum number of chunks per request.
func WithBatchSize(size int) BatcherOption {
	return func(b *EmbeddingBatcher) {
		if size > 0 {
			b.batchSize = size
		}
	}
}

// WithRateLimit caps embedding requests at rps per second.
// Zero or negative rps leaves requests unthrottled.
func WithRateLimit(rps float64) BatcherOption {
	return func(b *EmbeddingBatcher) {
		if rps > 0 {
			b.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewEmbeddingBatcher creates a batcher over the given embedding service.
func NewEmbeddingBatcher(embedder driven.EmbeddingService, opts ...BatcherOption) *EmbeddingBatcher {
	b := &EmbeddingBatcher{
		embedder:  embedder,
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BatchSize returns the configured batch size.
func (b *EmbeddingBatcher) BatchSize() int { return b.batchSize }

// Batches partitions chunks into consecutive groups of at most the
// configured batch size, preserving order.
func (b *EmbeddingBatcher) Batches(chunks []domain.Chunk) [][]domain.Chunk {
	var batches [][]domain.Chunk
	for start := 0; start < len(chunks); start += b.batchSize {
		end := start + b.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batches = append(batches, chunks[start:end])
	}
	return batches
}

// EmbedBatch embeds one batch of chunks, preserving order. The returned
// error wraps domain.ErrEmbeddingProvider so callers can abort the build.
func (b *EmbeddingBatcher) EmbedBatch(ctx context.Context, batch []domain.Chunk) ([][]float32, error) {
	if b.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingProvider, err)
		}
	}

	texts := make([]string, len(batch))
	for i, chunk := range batch {
		texts[i] = chunk.Content
	}

	vectors, err := b.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingProvider, err)
	}
	if len(vectors) != len(batch) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d",
			domain.ErrEmbeddingProvider, len(batch), len(vectors))
	}
	return vectors, nil
}

// EmbedAll embeds every chunk, issuing one request per batch sequentially
// and returning vectors aligned 1:1 with the input. Any failed batch
// aborts the whole operation; no partial result is returned.
func (b *EmbeddingBatcher) EmbedAll(ctx context.Context, chunks []domain.Chunk) ([][]float32, error) {
	batches := b.Batches(chunks)
	vectors := make([][]float32, 0, len(chunks))

	for i, batch := range batches {
		logger.Debug("Embedding batch %d/%d (%d chunks)", i+1, len(batches), len(batch))
		batchVectors, err := b.EmbedBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d of %d: %w", i+1, len(batches), err)
		}
		vectors = append(vectors, batchVectors...)
	}

	return vectors, nil
}
