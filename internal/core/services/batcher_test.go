package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

func makeChunks(n int) []domain.Chunk {
	chunks := make([]domain.Chunk, n)
	for i := range chunks {
		text := fmt.Sprintf("chunk %d", i)
		if i%3 == 0 {
			text = fmt.Sprintf("cycling chunk %d", i)
		}
		chunks[i] = domain.Chunk{ID: fmt.Sprintf("c%d", i), Content: text}
	}
	return chunks
}

func TestEmbeddingBatcher_Batches(t *testing.T) {
	tests := []struct {
		name      string
		chunks    int
		batchSize int
		want      []int
	}{
		{"exact multiple", 8, 4, []int{4, 4}},
		{"trailing partial", 10, 4, []int{4, 4, 2}},
		{"single batch", 3, 64, []int{3}},
		{"batch of one", 3, 1, []int{1, 1, 1}},
		{"empty input", 0, 4, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewEmbeddingBatcher(&mockEmbedding{}, WithBatchSize(tt.batchSize))
			batches := b.Batches(makeChunks(tt.chunks))

			var sizes []int
			for _, batch := range batches {
				sizes = append(sizes, len(batch))
			}
			assert.Equal(t, tt.want, sizes)
		})
	}
}

func TestEmbeddingBatcher_EmbedAll_PreservesOrder(t *testing.T) {
	for _, batchSize := range []int{1, 3, 64} {
		t.Run(fmt.Sprintf("batch size %d", batchSize), func(t *testing.T) {
			embedder := &mockEmbedding{}
			b := NewEmbeddingBatcher(embedder, WithBatchSize(batchSize))
			chunks := makeChunks(10)

			vectors, err := b.EmbedAll(context.Background(), chunks)
			require.NoError(t, err)
			require.Len(t, vectors, len(chunks))

			// vectors[i] corresponds to chunks[i] for every i.
			for i, chunk := range chunks {
				assert.Equal(t, embedder.vector(chunk.Content), vectors[i], "index %d", i)
			}
		})
	}
}

func TestEmbeddingBatcher_EmbedAll_RespectsBatchSize(t *testing.T) {
	embedder := &mockEmbedding{}
	b := NewEmbeddingBatcher(embedder, WithBatchSize(4))

	_, err := b.EmbedAll(context.Background(), makeChunks(10))
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4, 2}, embedder.batchSizes)
}

func TestEmbeddingBatcher_EmbedAll_FailedBatchAborts(t *testing.T) {
	embedder := &mockEmbedding{failAtBatch: 2}
	b := NewEmbeddingBatcher(embedder, WithBatchSize(4))

	vectors, err := b.EmbedAll(context.Background(), makeChunks(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingProvider)
	// No partial result: a partial index would silently answer with
	// incomplete coverage.
	assert.Nil(t, vectors)
}

func TestEmbeddingBatcher_EmbedBatch_CountMismatch(t *testing.T) {
	b := NewEmbeddingBatcher(&shortEmbedding{}, WithBatchSize(4))

	_, err := b.EmbedBatch(context.Background(), makeChunks(4))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingProvider)
	assert.Contains(t, err.Error(), "expected 4 embeddings")
}

func TestEmbeddingBatcher_NilEmbedder(t *testing.T) {
	b := NewEmbeddingBatcher(nil)

	_, err := b.EmbedAll(context.Background(), makeChunks(2))
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestEmbeddingBatcher_DefaultBatchSize(t *testing.T) {
	b := NewEmbeddingBatcher(&mockEmbedding{}, WithBatchSize(0))
	assert.Equal(t, DefaultBatchSize, b.BatchSize())
}

// shortEmbedding returns fewer vectors than inputs.
type shortEmbedding struct {
	mockEmbedding
}

func (s *shortEmbedding) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	return make([][]float32, len(texts)-1), nil
}
