package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestChunk_Fields tests Chunk structure fields
func TestChunk_Fields(t *testing.T) {
	chunk := Chunk{
		ID:         "chunk-123",
		DocumentID: "manual.pdf",
		Page:       4,
		Offset:     800,
		Content:    "the cycling test procedure",
	}

	assert.Equal(t, "chunk-123", chunk.ID)
	assert.Equal(t, "manual.pdf", chunk.DocumentID)
	assert.Equal(t, 4, chunk.Page)
	assert.Equal(t, 800, chunk.Offset)
	assert.Equal(t, "the cycling test procedure", chunk.Content)
}

// TestIndexEntry_Fields tests IndexEntry structure fields
func TestIndexEntry_Fields(t *testing.T) {
	entry := IndexEntry{
		Chunk:      Chunk{ID: "chunk-123", DocumentID: "manual.pdf"},
		Embedding:  []float32{0.1, 0.2, 0.3},
		Similarity: 0.92,
	}

	assert.Equal(t, "chunk-123", entry.Chunk.ID)
	assert.Len(t, entry.Embedding, 3)
	assert.InDelta(t, 0.92, entry.Similarity, 1e-9)
}

// TestAnswer_Sources tests Answer source attribution ordering
func TestAnswer_Sources(t *testing.T) {
	answer := Answer{
		Text: "The cycling test is described in section 3.",
		Sources: []SourceRef{
			{DocumentID: "manual.pdf", Page: 3, Excerpt: "cycling test…"},
			{DocumentID: "annex.pdf", Page: 1, Excerpt: "see manual"},
		},
	}

	assert.Len(t, answer.Sources, 2)
	assert.Equal(t, "manual.pdf", answer.Sources[0].DocumentID)
	assert.Equal(t, 3, answer.Sources[0].Page)
}
