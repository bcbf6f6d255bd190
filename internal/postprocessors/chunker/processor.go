// Package chunker provides a fixed-size text chunking processor.
package chunker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Processor splits page text into fixed-size chunks with overlap.
// Chunks never cross a page boundary; the overlap region exists only
// between consecutive chunks of the same page.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
// Parameter validation happens in Split, not here: an overlap that is
// not smaller than the chunk size is a configuration error the caller
// must see, not something to clamp silently.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ChunkSize returns the configured chunk size in characters.
func (p *Processor) ChunkSize() int { return p.chunkSize }

// Overlap returns the configured overlap in characters.
func (p *Processor) Overlap() int { return p.overlap }

// Split chunks each page's text into successive windows of chunkSize
// characters, advancing by chunkSize-overlap each step. A trailing
// partial window is kept; empty chunks are never produced. The result
// is deterministic for identical input apart from the generated IDs.
func (p *Processor) Split(pages []domain.Page) ([]domain.Chunk, error) {
	if p.chunkSize <= 0 || p.overlap < 0 || p.overlap >= p.chunkSize {
		return nil, fmt.Errorf("%w: chunk size %d, overlap %d",
			domain.ErrInvalidChunking, p.chunkSize, p.overlap)
	}

	step := p.chunkSize - p.overlap

	var chunks []domain.Chunk
	for _, page := range pages {
		runes := []rune(page.Text)
		for start := 0; start < len(runes); start += step {
			end := start + p.chunkSize
			if end > len(runes) {
				end = len(runes)
			}

			chunks = append(chunks, domain.Chunk{
				ID:         uuid.New().String(),
				DocumentID: page.DocumentID,
				Page:       page.Number,
				Offset:     start,
				Content:    string(runes[start:end]),
			})

			if end == len(runes) {
				break
			}
		}
	}

	return chunks, nil
}
