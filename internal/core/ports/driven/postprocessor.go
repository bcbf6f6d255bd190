package driven

import (
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// Chunker splits extracted pages into bounded, overlapping chunks.
// Implementations must be pure: identical pages and configuration always
// yield the same chunk sequence in the same order.
type Chunker interface {
	// Split chunks each page's text. Invalid chunking parameters are
	// reported via domain.ErrInvalidChunking, never clamped.
	Split(pages []domain.Page) ([]domain.Chunk, error)
}
