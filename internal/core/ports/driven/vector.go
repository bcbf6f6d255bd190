package driven

import (
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// VectorIndex provides semantic similarity search over index entries.
// The index is append-only: entries are inserted during build and removed
// only by discarding the whole index. Search is safe for concurrent use.
type VectorIndex interface {
	// Insert appends entries in the given order.
	Insert(entries []domain.IndexEntry) error

	// Search returns at most k entries by descending cosine similarity.
	// Ties are broken by insertion order (earlier-inserted wins).
	Search(query []float32, k int) ([]domain.IndexEntry, error)

	// Len returns the number of stored entries.
	Len() int
}
