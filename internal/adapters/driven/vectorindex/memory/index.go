// Package memory provides an in-memory vector index using brute-force
// cosine similarity. The index lives for the process lifetime only;
// persistence across restarts is out of scope.
package memory

import (
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// DefaultTopK is the default number of search results.
const DefaultTopK = 8

// Index stores index entries and supports nearest-neighbour search.
// It is append-only; concurrent Search calls are safe.
type Index struct {
	mu        sync.RWMutex
	dimension int
	entries   []domain.IndexEntry
}

// New creates an index from the first embedding batch. The index always
// starts non-empty so a successfully built index is never a hollow shell.
func New(entries []domain.IndexEntry) (*Index, error) {
	if len(entries) == 0 {
		return nil, errors.New("memory: index must be built from a non-empty first batch")
	}

	idx := &Index{dimension: len(entries[0].Embedding)}
	if err := idx.Insert(entries); err != nil {
		return nil, err
	}
	return idx, nil
}

// Insert appends entries in the given order.
func (idx *Index) Insert(entries []domain.IndexEntry) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, entry := range entries {
		if len(entry.Embedding) != idx.dimension {
			return errors.New("memory: embedding dimension mismatch")
		}
	}
	idx.entries = append(idx.entries, entries...)
	return nil
}

// Len returns the number of stored entries.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Search returns at most k entries by descending cosine similarity.
// Ties are broken by insertion order, so results are deterministic.
func (idx *Index) Search(query []float32, k int) ([]domain.IndexEntry, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(query) != idx.dimension {
		return nil, errors.New("memory: query dimension mismatch")
	}
	if k <= 0 {
		k = DefaultTopK
	}

	order := make([]int, len(idx.entries))
	scores := make([]float64, len(idx.entries))
	for i := range idx.entries {
		order[i] = i
		scores[i] = cosine(idx.entries[i].Embedding, query)
	}

	// SliceStable keeps insertion order for equal scores.
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}
	results := make([]domain.IndexEntry, 0, k)
	for _, i := range order[:k] {
		entry := idx.entries[i]
		entry.Similarity = scores[i]
		results = append(results, entry)
	}
	return results, nil
}

// cosine computes the cosine similarity of two vectors.
func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
