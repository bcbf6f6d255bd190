package domain

// Page is a single page of text extracted from a PDF document.
// Pages are the input unit for chunking; chunks never span pages.
type Page struct {
	// DocumentID identifies the source PDF (its file name).
	DocumentID string

	// Number is the 1-based page number within the document.
	Number int

	// Text is the raw extracted page text.
	Text string
}

// Chunk is a bounded-length slice of a page's text. Chunks are the unit
// of embedding and retrieval. Consecutive chunks from the same page share
// a configured overlap region; chunks never cross a page boundary.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID identifies the source PDF.
	DocumentID string

	// Page is the 1-based page number the chunk was taken from.
	Page int

	// Offset is the rune offset of the chunk within the page text.
	Offset int

	// Content is the chunk text.
	Content string
}

// IndexEntry pairs an embedding with its chunk inside the vector index.
// Entries are created during index build, never mutated, and removed only
// by a full rebuild.
type IndexEntry struct {
	// Chunk is the indexed chunk with its source metadata.
	Chunk Chunk

	// Embedding is the vector representation of the chunk content.
	Embedding []float32

	// Similarity is populated on search results (cosine, 0-1).
	Similarity float64
}

// SourceRef attributes part of an answer to an indexed passage.
type SourceRef struct {
	// DocumentID identifies the source PDF.
	DocumentID string

	// Page is the page the passage came from.
	Page int

	// Excerpt is a bounded preview of the passage. When the passage
	// was longer than the preview limit the excerpt ends with "…".
	Excerpt string
}

// Answer is the result of one question. It is created per question and
// not persisted by the core; the conversation surface owns any history.
type Answer struct {
	// Text is the synthesized answer.
	Text string

	// Sources lists the retrieved passages backing the answer, in
	// descending retrieval similarity order.
	Sources []SourceRef
}
