package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrFolderNotFound indicates the corpus folder does not exist.
	ErrFolderNotFound = errors.New("corpus folder not found")

	// ErrEmptyCorpus indicates the corpus folder holds no PDFs, or that
	// extraction produced no text at all.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrInvalidChunking indicates invalid chunking parameters
	// (overlap must be smaller than the chunk size, both positive).
	ErrInvalidChunking = errors.New("invalid chunking parameters")

	// ErrEmbeddingProvider indicates an embedding request failed.
	// A failed batch aborts the whole index build; a partial index
	// would silently answer with incomplete coverage.
	ErrEmbeddingProvider = errors.New("embedding provider failure")

	// ErrAnswerer indicates the language model call failed or returned
	// no text. No Answer is produced and conversation history must not
	// be extended.
	ErrAnswerer = errors.New("answerer failure")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Nothing can be indexed or asked without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
