package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Ensure Answerer implements the interface.
var _ driving.AnswerService = (*Answerer)(nil)

// DefaultTopK balances recall against prompt size.
const DefaultTopK = 8

// DefaultExcerptLimit caps source excerpts returned with an answer.
const DefaultExcerptLimit = 500

// answerPrompt is the fixed template used for every question. It embeds
// the retrieved passages as context and the verbatim question, and
// instructs the model to state uncertainty rather than fabricate. That
// instruction is a prompting contract, not a verified guarantee.
const answerPrompt = `You are an assistant for technical laboratory documents.
Answer clearly, concisely and professionally using only the information in the context.
If the answer is not in the context, say you are not sure.

Context:
%s

Question:
%s

Answer:`

// Answerer answers questions against a built vector index.
type Answerer struct {
	embedder     driven.EmbeddingService
	llm          driven.LLMService
	topK         int
	excerptLimit int
}

// AnswererOption configures the answerer.
type AnswererOption func(*Answerer)

// WithTopK sets the retrieval breadth.
func WithTopK(k int) AnswererOption {
	return func(a *Answerer) {
		if k > 0 {
			a.topK = k
		}
	}
}

// WithExcerptLimit sets the excerpt preview cap in characters.
func WithExcerptLimit(limit int) AnswererOption {
	return func(a *Answerer) {
		if limit > 0 {
			a.excerptLimit = limit
		}
	}
}

// NewAnswerer creates an answerer over the given providers.
func NewAnswerer(embedder driven.EmbeddingService, llm driven.LLMService, opts ...AnswererOption) *Answerer {
	a := &Answerer{
		embedder:     embedder,
		llm:          llm,
		topK:         DefaultTopK,
		excerptLimit: DefaultExcerptLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Answer embeds the question, retrieves the top-k passages, renders the
// prompt and invokes the language model once. On any failure, or when
// the model returns no text, no Answer is produced; the caller must not
// extend conversation history in that case.
func (a *Answerer) Answer(ctx context.Context, question string, index driven.VectorIndex) (*domain.Answer, error) {
	if a.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if a.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	logger.Section("Answer")
	logger.Debug("Question: %q", question)

	queryVector, err := a.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding question: %w", domain.ErrAnswerer, err)
	}

	entries, err := index.Search(queryVector, a.topK)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAnswerer, err)
	}
	logger.Debug("Retrieved %d passages", len(entries))

	prompt := fmt.Sprintf(answerPrompt, renderContext(entries), question)

	text, err := a.llm.Generate(ctx, prompt, driven.GenerateOptions{Temperature: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAnswerer, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: model returned no text", domain.ErrAnswerer)
	}

	sources := make([]domain.SourceRef, len(entries))
	for i, entry := range entries {
		sources[i] = domain.SourceRef{
			DocumentID: entry.Chunk.DocumentID,
			Page:       entry.Chunk.Page,
			Excerpt:    truncate(entry.Chunk.Content, a.excerptLimit),
		}
	}

	return &domain.Answer{Text: text, Sources: sources}, nil
}

// renderContext concatenates the retrieved passages with their source
// attribution, separated so passage boundaries stay visible to the model.
func renderContext(entries []domain.IndexEntry) string {
	if len(entries) == 0 {
		return "(no relevant passages found)"
	}

	parts := make([]string, len(entries))
	for i, entry := range entries {
		parts[i] = fmt.Sprintf("[%s, page %d]\n%s",
			entry.Chunk.DocumentID, entry.Chunk.Page, entry.Chunk.Content)
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// truncate caps s at limit runes, marking truncation with an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
