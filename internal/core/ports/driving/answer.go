package driving

import (
	"context"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// AnswerService answers a question against a built vector index.
type AnswerService interface {
	// Answer retrieves the most similar passages for the question,
	// asks the language model once and returns the answer together
	// with the passages used. On failure no Answer is returned and
	// the caller must not extend conversation history.
	Answer(ctx context.Context, question string, index driven.VectorIndex) (*domain.Answer, error)
}
