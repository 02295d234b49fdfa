package driving

import (
	"context"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

// AnswerService answers natural-language questions against the indexed
// documents.
type AnswerService interface {
	// Answer retrieves relevant chunks, synthesizes an answer and
	// returns a fully-formed Query record. It returns an error only for
	// invalid requests; capability failures are converted into a
	// degraded answer with zero confidence.
	Answer(ctx context.Context, req domain.AnswerRequest) (*domain.Query, error)

	// History returns recent query records, newest first.
	History(ctx context.Context, limit, offset int) ([]domain.Query, error)
}
