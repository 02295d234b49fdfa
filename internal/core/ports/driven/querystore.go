package driven

import (
	"context"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

// QueryStore persists answered queries as append-only analytics records.
// Writes are best-effort from the engine's perspective: a failed insert
// must never fail the user-facing answer.
type QueryStore interface {
	// InsertQuery stores a query record. Records are immutable once
	// written.
	InsertQuery(ctx context.Context, q *domain.Query) error

	// ListQueries returns recent queries, newest first.
	ListQueries(ctx context.Context, limit, offset int) ([]domain.Query, error)
}
