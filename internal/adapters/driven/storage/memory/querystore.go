package memory

import (
	"context"
	"sync"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
)

var _ driven.QueryStore = (*QueryStore)(nil)

// QueryStore is an in-memory implementation of driven.QueryStore.
type QueryStore struct {
	mu      sync.RWMutex
	queries []domain.Query
}

// NewQueryStore creates a new in-memory query store.
func NewQueryStore() *QueryStore {
	return &QueryStore{}
}

// InsertQuery appends a query record.
func (s *QueryStore) InsertQuery(_ context.Context, q *domain.Query) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, *q)
	return nil
}

// ListQueries returns query records, most recent first.
func (s *QueryStore) ListQueries(_ context.Context, limit, offset int) ([]domain.Query, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.queries)
	if offset < 0 {
		offset = 0
	}
	if offset >= n {
		return nil, nil
	}
	// queries are stored oldest first; walk backwards
	out := make([]domain.Query, 0, limit)
	for i := n - 1 - offset; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, s.queries[i])
	}
	return out, nil
}
