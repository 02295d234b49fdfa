package driven

import (
	"context"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

// SimilarityIndex maintains the mapping from chunk identity to embedding
// vector and answers k-nearest-neighbour queries by distance.
//
// The index is rebuild-only with respect to deletion: there is no
// selective remove. Document deletions are reconciled by a full Rebuild
// from the document store, which is the single consistency path.
type SimilarityIndex interface {
	// Add embeds the chunks and merges them into the current snapshot.
	// All-or-nothing: if any chunk fails to embed, nothing is published.
	// In-flight searches against the previous snapshot are undisturbed.
	Add(ctx context.Context, chunks []domain.Chunk) error

	// Rebuild recomputes the whole index from the source's chunk
	// enumeration and atomically swaps it in. Concurrent Rebuild calls
	// are coalesced; concurrent searches see either the old or the new
	// snapshot in full, never a mix.
	Rebuild(ctx context.Context, source ChunkSource) error

	// Search embeds the query text once and returns up to k results
	// ordered by ascending distance, ties broken by insertion order.
	// A never-populated index returns an empty slice, not an error.
	Search(ctx context.Context, queryText string, k int) ([]ScoredChunk, error)

	// Len reports the number of indexed chunks in the current snapshot.
	Len() int

	// Save persists the current snapshot to path.
	Save(path string) error

	// Close releases resources.
	Close() error
}

// ScoredChunk is a similarity search result.
type ScoredChunk struct {
	// Chunk is the matched chunk reference, reconstructed from the
	// index's own metadata without querying the document store.
	Chunk domain.Chunk

	// Distance is the cosine distance to the query (lower is closer).
	Distance float64
}
