// Package index provides the in-memory chunk similarity index.
//
// The index maps chunk identity to an embedding vector and answers
// k-nearest-neighbour queries by cosine distance. All reads go through an
// immutable snapshot behind an atomic pointer: Add and Rebuild construct a
// new snapshot off to the side and swap it in, so in-flight searches
// always see exactly one snapshot, never a partial update.
//
// Deletion is rebuild-only. The underlying flat structure has no cheap
// selective remove, so document deletions are reconciled by a full
// Rebuild from the document store. One consistency code path, traded
// against rebuild cost; acceptable because deletions are rare relative
// to reads.
package index

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdoc-labs/askdoc-cli/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.SimilarityIndex = (*Index)(nil)

// EmbedBatchSize is the number of chunk texts sent per embedding call.
const EmbedBatchSize = 64

// EmbedConcurrency caps how many embedding batches are in flight at once.
const EmbedConcurrency = 4

// record pairs a chunk reference with its unit-normalized vector.
type record struct {
	chunk  domain.Chunk
	vector []float32
}

// snapshot is an immutable version of the index contents. Records keep
// insertion order, which breaks distance ties in Search.
type snapshot struct {
	records    []record
	dimensions int
}

// Index is the snapshot-swapped similarity index.
type Index struct {
	embedder driven.EmbeddingService

	// current is the snapshot visible to searches. Never nil after New.
	current atomic.Pointer[snapshot]

	// publish serializes snapshot swaps so concurrent Adds cannot lose
	// each other's records.
	publish sync.Mutex

	// rebuilds coalesces concurrent Rebuild calls into one flight.
	rebuilds singleflight.Group

	closed atomic.Bool
}

// New creates an empty index over the given embedding service.
func New(embedder driven.EmbeddingService) *Index {
	idx := &Index{embedder: embedder}
	idx.current.Store(&snapshot{})
	return idx
}

// Len reports the number of indexed chunks in the current snapshot.
func (idx *Index) Len() int {
	return len(idx.current.Load().records)
}

// Add embeds the chunks and merges them into a fresh snapshot.
// All-or-nothing: an embedding failure for any chunk publishes nothing.
func (idx *Index) Add(ctx context.Context, chunks []domain.Chunk) error {
	if idx.closed.Load() {
		return domain.ErrIndexUnavailable
	}
	if len(chunks) == 0 {
		return nil
	}

	records, err := idx.embedChunks(ctx, chunks)
	if err != nil {
		return err
	}

	idx.publish.Lock()
	defer idx.publish.Unlock()

	old := idx.current.Load()
	merged := make([]record, 0, len(old.records)+len(records))
	merged = append(merged, old.records...)
	merged = append(merged, records...)

	idx.current.Store(&snapshot{
		records:    merged,
		dimensions: idx.embedder.Dimensions(),
	})

	logger.Debug("Index: added %d chunks (total %d)", len(records), len(merged))
	return nil
}

// Rebuild recomputes the entire index from the source's chunk
// enumeration and atomically swaps it in. Concurrent Rebuild calls share
// a single flight; in-flight searches keep the old snapshot until the
// swap. After a successful rebuild the index's chunk set is exactly the
// source's chunk set at the start of the rebuild.
func (idx *Index) Rebuild(ctx context.Context, source driven.ChunkSource) error {
	if idx.closed.Load() {
		return domain.ErrIndexUnavailable
	}

	_, err, shared := idx.rebuilds.Do("rebuild", func() (any, error) {
		return nil, idx.rebuild(ctx, source)
	})
	if shared {
		logger.Debug("Index: rebuild coalesced with concurrent caller")
	}
	return err
}

func (idx *Index) rebuild(ctx context.Context, source driven.ChunkSource) error {
	logger.Section("Index Rebuild")

	chunks, err := source.AllChunks(ctx)
	if err != nil {
		return fmt.Errorf("enumerate chunks: %w", err)
	}

	records, err := idx.embedChunks(ctx, chunks)
	if err != nil {
		return err
	}

	idx.publish.Lock()
	idx.current.Store(&snapshot{
		records:    records,
		dimensions: idx.embedder.Dimensions(),
	})
	idx.publish.Unlock()

	logger.Info("Index: rebuilt with %d chunks", len(records))
	return nil
}

// Search embeds the query text once and returns up to k records from the
// current snapshot ordered by ascending cosine distance, ties broken by
// insertion order. A never-populated index returns an empty slice.
func (idx *Index) Search(ctx context.Context, queryText string, k int) ([]driven.ScoredChunk, error) {
	if idx.closed.Load() {
		return nil, domain.ErrIndexUnavailable
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive", domain.ErrInvalidInput)
	}

	snap := idx.current.Load()
	if len(snap.records) == 0 {
		return []driven.ScoredChunk{}, nil
	}

	query, err := idx.embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", domain.ErrEmbeddingFailed, err)
	}
	normalize(query)

	type scored struct {
		pos      int
		distance float64
	}
	distances := make([]scored, len(snap.records))
	for i := range snap.records {
		distances[i] = scored{
			pos:      i,
			distance: 1 - dot(snap.records[i].vector, query),
		}
	}

	sort.SliceStable(distances, func(i, j int) bool {
		return distances[i].distance < distances[j].distance
	})

	if k > len(distances) {
		k = len(distances)
	}
	results := make([]driven.ScoredChunk, k)
	for i := 0; i < k; i++ {
		results[i] = driven.ScoredChunk{
			Chunk:    snap.records[distances[i].pos].chunk,
			Distance: distances[i].distance,
		}
	}

	return results, nil
}

// Close marks the index unavailable. Any snapshot already handed to an
// in-flight search remains valid.
func (idx *Index) Close() error {
	idx.closed.Store(true)
	return nil
}

// embedChunks produces normalized records for a chunk batch, preserving
// batch order. Batches embed concurrently up to EmbedConcurrency; the
// adapters' rate limiters keep the aggregate request rate bounded.
// Failures wrap domain.ErrEmbeddingFailed.
func (idx *Index) embedChunks(ctx context.Context, chunks []domain.Chunk) ([]record, error) {
	records := make([]record, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(EmbedConcurrency)

	for start := 0; start < len(chunks); start += EmbedBatchSize {
		end := start + EmbedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		start, batch := start, chunks[start:end]

		g.Go(func() error {
			texts := make([]string, len(batch))
			for i, chunk := range batch {
				texts[i] = chunk.Content
			}

			vectors, err := idx.embedder.EmbedBatch(ctx, texts)
			if err != nil {
				return fmt.Errorf("%w: batch at chunk %d: %v", domain.ErrEmbeddingFailed, start, err)
			}
			if len(vectors) != len(batch) {
				return fmt.Errorf("%w: got %d vectors for %d texts", domain.ErrEmbeddingFailed, len(vectors), len(batch))
			}

			for i, vec := range vectors {
				normalize(vec)
				records[start+i] = record{chunk: batch[i], vector: vec}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// normalize scales v to unit length in place. Zero vectors are left as
// is; their distance to everything is 1.
func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
}

// dot computes the inner product of two vectors. Mismatched lengths
// compare over the shorter prefix.
func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
