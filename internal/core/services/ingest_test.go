package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/storage/memory"
	"github.com/askdoc-labs/askdoc-cli/internal/chunker"
	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockExtractors implements driven.ExtractorRegistry for testing.
type mockExtractors struct {
	text       string
	extractErr error
	supported  map[string]bool
}

func newMockExtractors(text string) *mockExtractors {
	return &mockExtractors{
		text:      text,
		supported: map[string]bool{"text/plain": true},
	}
}

func (m *mockExtractors) Supports(contentType string) bool {
	return m.supported[contentType]
}

func (m *mockExtractors) Extract(_ context.Context, content []byte, contentType string) (string, error) {
	if !m.supported[contentType] {
		return "", domain.ErrUnsupportedType
	}
	if m.extractErr != nil {
		return "", m.extractErr
	}
	if m.text != "" {
		return m.text, nil
	}
	return string(content), nil
}

// mockIndex implements driven.SimilarityIndex for testing.
type mockIndex struct {
	mu         sync.Mutex
	added      []domain.Chunk
	results    []driven.ScoredChunk
	addErr     error
	rebuildErr error
	searchErr  error
	rebuilds   int
	searchCtx  context.Context
}

func (m *mockIndex) Add(_ context.Context, chunks []domain.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.addErr != nil {
		return m.addErr
	}
	m.added = append(m.added, chunks...)
	return nil
}

func (m *mockIndex) Rebuild(ctx context.Context, source driven.ChunkSource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rebuildErr != nil {
		return m.rebuildErr
	}
	m.rebuilds++
	chunks, err := source.AllChunks(ctx)
	if err != nil {
		return err
	}
	m.added = chunks
	return nil
}

func (m *mockIndex) Search(ctx context.Context, _ string, k int) ([]driven.ScoredChunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCtx = ctx
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.results) {
		return m.results, nil
	}
	return m.results[:k], nil
}

func (m *mockIndex) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.added)
}

func (m *mockIndex) Save(_ string) error { return nil }

func (m *mockIndex) Close() error { return nil }

func (m *mockIndex) addedChunks() []domain.Chunk {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Chunk, len(m.added))
	copy(out, m.added)
	return out
}

func (m *mockIndex) rebuildCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rebuilds
}

// --- Tests ---

func TestIngest_UnsupportedType(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	svc := NewIngestService(store, newMockExtractors(""), chunker.New(), &mockIndex{})

	_, err := svc.Ingest(ctx, []byte("data"), "report.docx", "application/msword", domain.DocumentMetadata{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	// No store mutation before the type check
	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestIngest_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := NewIngestService(memory.NewDocumentStore(), newMockExtractors(""), chunker.New(), nil)

	_, err := svc.Ingest(ctx, []byte("data"), "  ", "text/plain", domain.DocumentMetadata{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Ingest(ctx, nil, "notes.txt", "text/plain", domain.DocumentMetadata{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngest_Success(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	index := &mockIndex{}
	svc := NewIngestService(store, newMockExtractors(""), chunker.New(), index)

	content := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog ", 60))
	meta := domain.DocumentMetadata{Title: "Fox Facts", Tags: []string{"animals"}}

	doc, err := svc.Ingest(ctx, content, "fox.txt", "text/plain", meta)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, doc.Status)
	assert.Equal(t, int64(len(content)), doc.FileSize)

	svc.Wait(doc.ID)

	stored, err := store.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessed, stored.Status)
	assert.Empty(t, stored.Error)
	assert.Greater(t, stored.ProcessingTime, 0.0)

	chunks, err := store.GetChunks(ctx, doc.ID)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	assert.Equal(t, domain.ChunkID(doc.ID, 0), chunks[0].ID)
	assert.Equal(t, "fox.txt", chunks[0].Metadata["filename"])

	// Chunks were handed to the index
	assert.Len(t, index.addedChunks(), len(chunks))
}

func TestIngest_ExtractionFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	ext := newMockExtractors("")
	ext.extractErr = errors.New("corrupt file")
	svc := NewIngestService(store, ext, chunker.New(), &mockIndex{})

	doc, err := svc.Ingest(ctx, []byte("data"), "bad.txt", "text/plain", domain.DocumentMetadata{})
	require.NoError(t, err)

	svc.Wait(doc.ID)

	stored, err := store.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, stored.Status)
	assert.Contains(t, stored.Error, "corrupt file")
	assert.Greater(t, stored.ProcessingTime, 0.0)

	chunks, err := store.GetChunks(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestIngest_IndexAddFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	index := &mockIndex{addErr: errors.New("embedder down")}
	svc := NewIngestService(store, newMockExtractors(""), chunker.New(), index)

	doc, err := svc.Ingest(ctx, []byte("some document text"), "doc.txt", "text/plain", domain.DocumentMetadata{})
	require.NoError(t, err)

	svc.Wait(doc.ID)

	// The document is durable and processed even though the index
	// could not absorb the chunks.
	stored, err := store.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessed, stored.Status)
}

func TestIngest_WaitUnknownDocument(t *testing.T) {
	svc := NewIngestService(memory.NewDocumentStore(), newMockExtractors(""), chunker.New(), nil)
	// Must not block
	svc.Wait("no-such-doc")
}

func TestRebuild(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	index := &mockIndex{}
	svc := NewIngestService(store, newMockExtractors(""), chunker.New(), index)

	doc, err := svc.Ingest(ctx, []byte("rebuild source text"), "doc.txt", "text/plain", domain.DocumentMetadata{})
	require.NoError(t, err)
	svc.Wait(doc.ID)

	require.NoError(t, svc.Rebuild(ctx))
	assert.Equal(t, 1, index.rebuildCount())
}

func TestRebuild_NoIndex(t *testing.T) {
	svc := NewIngestService(memory.NewDocumentStore(), newMockExtractors(""), chunker.New(), nil)
	err := svc.Rebuild(context.Background())
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}
