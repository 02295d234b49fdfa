package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

func newDoc(id string, uploaded time.Time) *domain.Document {
	return &domain.Document{
		ID:          id,
		Filename:    id + ".txt",
		ContentType: "text/plain",
		Status:      domain.StatusUploading,
		UploadedAt:  uploaded,
	}
}

func TestDocumentStore_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	doc := newDoc("doc1", time.Now())
	require.NoError(t, store.InsertDocument(ctx, doc))

	got, err := store.GetDocument(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, "doc1.txt", got.Filename)
	assert.Equal(t, domain.StatusUploading, got.Status)
}

func TestDocumentStore_GetMissing(t *testing.T) {
	store := NewDocumentStore()
	_, err := store.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_StatusTransitions(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()
	require.NoError(t, store.InsertDocument(ctx, newDoc("doc1", time.Now())))

	require.NoError(t, store.UpdateDocumentStatus(ctx, "doc1", domain.StatusProcessing, "", 0))
	require.NoError(t, store.UpdateDocumentStatus(ctx, "doc1", domain.StatusProcessed, "", 1.5))

	doc, err := store.GetDocument(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessed, doc.Status)
	assert.Equal(t, 1.5, doc.ProcessingTime)

	// terminal state rejects further transitions
	err = store.UpdateDocumentStatus(ctx, "doc1", domain.StatusFailed, "boom", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

func TestDocumentStore_IllegalTransition(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()
	require.NoError(t, store.InsertDocument(ctx, newDoc("doc1", time.Now())))

	err := store.UpdateDocumentStatus(ctx, "doc1", domain.StatusProcessed, "", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

func TestDocumentStore_Chunks(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()
	require.NoError(t, store.InsertDocument(ctx, newDoc("doc1", time.Now())))

	chunks := []domain.Chunk{
		{ID: domain.ChunkID("doc1", 0), DocumentID: "doc1", Content: "first", Position: 0},
		{ID: domain.ChunkID("doc1", 1), DocumentID: "doc1", Content: "second", Position: 1},
	}
	require.NoError(t, store.InsertChunks(ctx, chunks))

	got, err := store.GetChunks(ctx, "doc1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "second", got[1].Content)
}

func TestDocumentStore_ListOrder(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()
	base := time.Now()
	require.NoError(t, store.InsertDocument(ctx, newDoc("old", base.Add(-time.Hour))))
	require.NoError(t, store.InsertDocument(ctx, newDoc("new", base)))

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "new", docs[0].ID)
	assert.Equal(t, "old", docs[1].ID)
}

func TestDocumentStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()
	require.NoError(t, store.InsertDocument(ctx, newDoc("doc1", time.Now())))
	require.NoError(t, store.InsertChunks(ctx, []domain.Chunk{
		{ID: domain.ChunkID("doc1", 0), DocumentID: "doc1", Content: "text", Position: 0},
	}))

	require.NoError(t, store.DeleteDocument(ctx, "doc1"))

	_, err := store.GetDocument(ctx, "doc1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := store.AllChunks(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.ErrorIs(t, store.DeleteDocument(ctx, "doc1"), domain.ErrNotFound)
}

func TestQueryStore_ListPagination(t *testing.T) {
	ctx := context.Background()
	store := NewQueryStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.InsertQuery(ctx, &domain.Query{
			ID:       domain.ChunkID("q", i),
			Question: "question",
		}))
	}

	page, err := store.ListQueries(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "q_chunk_4", page[0].ID)
	assert.Equal(t, "q_chunk_3", page[1].ID)

	page, err = store.ListQueries(ctx, 2, 4)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "q_chunk_0", page[0].ID)

	page, err = store.ListQueries(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}
