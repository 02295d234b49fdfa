package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/storage/memory"
	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

func storeWithDocument(t *testing.T, id string) *memory.DocumentStore {
	t.Helper()
	store := memory.NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.InsertDocument(ctx, &domain.Document{
		ID:          id,
		Filename:    id + ".txt",
		ContentType: "text/plain",
		Status:      domain.StatusUploading,
		UploadedAt:  time.Now().UTC(),
		FileSize:    128,
		Metadata: domain.DocumentMetadata{
			Title:  "Quarterly Report",
			Author: "Jordan",
			Tags:   []string{"finance", "q3"},
		},
	}))
	require.NoError(t, store.InsertChunks(ctx, []domain.Chunk{
		{ID: domain.ChunkID(id, 0), DocumentID: id, Content: "numbers", Position: 0},
	}))
	return store
}

func TestDocumentService_List(t *testing.T) {
	store := storeWithDocument(t, "doc1")
	svc := NewDocumentService(store, nil)

	docs, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "doc1", docs[0].ID)
}

func TestDocumentService_Get(t *testing.T) {
	store := storeWithDocument(t, "doc1")
	svc := NewDocumentService(store, nil)

	doc, err := svc.Get(context.Background(), "doc1")
	require.NoError(t, err)
	assert.Equal(t, "doc1.txt", doc.Filename)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_GetDetails(t *testing.T) {
	store := storeWithDocument(t, "doc1")
	svc := NewDocumentService(store, nil)

	details, err := svc.GetDetails(context.Background(), "doc1")
	require.NoError(t, err)
	assert.Equal(t, "doc1", details.ID)
	assert.Equal(t, "Quarterly Report", details.Metadata["title"])
	assert.Equal(t, "Jordan", details.Metadata["author"])
	assert.Equal(t, "finance, q3", details.Metadata["tags"])
	assert.Equal(t, "128", details.Metadata["file_size"])
	assert.NotContains(t, details.Metadata, "category")
}

func TestDocumentService_Delete(t *testing.T) {
	store := storeWithDocument(t, "doc1")
	index := &mockIndex{}
	svc := NewDocumentService(store, index)

	deleted, err := svc.Delete(context.Background(), "doc1")
	require.NoError(t, err)
	assert.True(t, deleted)

	// The document and chunks are gone and the index was rebuilt
	_, err = store.GetDocument(context.Background(), "doc1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, index.rebuildCount())
	assert.Empty(t, index.addedChunks())
}

func TestDocumentService_DeleteRebuildFailure(t *testing.T) {
	store := storeWithDocument(t, "doc1")
	index := &mockIndex{rebuildErr: errors.New("index locked")}
	svc := NewDocumentService(store, index)

	deleted, err := svc.Delete(context.Background(), "doc1")
	assert.True(t, deleted)
	require.Error(t, err)

	// The store mutation sticks even though the rebuild failed.
	_, err = store.GetDocument(context.Background(), "doc1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_DeleteMissing(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore(), &mockIndex{})

	deleted, err := svc.Delete(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, deleted)
}
