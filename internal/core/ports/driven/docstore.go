package driven

import (
	"context"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

// DocumentStore persists documents and chunks.
// Backed by SQLite for durable storage.
type DocumentStore interface {
	// InsertDocument stores a new document record.
	InsertDocument(ctx context.Context, doc *domain.Document) error

	// InsertChunks stores a chunk batch atomically: either every chunk
	// in the batch is persisted or none are.
	InsertChunks(ctx context.Context, chunks []domain.Chunk) error

	// UpdateDocumentStatus transitions a document's status. The error
	// string and processing duration are recorded alongside. Illegal
	// transitions return domain.ErrInvalidStatusTransition.
	UpdateDocumentStatus(ctx context.Context, id string, status domain.DocumentStatus, errMsg string, seconds float64) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves all chunks for a document ordered by position.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// ListDocuments returns all documents, most recent upload first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// AllChunks enumerates every chunk in the store. This is the
	// rebuild source for the similarity index.
	AllChunks(ctx context.Context) ([]domain.Chunk, error)

	// DeleteDocument removes a document and all its chunks. Returns
	// domain.ErrNotFound if no such document exists.
	DeleteDocument(ctx context.Context, id string) error
}

// ChunkSource enumerates chunks for an index rebuild. DocumentStore
// satisfies it; tests may supply something smaller.
type ChunkSource interface {
	AllChunks(ctx context.Context) ([]domain.Chunk, error)
}
