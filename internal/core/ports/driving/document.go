package driving

import (
	"context"
	"time"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

// DocumentService manages stored documents.
type DocumentService interface {
	// List returns all documents, most recent upload first.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// GetDetails returns display-ready metadata for a document.
	GetDetails(ctx context.Context, documentID string) (*DocumentDetails, error)

	// Delete removes a document and its chunks, then rebuilds the
	// similarity index so deleted chunks stop appearing in searches.
	Delete(ctx context.Context, documentID string) (bool, error)
}

// DocumentDetails provides a standardised view of document metadata.
type DocumentDetails struct {
	// ID is the unique document identifier.
	ID string

	// Filename is the original upload filename.
	Filename string

	// ContentType is the MIME type supplied at upload.
	ContentType string

	// Status is the processing status.
	Status domain.DocumentStatus

	// UploadedAt is when the upload was received.
	UploadedAt time.Time

	// ChunkCount is the number of stored chunks.
	ChunkCount int

	// FileSize is the upload size in bytes.
	FileSize int64

	// ProcessingTime is the ingestion duration in seconds.
	ProcessingTime float64

	// Error holds the failure cause for failed documents.
	Error string

	// Metadata contains flattened key-value pairs for display.
	Metadata map[string]string
}
