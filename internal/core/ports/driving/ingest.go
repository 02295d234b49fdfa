package driving

import (
	"context"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

// IngestService coordinates document ingestion.
type IngestService interface {
	// Ingest validates the upload, creates the document record and
	// returns it immediately with status processing. Extraction,
	// chunking, storage and indexing run on a background task.
	// Unsupported content types fail with domain.ErrUnsupportedType
	// before any store mutation.
	Ingest(ctx context.Context, content []byte, filename, contentType string, meta domain.DocumentMetadata) (*domain.Document, error)

	// Wait blocks until the background processing for the document has
	// finished (successfully or not). It returns immediately for
	// documents with no pending task.
	Wait(documentID string)

	// Rebuild triggers a full similarity index rebuild from the store.
	Rebuild(ctx context.Context) error
}
