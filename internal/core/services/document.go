package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/askdoc-labs/askdoc-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages stored documents.
type DocumentService struct {
	docStore driven.DocumentStore
	index    driven.SimilarityIndex
}

// NewDocumentService creates a new document service. The index is
// optional (can be nil); without it deletions skip the rebuild.
func NewDocumentService(docStore driven.DocumentStore, index driven.SimilarityIndex) *DocumentService {
	return &DocumentService{
		docStore: docStore,
		index:    index,
	}
}

// List returns all documents, most recent upload first.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.docStore.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", documentID, err)
	}
	return doc, nil
}

// GetDetails returns display-ready metadata for a document.
func (s *DocumentService) GetDetails(ctx context.Context, documentID string) (*driving.DocumentDetails, error) {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	meta := map[string]string{}
	if doc.Metadata.Title != "" {
		meta["title"] = doc.Metadata.Title
	}
	if doc.Metadata.Author != "" {
		meta["author"] = doc.Metadata.Author
	}
	if doc.Metadata.Category != "" {
		meta["category"] = doc.Metadata.Category
	}
	if len(doc.Metadata.Tags) > 0 {
		meta["tags"] = strings.Join(doc.Metadata.Tags, ", ")
	}
	if doc.Metadata.Description != "" {
		meta["description"] = doc.Metadata.Description
	}
	meta["file_size"] = strconv.FormatInt(doc.FileSize, 10)

	return &driving.DocumentDetails{
		ID:             doc.ID,
		Filename:       doc.Filename,
		ContentType:    doc.ContentType,
		Status:         doc.Status,
		UploadedAt:     doc.UploadedAt,
		ChunkCount:     doc.ChunkCount,
		FileSize:       doc.FileSize,
		ProcessingTime: doc.ProcessingTime,
		Error:          doc.Error,
		Metadata:       meta,
	}, nil
}

// Delete removes a document and its chunks, then rebuilds the index so
// the deleted chunks stop appearing in searches. Returns false with no
// error when the document does not exist.
func (s *DocumentService) Delete(ctx context.Context, documentID string) (bool, error) {
	err := s.docStore.DeleteDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete document %s: %w", documentID, err)
	}

	logger.Info("Document %s deleted", documentID)

	if s.index != nil {
		if err := s.index.Rebuild(ctx, s.docStore); err != nil {
			// The document is gone from the store; the stale index
			// entries disappear on the next successful rebuild.
			logger.Warn("Index rebuild after delete failed: %v", err)
			return true, fmt.Errorf("rebuild index: %w", err)
		}
		logger.Debug("Index rebuilt after delete: %d chunks", s.index.Len())
	}

	return true, nil
}
