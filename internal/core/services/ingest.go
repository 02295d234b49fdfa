package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/askdoc-labs/askdoc-cli/internal/chunker"
	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/askdoc-labs/askdoc-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService coordinates document ingestion: validation, extraction,
// chunking, storage and indexing.
type IngestService struct {
	docStore   driven.DocumentStore
	extractors driven.ExtractorRegistry
	splitter   *chunker.Chunker
	index      driven.SimilarityIndex

	mu    sync.Mutex
	tasks map[string]chan struct{}
}

// NewIngestService creates a new ingestion service. The index parameter
// is optional (can be nil); without it documents are stored but not
// searchable until a rebuild against a populated index.
func NewIngestService(
	docStore driven.DocumentStore,
	extractors driven.ExtractorRegistry,
	splitter *chunker.Chunker,
	index driven.SimilarityIndex,
) *IngestService {
	return &IngestService{
		docStore:   docStore,
		extractors: extractors,
		splitter:   splitter,
		index:      index,
		tasks:      make(map[string]chan struct{}),
	}
}

// Ingest validates the upload, creates the document record and returns
// it with status processing. The rest of the pipeline runs on a
// background task; use Wait to await completion.
func (s *IngestService) Ingest(
	ctx context.Context, content []byte, filename, contentType string, meta domain.DocumentMetadata,
) (*domain.Document, error) {
	logger.Section("Document Ingestion")
	logger.Debug("File: %q, type: %s, size: %d bytes", filename, contentType, len(content))

	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: content is empty", domain.ErrInvalidInput)
	}

	// Reject unsupported types before any store mutation.
	if !s.extractors.Supports(contentType) {
		logger.Warn("Unsupported content type: %s", contentType)
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, contentType)
	}

	start := time.Now()
	doc := &domain.Document{
		ID:          uuid.New().String(),
		Filename:    filename,
		ContentType: contentType,
		Status:      domain.StatusUploading,
		UploadedAt:  start.UTC(),
		FileSize:    int64(len(content)),
		Metadata:    meta,
	}

	if err := s.docStore.InsertDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	if err := s.docStore.UpdateDocumentStatus(ctx, doc.ID, domain.StatusProcessing, "", 0); err != nil {
		return nil, fmt.Errorf("mark processing: %w", err)
	}
	doc.Status = domain.StatusProcessing

	logger.Info("Document %s accepted, processing in background", doc.ID)

	done := make(chan struct{})
	s.mu.Lock()
	s.tasks[doc.ID] = done
	s.mu.Unlock()

	// The pipeline outlives the caller's context; a cancelled upload
	// command must not abandon a half-processed document.
	go s.process(context.Background(), doc.ID, content, filename, contentType, meta, start, done)

	out := *doc
	return &out, nil
}

// Wait blocks until the background processing for the document has
// finished. Unknown document IDs return immediately.
func (s *IngestService) Wait(documentID string) {
	s.mu.Lock()
	done, ok := s.tasks[documentID]
	s.mu.Unlock()
	if ok {
		<-done
	}
}

// Rebuild recomputes the similarity index from the document store.
func (s *IngestService) Rebuild(ctx context.Context) error {
	if s.index == nil {
		return domain.ErrIndexUnavailable
	}
	logger.Section("Index Rebuild")
	if err := s.index.Rebuild(ctx, s.docStore); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}
	logger.Info("Index rebuilt: %d chunks", s.index.Len())
	return nil
}

// process runs the extraction pipeline for one document.
func (s *IngestService) process(
	ctx context.Context, docID string, content []byte, filename, contentType string,
	meta domain.DocumentMetadata, start time.Time, done chan struct{},
) {
	defer func() {
		close(done)
		s.mu.Lock()
		delete(s.tasks, docID)
		s.mu.Unlock()
	}()

	text, err := s.extractors.Extract(ctx, content, contentType)
	if err != nil {
		s.fail(ctx, docID, fmt.Errorf("extract text: %w", err), start)
		return
	}
	logger.Debug("Extracted %d characters from %q", len(text), filename)

	chunks := s.splitter.Split(docID, filename, text, meta)
	logger.Debug("Split into %d chunks", len(chunks))

	if err := s.docStore.InsertChunks(ctx, chunks); err != nil {
		s.fail(ctx, docID, fmt.Errorf("store chunks: %w", err), start)
		return
	}

	elapsed := time.Since(start).Seconds()
	if err := s.docStore.UpdateDocumentStatus(ctx, docID, domain.StatusProcessed, "", elapsed); err != nil {
		logger.Warn("Failed to mark document %s processed: %v", docID, err)
		return
	}
	logger.Info("Document %s processed: %d chunks in %.2fs", docID, len(chunks), elapsed)

	// Index add is best-effort once the document is durable; the index
	// self-heals on the next rebuild.
	if s.index != nil && len(chunks) > 0 {
		if err := s.index.Add(ctx, chunks); err != nil {
			logger.Warn("Index add failed for document %s: %v (rebuild will recover)", docID, err)
		}
	}
}

// fail marks the document failed, recording the cause and elapsed time.
func (s *IngestService) fail(ctx context.Context, docID string, cause error, start time.Time) {
	logger.Warn("Ingestion failed for document %s: %v", docID, cause)
	elapsed := time.Since(start).Seconds()
	if err := s.docStore.UpdateDocumentStatus(ctx, docID, domain.StatusFailed, cause.Error(), elapsed); err != nil {
		logger.Warn("Failed to mark document %s failed: %v", docID, err)
	}
}
