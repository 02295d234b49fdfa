package mcp

import (
	"context"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driving"
)

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	query   *domain.Query
	history []domain.Query
	err     error

	lastRequest domain.AnswerRequest
}

func (m *mockAnswerService) Answer(_ context.Context, req domain.AnswerRequest) (*domain.Query, error) {
	m.lastRequest = req
	return m.query, m.err
}

func (m *mockAnswerService) History(_ context.Context, _, _ int) ([]domain.Query, error) {
	return m.history, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	details   *driving.DocumentDetails
	deleted   bool
	err       error
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) GetDetails(_ context.Context, _ string) (*driving.DocumentDetails, error) {
	return m.details, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) (bool, error) {
	return m.deleted, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	document *domain.Document
	err      error

	lastFilename    string
	lastContentType string
	waited          []string
}

func (m *mockIngestService) Ingest(
	_ context.Context, _ []byte, filename, contentType string, _ domain.DocumentMetadata,
) (*domain.Document, error) {
	m.lastFilename = filename
	m.lastContentType = contentType
	return m.document, m.err
}

func (m *mockIngestService) Wait(documentID string) {
	m.waited = append(m.waited, documentID)
}

func (m *mockIngestService) Rebuild(_ context.Context) error {
	return m.err
}
