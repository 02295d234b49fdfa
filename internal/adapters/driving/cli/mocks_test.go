package cli

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
}

func (m *mockAnswerService) Answer(_ context.Context, _ domain.AnswerRequest) (*domain.Query, error) {
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
}

func (m *mockIngestService) Ingest(
	_ context.Context, _ []byte, _, _ string, _ domain.DocumentMetadata,
) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockIngestService) Wait(_ string) {}

func (m *mockIngestService) Rebuild(_ context.Context) error {
	return m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.settings != nil {
		return m.settings, m.err
	}
	defaults := domain.DefaultAppSettings()
	return &defaults, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return m.err
}

func (m *mockSettingsService) SetEmbeddingProvider(_ domain.AIProvider, _, _ string) error {
	return m.err
}

func (m *mockSettingsService) SetLLMProvider(_ domain.AIProvider, _, _ string) error {
	return m.err
}

func (m *mockSettingsService) SetChunking(_, _ int) error {
	return m.err
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// setupTestServices injects mock services into the package state and
// returns a cleanup that restores the previous values.
func setupTestServices() func() {
	prevIngest := ingestService
	prevAnswer := answerService
	prevDocument := documentService
	prevSettings := settingsService

	ingestService = &mockIngestService{
		document: &domain.Document{ID: "doc-1", Filename: "notes.txt", Status: domain.StatusProcessing},
	}
	answerService = &mockAnswerService{
		query: &domain.Query{Answer: "An answer.", Confidence: 0.7, ModelUsed: "llama3.1"},
	}
	documentService = &mockDocumentService{
		document: &domain.Document{ID: "doc-1", Filename: "notes.txt", Status: domain.StatusProcessed},
	}
	settingsService = &mockSettingsService{}

	return func() {
		ingestService = prevIngest
		answerService = prevAnswer
		documentService = prevDocument
		settingsService = prevSettings
	}
}
