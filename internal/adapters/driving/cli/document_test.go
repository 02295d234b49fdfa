package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

// Document Command Tests

func TestDocumentCmd_Use(t *testing.T) {
	assert.Equal(t, "document", documentCmd.Use)
}

func TestDocumentCmd_HasSubcommands(t *testing.T) {
	commands := documentCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "details")
	assert.Contains(t, commandNames, "delete")
}

func TestDocumentGetCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := execute(t, "document", "get")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestDocumentListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = &mockDocumentService{}

	out, err := execute(t, "document", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents uploaded.")
}

func TestDocumentListCmd_PrintsDocuments(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = &mockDocumentService{
		documents: []domain.Document{
			{ID: "doc-1", Filename: "report.pdf", Status: domain.StatusProcessed},
			{ID: "doc-2", Filename: "notes.txt", Status: domain.StatusFailed},
		},
	}

	out, err := execute(t, "document", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "doc-1")
	assert.Contains(t, out, "report.pdf")
	assert.Contains(t, out, "doc-2")
	assert.Contains(t, out, "Total: 2 documents")
}

func TestDocumentGetCmd_PrintsDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "document", "get", "doc-1")

	require.NoError(t, err)
	assert.Contains(t, out, "doc-1")
	assert.Contains(t, out, "notes.txt")
	assert.Contains(t, out, "processed")
}

func TestDocumentDeleteCmd_Deleted(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = &mockDocumentService{deleted: true}

	out, err := execute(t, "document", "delete", "doc-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted document: doc-1")
}

func TestDocumentDeleteCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = &mockDocumentService{deleted: false}

	out, err := execute(t, "document", "delete", "ghost")

	require.NoError(t, err)
	assert.Contains(t, out, "Document not found: ghost")
}

func TestDocumentCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	documentService = nil

	_, err := execute(t, "document", "list")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
