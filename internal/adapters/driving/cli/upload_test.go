package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

func TestContentTypeForFile(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"notes.txt", "text/plain"},
		{"README.md", "text/markdown"},
		{"guide.MARKDOWN", "text/markdown"},
		{"data.csv", "text/csv"},
		{"report.pdf", "application/pdf"},
		{"no-extension", "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, contentTypeForFile(tt.filename))
		})
	}
}

func TestWatchable(t *testing.T) {
	assert.True(t, watchable("/docs/report.pdf"))
	assert.True(t, watchable("notes.TXT"))
	assert.False(t, watchable("/docs/.hidden.txt"))
	assert.False(t, watchable("notes.txt~"))
	assert.False(t, watchable("image.png"))
}

func TestUploadCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := execute(t, "upload")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestUploadCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "upload", filepath.Join(t.TempDir(), "ghost.txt"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestUploadCmd_Success(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("some text"), 0o600))

	out, err := execute(t, "upload", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Document ID: doc-1")
	assert.Contains(t, out, "Status: processed")
}

func TestUploadCmd_RejectedUpload(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	ingestService = &mockIngestService{err: domain.ErrUnsupportedType}

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("some text"), 0o600))

	_, err := execute(t, "upload", path)

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}
