package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	commands := settingsCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "embedding")
	assert.Contains(t, commandNames, "llm")
	assert.Contains(t, commandNames, "chunking")
}

func TestSettingsShowCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Embedding]")
	assert.Contains(t, out, "ollama")
	assert.Contains(t, out, "nomic-embed-text")
	assert.Contains(t, out, "[Chunking]")
	assert.Contains(t, out, "1000")
}

func TestSettingsShowCmd_MasksAPIKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	settingsService = &mockSettingsService{
		settings: &domain.AppSettings{
			Embedding: domain.EmbeddingSettings{
				Provider: domain.ProviderOpenAI,
				Model:    "text-embedding-3-small",
				APIKey:   "sk-secret-key-1234",
			},
			LLM:      domain.LLMSettings{Provider: domain.ProviderOllama, Model: "llama3.1"},
			Chunking: domain.ChunkingSettings{Size: 1000, Overlap: 200},
		},
	}

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.NotContains(t, out, "sk-secret-key-1234")
	assert.Contains(t, out, "****1234")
}

func TestSettingsEmbeddingCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "embedding", "ollama")

	require.NoError(t, err)
	assert.Contains(t, out, "Embedding provider set to ollama")
	assert.Contains(t, out, "askdoc rebuild")
}

func TestSettingsEmbeddingCmd_InvalidProvider(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	settingsService = &mockSettingsService{err: domain.ErrInvalidInput}

	_, err := execute(t, "settings", "embedding", "skynet")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsChunkingCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "chunking", "--size", "800", "--overlap", "100")

	require.NoError(t, err)
	assert.Contains(t, out, "Chunking set to size 800, overlap 100")
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "(not set)", maskKey(""))
	assert.Equal(t, "****", maskKey("abcd"))
	assert.Equal(t, "****6789", maskKey("sk-123456789"))
}
