package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-labs/askdoc-cli/internal/adapters/driven/storage/memory"
	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

func TestSettingsService_GetDefaults(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, "nomic-embed-text", settings.Embedding.Model)
	assert.Equal(t, domain.ProviderOllama, settings.LLM.Provider)
	assert.Equal(t, "llama3.1", settings.LLM.Model)
	assert.Equal(t, 1000, settings.Chunking.Size)
	assert.Equal(t, 200, settings.Chunking.Overlap)
}

func TestSettingsService_GetStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	require.NoError(t, store.Set("embedding.provider", "openai"))
	require.NoError(t, store.Set("embedding.model", "text-embedding-3-small"))
	require.NoError(t, store.Set("llm.provider", "anthropic"))
	require.NoError(t, store.Set("chunking.size", 500))
	require.NoError(t, store.Set("chunking.overlap", 0))

	svc := NewSettingsService(store)
	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", settings.Embedding.Model)
	assert.Equal(t, domain.ProviderAnthropic, settings.LLM.Provider)
	assert.Equal(t, 500, settings.Chunking.Size)
	// Explicit zero overlap is respected, not replaced with the default.
	assert.Equal(t, 0, settings.Chunking.Overlap)
}

func TestSettingsService_InvalidStoredProviderFallsBack(t *testing.T) {
	store := memory.NewConfigStore()
	require.NoError(t, store.Set("llm.provider", "skynet"))

	svc := NewSettingsService(store)
	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderOllama, settings.LLM.Provider)
}

func TestSettingsService_SetEmbeddingProvider(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)

	require.NoError(t, svc.SetEmbeddingProvider(domain.ProviderOpenAI, "", "sk-test"))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", settings.Embedding.Model)
	assert.Equal(t, "sk-test", settings.Embedding.APIKey)
	assert.Empty(t, settings.Embedding.BaseURL)
}

func TestSettingsService_SetEmbeddingProviderOllamaBaseURL(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, svc.SetEmbeddingProvider(domain.ProviderOllama, "mxbai-embed-large", ""))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "mxbai-embed-large", settings.Embedding.Model)
	assert.Equal(t, "http://localhost:11434", settings.Embedding.BaseURL)
}

func TestSettingsService_SetEmbeddingProviderValidation(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	err := svc.SetEmbeddingProvider(domain.AIProvider("skynet"), "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Anthropic has no embeddings API.
	err = svc.SetEmbeddingProvider(domain.ProviderAnthropic, "", "sk-ant")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = svc.SetEmbeddingProvider(domain.ProviderOpenAI, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, svc.SetLLMProvider(domain.ProviderAnthropic, "", "sk-ant"))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderAnthropic, settings.LLM.Provider)
	assert.Equal(t, "claude-3-5-sonnet-latest", settings.LLM.Model)
	assert.Equal(t, "sk-ant", settings.LLM.APIKey)
	assert.Empty(t, settings.LLM.BaseURL)
}

func TestSettingsService_SetLLMProviderRequiresKey(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	err := svc.SetLLMProvider(domain.ProviderOpenAI, "gpt-4o", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SetChunking(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, svc.SetChunking(800, 0))
	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 800, settings.Chunking.Size)
	assert.Equal(t, 0, settings.Chunking.Overlap)

	assert.ErrorIs(t, svc.SetChunking(0, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.SetChunking(100, -1), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.SetChunking(100, 100), domain.ErrInvalidInput)
}
