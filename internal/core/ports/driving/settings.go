package driving

import "github.com/askdoc-labs/askdoc-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with defaults applied.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetEmbeddingProvider configures the embedding provider.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// SetLLMProvider configures the generation provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetChunking configures chunk size and overlap.
	SetChunking(size, overlap int) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
