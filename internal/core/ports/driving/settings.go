package driving

import "github.com/custodia-labs/textprep/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetEmbeddingProvider configures the embedding provider.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// SetChunkWindow configures the chunker window.
	SetChunkWindow(chunkSize, overlap int) error

	// Validate checks if current settings can build a pipeline.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
