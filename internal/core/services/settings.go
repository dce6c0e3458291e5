package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
	"github.com/custodia-labs/textprep/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyConvertWords      = "normalise.convert_words"
	keyRemoveEmojis      = "normalise.remove_emojis"
	keyPlaceholders      = "normalise.replace_with_placeholders"
	keyChunkSize         = "chunker.chunk_size"
	keyChunkOverlap      = "chunker.overlap"
	keyEncoding          = "tokenizer.encoding"
	keyAnnotatorBackend  = "annotator.backend"
	keyAnnotatorLanguage = "annotator.language"
	keyAnnotatorCreds    = "annotator.credentials_file"
	keySentimentBackend  = "sentiment.backend"
	keyEmbedProvider     = "embedding.provider"
	keyEmbedModel        = "embedding.model"
	keyEmbedBaseURL      = "embedding.base_url"
	keyEmbedAPIKey       = "embedding.api_key"
	keyEmbedBatchSize    = "embedding.batch_size"
	keyEmbedRPS          = "embedding.requests_per_second"
	keyEmbedBurst        = "embedding.burst"
	keyMaxNoiseWords     = "metadata.max_noise_words"
	keySeedFromProfile   = "metadata.seed_from_profile"
	keyExtraStopwords    = "metadata.extra_stopwords"
	keyStorageBackend    = "storage.backend"
	keyProfileBackend    = "storage.profile_backend"
	keyDataDir           = "storage.data_dir"
	keyRetryAttempts     = "retry.max_attempts"
	keyRetryBaseDelay    = "retry.base_delay_ms"
	keyServerAddr        = "server.addr"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
// aiValidator may be nil, in which case connectivity is not checked.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	provider := s.getProvider(keyEmbedProvider, defaults.Embedding.Provider)
	settings := &domain.AppSettings{
		Normalise: domain.NormaliseOptions{
			ConvertWords:            s.getBool(keyConvertWords, defaults.Normalise.ConvertWords),
			RemoveEmojis:            s.getBool(keyRemoveEmojis, defaults.Normalise.RemoveEmojis),
			ReplaceWithPlaceholders: s.getBool(keyPlaceholders, defaults.Normalise.ReplaceWithPlaceholders),
		},
		Chunker: domain.ChunkerSettings{
			ChunkSize: s.getInt(keyChunkSize, defaults.Chunker.ChunkSize),
			Overlap:   s.getInt(keyChunkOverlap, defaults.Chunker.Overlap),
			Encoding:  s.getString(keyEncoding, defaults.Chunker.Encoding),
		},
		Annotator: domain.AnnotatorSettings{
			Backend:         domain.AnnotatorBackend(s.getString(keyAnnotatorBackend, defaults.Annotator.Backend.String())),
			Language:        s.getString(keyAnnotatorLanguage, defaults.Annotator.Language),
			CredentialsFile: s.configStore.GetString(keyAnnotatorCreds),
		},
		Sentiment: domain.SentimentSettings{
			Backend: domain.SentimentBackend(s.getString(keySentimentBackend, defaults.Sentiment.Backend.String())),
		},
		Embedding: domain.EmbeddingSettings{
			Provider:          provider,
			Model:             s.getString(keyEmbedModel, domain.DefaultEmbeddingModels()[provider]),
			BaseURL:           s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:            s.configStore.GetString(keyEmbedAPIKey),
			BatchSize:         s.getInt(keyEmbedBatchSize, defaults.Embedding.BatchSize),
			RequestsPerSecond: s.getFloat(keyEmbedRPS, defaults.Embedding.RequestsPerSecond),
			Burst:             s.getInt(keyEmbedBurst, defaults.Embedding.Burst),
		},
		Metadata: domain.MetadataSettings{
			MaxNoiseWords:   s.getInt(keyMaxNoiseWords, defaults.Metadata.MaxNoiseWords),
			SeedFromProfile: s.getBool(keySeedFromProfile, defaults.Metadata.SeedFromProfile),
			ExtraStopwords:  s.configStore.GetStringSlice(keyExtraStopwords),
		},
		Storage: domain.StorageSettings{
			Backend:        s.getStorage(keyStorageBackend, defaults.Storage.Backend),
			ProfileBackend: s.getStorage(keyProfileBackend, defaults.Storage.ProfileBackend),
			DataDir:        s.configStore.GetString(keyDataDir),
		},
		Retry: domain.RetrySettings{
			MaxAttempts: s.getInt(keyRetryAttempts, defaults.Retry.MaxAttempts),
			BaseDelay: time.Duration(s.getInt(keyRetryBaseDelay,
				int(defaults.Retry.BaseDelay/time.Millisecond))) * time.Millisecond,
		},
		Server: domain.ServerSettings{
			Addr: s.getString(keyServerAddr, defaults.Server.Addr),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyConvertWords, settings.Normalise.ConvertWords},
		{keyRemoveEmojis, settings.Normalise.RemoveEmojis},
		{keyPlaceholders, settings.Normalise.ReplaceWithPlaceholders},
		{keyChunkSize, settings.Chunker.ChunkSize},
		{keyChunkOverlap, settings.Chunker.Overlap},
		{keyEncoding, settings.Chunker.Encoding},
		{keyAnnotatorBackend, settings.Annotator.Backend.String()},
		{keyAnnotatorLanguage, settings.Annotator.Language},
		{keyAnnotatorCreds, settings.Annotator.CredentialsFile},
		{keySentimentBackend, settings.Sentiment.Backend.String()},
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyEmbedBatchSize, settings.Embedding.BatchSize},
		{keyEmbedRPS, settings.Embedding.RequestsPerSecond},
		{keyEmbedBurst, settings.Embedding.Burst},
		{keyMaxNoiseWords, settings.Metadata.MaxNoiseWords},
		{keySeedFromProfile, settings.Metadata.SeedFromProfile},
		{keyExtraStopwords, settings.Metadata.ExtraStopwords},
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyProfileBackend, settings.Storage.ProfileBackend.String()},
		{keyDataDir, settings.Storage.DataDir},
		{keyRetryAttempts, settings.Retry.MaxAttempts},
		{keyRetryBaseDelay, int(settings.Retry.BaseDelay / time.Millisecond)},
		{keyServerAddr, settings.Server.Addr},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// The API key is only written when set so an env override is not
	// copied into the file as an empty string.
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}

	return nil
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid embedding provider: %s", domain.ErrInvalidInput, provider)
	}

	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.Embedding.Model = model
	} else {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[provider]
	}

	// Local providers need a base URL; cloud providers use their default.
	if provider == domain.AIProviderOllama {
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.Embedding.BaseURL = ""
	}

	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// SetChunkWindow configures the chunker window. A window that would not
// advance is rejected with domain.ErrInvalidWindow.
func (s *SettingsService) SetChunkWindow(chunkSize, overlap int) error {
	window := domain.ChunkerSettings{ChunkSize: chunkSize, Overlap: overlap}
	if !window.IsValid() {
		return fmt.Errorf("%w: chunk_size=%d overlap=%d", domain.ErrInvalidWindow, chunkSize, overlap)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Chunker.ChunkSize = chunkSize
	settings.Chunker.Overlap = overlap
	return s.Save(settings)
}

// Validate checks if current settings can build a pipeline.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Chunker.IsValid() {
		return fmt.Errorf("%w: chunk_size=%d overlap=%d",
			domain.ErrInvalidWindow, settings.Chunker.ChunkSize, settings.Chunker.Overlap)
	}
	if !settings.Annotator.Backend.IsValid() {
		return fmt.Errorf("%w: annotator backend %q", domain.ErrUnsupportedType, settings.Annotator.Backend)
	}
	if !settings.Sentiment.Backend.IsValid() {
		return fmt.Errorf("%w: sentiment backend %q", domain.ErrUnsupportedType, settings.Sentiment.Backend)
	}
	if settings.Storage.Backend == domain.StorageFile {
		return fmt.Errorf("%w: storage backend %q is only valid for profiles",
			domain.ErrUnsupportedType, settings.Storage.Backend)
	}
	if settings.Embedding.Provider.RequiresAPIKey() && settings.Embedding.APIKey == "" {
		return fmt.Errorf("%w: embedding provider %s requires an API key",
			domain.ErrInvalidInput, settings.Embedding.Provider)
	}
	if settings.Retry.MaxAttempts < 1 {
		return fmt.Errorf("%w: retry.max_attempts must be at least 1", domain.ErrInvalidInput)
	}

	if s.aiValidator == nil {
		return nil
	}
	if err := s.aiValidator.ValidateTokenizer(settings.Chunker.Encoding); err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getStorage(key string, defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
