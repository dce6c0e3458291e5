package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an embedding service provider.
type AIProvider string

// Available embedding providers.
const (
	// AIProviderNone disables embedding enrichment.
	AIProviderNone AIProvider = "none"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderNone, AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderNone:
		return "None (no embeddings)"
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// AnnotatorBackend selects the linguistic annotator binding.
type AnnotatorBackend string

// Available annotator backends.
const (
	// AnnotatorProse runs the in-process prose model.
	AnnotatorProse AnnotatorBackend = "prose"

	// AnnotatorGCNL calls Google Cloud Natural Language.
	AnnotatorGCNL AnnotatorBackend = "gcnl"
)

// IsValid returns true if the backend is recognised.
func (b AnnotatorBackend) IsValid() bool {
	return b == AnnotatorProse || b == AnnotatorGCNL
}

// String returns the string representation.
func (b AnnotatorBackend) String() string {
	return string(b)
}

// SentimentBackend selects the sentiment scorer binding.
type SentimentBackend string

// Available sentiment backends.
const (
	SentimentVADER SentimentBackend = "vader"
	SentimentGCNL  SentimentBackend = "gcnl"
)

// IsValid returns true if the backend is recognised.
func (b SentimentBackend) IsValid() bool {
	return b == SentimentVADER || b == SentimentGCNL
}

// String returns the string representation.
func (b SentimentBackend) String() string {
	return string(b)
}

// StorageBackend selects where chunks, statuses and profiles are kept.
type StorageBackend string

// Available storage backends.
const (
	StorageSQLite StorageBackend = "sqlite"
	StorageMemory StorageBackend = "memory"
	// StorageFile keeps noise profiles as JSON files. Only valid for profiles.
	StorageFile StorageBackend = "file"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StorageMemory, StorageFile:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// ChunkerSettings holds the token window configuration.
type ChunkerSettings struct {
	// ChunkSize is the maximum number of tokens per chunk.
	ChunkSize int

	// Overlap is the number of tokens shared by consecutive chunks.
	Overlap int

	// Encoding is the tokenizer encoding name.
	Encoding string
}

// IsValid returns true if the window advances.
func (c ChunkerSettings) IsValid() bool {
	return c.ChunkSize > 0 && c.Overlap >= 0 && c.Overlap < c.ChunkSize
}

// AnnotatorSettings holds linguistic annotator configuration.
type AnnotatorSettings struct {
	Backend AnnotatorBackend

	// Language is the BCP-47 code passed to cloud annotators.
	Language string

	// CredentialsFile is a service-account JSON file for cloud annotators.
	// Empty uses application default credentials.
	CredentialsFile string
}

// SentimentSettings holds sentiment scorer configuration.
type SentimentSettings struct {
	Backend SentimentBackend
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or OpenAI-compatible servers).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// BatchSize is the number of texts per embedding round.
	BatchSize int

	// RequestsPerSecond and Burst throttle calls to the provider.
	RequestsPerSecond float64
	Burst             int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() || e.Provider == AIProviderNone {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// MetadataSettings holds keyword extraction configuration.
type MetadataSettings struct {
	// MaxNoiseWords caps the learnt noise profile.
	MaxNoiseWords int

	// SeedFromProfile adds the tenant's stored noise words to the stopwords.
	SeedFromProfile bool

	// ExtraStopwords are added to the built-in stopword list.
	ExtraStopwords []string
}

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	Backend        StorageBackend
	ProfileBackend StorageBackend
	DataDir        string
}

// RetrySettings controls whole-document retries.
type RetrySettings struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// ServerSettings holds HTTP server configuration.
type ServerSettings struct {
	Addr string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Normalise NormaliseOptions
	Chunker   ChunkerSettings
	Annotator AnnotatorSettings
	Sentiment SentimentSettings
	Embedding EmbeddingSettings
	Metadata  MetadataSettings
	Storage   StorageSettings
	Retry     RetrySettings
	Server    ServerSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Embedding is left unconfigured; the pipeline runs without vectors.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Normalise: DefaultNormaliseOptions(),
		Chunker: ChunkerSettings{
			ChunkSize: 512,
			Overlap:   50,
			Encoding:  "cl100k_base",
		},
		Annotator: AnnotatorSettings{
			Backend:  AnnotatorProse,
			Language: "en",
		},
		Sentiment: SentimentSettings{
			Backend: SentimentVADER,
		},
		Embedding: EmbeddingSettings{
			Provider:          AIProviderNone,
			BatchSize:         10,
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Metadata: MetadataSettings{
			MaxNoiseWords: 50,
		},
		Storage: StorageSettings{
			Backend:        StorageSQLite,
			ProfileBackend: StorageSQLite,
		},
		Retry: RetrySettings{
			MaxAttempts: 3,
			BaseDelay:   2 * time.Second,
		},
		Server: ServerSettings{
			Addr: ":8080",
		},
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		"nomic-embed-text":       768,
		"mxbai-embed-large":      1024,
		"all-minilm":             384,
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config so processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration keyed by name.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// PipelineConfigFrom derives the processor chain from application settings.
func PipelineConfigFrom(s AppSettings) PipelineConfig {
	return PipelineConfig{
		Processors: []string{"chunker", "metadata", "enricher"},
		ProcessorConfigs: map[string]map[string]any{
			"chunker": {
				"chunk_size": s.Chunker.ChunkSize,
				"overlap":    s.Chunker.Overlap,
			},
			"metadata": {
				"max_noise_words":   s.Metadata.MaxNoiseWords,
				"seed_from_profile": s.Metadata.SeedFromProfile,
				"extra_stopwords":   s.Metadata.ExtraStopwords,
			},
			"enricher": {
				"batch_size": s.Embedding.BatchSize,
			},
		},
	}
}
