package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{name: "none is valid", provider: AIProviderNone, expected: true},
		{name: "ollama is valid", provider: AIProviderOllama, expected: true},
		{name: "openai is valid", provider: AIProviderOpenAI, expected: true},
		{name: "empty string is invalid", provider: AIProvider(""), expected: false},
		{name: "unknown provider is invalid", provider: AIProvider("bedrock"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

func TestAIProvider_Description(t *testing.T) {
	assert.Equal(t, "Ollama (local)", AIProviderOllama.Description())
	assert.Equal(t, "OpenAI (cloud)", AIProviderOpenAI.Description())
	assert.Equal(t, "Unknown", AIProvider("x").Description())
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	t.Run("none is not configured", func(t *testing.T) {
		assert.False(t, EmbeddingSettings{Provider: AIProviderNone}.IsConfigured())
	})

	t.Run("openai without key is not configured", func(t *testing.T) {
		assert.False(t, EmbeddingSettings{Provider: AIProviderOpenAI}.IsConfigured())
	})

	t.Run("openai with key is configured", func(t *testing.T) {
		assert.True(t, EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "sk-x"}.IsConfigured())
	})

	t.Run("ollama needs no key", func(t *testing.T) {
		assert.True(t, EmbeddingSettings{Provider: AIProviderOllama}.IsConfigured())
	})
}

func TestChunkerSettings_IsValid(t *testing.T) {
	assert.True(t, ChunkerSettings{ChunkSize: 512, Overlap: 50}.IsValid())
	assert.True(t, ChunkerSettings{ChunkSize: 1, Overlap: 0}.IsValid())
	assert.False(t, ChunkerSettings{ChunkSize: 50, Overlap: 50}.IsValid())
	assert.False(t, ChunkerSettings{ChunkSize: 0, Overlap: 0}.IsValid())
	assert.False(t, ChunkerSettings{ChunkSize: 10, Overlap: -1}.IsValid())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.True(t, s.Normalise.ConvertWords)
	assert.True(t, s.Normalise.RemoveEmojis)
	assert.False(t, s.Normalise.ReplaceWithPlaceholders)
	assert.Equal(t, 512, s.Chunker.ChunkSize)
	assert.Equal(t, 50, s.Chunker.Overlap)
	assert.True(t, s.Chunker.IsValid())
	assert.Equal(t, AnnotatorProse, s.Annotator.Backend)
	assert.Equal(t, SentimentVADER, s.Sentiment.Backend)
	assert.False(t, s.Embedding.IsConfigured())
	assert.Equal(t, 10, s.Embedding.BatchSize)
	assert.Equal(t, 50, s.Metadata.MaxNoiseWords)
	assert.Equal(t, 3, s.Retry.MaxAttempts)
}

func TestPipelineConfigFrom(t *testing.T) {
	s := DefaultAppSettings()
	s.Chunker.ChunkSize = 256

	cfg := PipelineConfigFrom(s)

	assert.Equal(t, []string{"chunker", "metadata", "enricher"}, cfg.Processors)
	assert.Equal(t, 256, cfg.GetProcessorConfig("chunker")["chunk_size"])
	assert.Nil(t, cfg.GetProcessorConfig("missing"))

	var empty PipelineConfig
	assert.Nil(t, empty.GetProcessorConfig("chunker"))
}
