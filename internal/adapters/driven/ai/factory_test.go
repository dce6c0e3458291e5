package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/textprep/internal/adapters/driven/embedding/ratelimit"
	"github.com/custodia-labs/textprep/internal/core/domain"
)

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.EmbeddingSettings
		wantNil  bool
		wantErr  bool
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "unconfigured settings returns nil",
			settings: &domain.EmbeddingSettings{},
			wantNil:  true,
		},
		{
			name:     "none provider returns nil",
			settings: &domain.EmbeddingSettings{Provider: domain.AIProviderNone},
			wantNil:  true,
		},
		{
			name: "ollama provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "nomic-embed-text",
			},
		},
		{
			name: "openai provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "text-embedding-3-small",
			},
		},
		{
			name: "openai without key is not configured",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
			},
			wantNil: true,
		},
		{
			name: "unknown provider returns nil (not configured)",
			settings: &domain.EmbeddingSettings{
				Provider: "unknown",
				APIKey:   "test-key",
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			assert.IsType(t, &ratelimit.Service{}, svc)
		})
	}
}

func TestCreateEmbeddingService_OllamaDimensions(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "mxbai-embed-large",
	})
	require.NoError(t, err)
	assert.Equal(t, 1024, svc.Dimensions())
	assert.Equal(t, "mxbai-embed-large", svc.ModelName())
}

func TestValidateEmbeddingConfig_Unconfigured(t *testing.T) {
	assert.NoError(t, ValidateEmbeddingConfig(nil))
	assert.NoError(t, ValidateEmbeddingConfig(&domain.EmbeddingSettings{Provider: domain.AIProviderNone}))
}

func TestCreateAndValidateEmbeddingService_Unreachable(t *testing.T) {
	_, err := CreateAndValidateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  "http://127.0.0.1:1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestCreateAnnotator(t *testing.T) {
	settings := domain.AnnotatorSettings{Backend: domain.AnnotatorProse, Language: "en"}

	a1, err := CreateAnnotator(context.Background(), settings)
	require.NoError(t, err)
	a2, err := CreateAnnotator(context.Background(), settings)
	require.NoError(t, err)
	assert.Same(t, a1, a2)

	_, err = CreateAnnotator(context.Background(), domain.AnnotatorSettings{Backend: "spacy"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestCreateSentimentScorer(t *testing.T) {
	s, err := CreateSentimentScorer(context.Background(),
		domain.SentimentSettings{Backend: domain.SentimentVADER}, domain.AnnotatorSettings{})
	require.NoError(t, err)
	assert.NotNil(t, s)

	_, err = CreateSentimentScorer(context.Background(),
		domain.SentimentSettings{Backend: "textblob"}, domain.AnnotatorSettings{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestCreateTokenizer(t *testing.T) {
	tok, err := CreateTokenizer("")
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Encode("hello world"))

	_, err = CreateTokenizer("not_an_encoding")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}
