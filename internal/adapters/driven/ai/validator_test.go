package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

func TestConfigValidator(t *testing.T) {
	v := NewConfigValidator()

	assert.NoError(t, v.ValidateEmbedding(&domain.EmbeddingSettings{Provider: domain.AIProviderNone}))
	assert.NoError(t, v.ValidateTokenizer("cl100k_base"))
	assert.ErrorIs(t, v.ValidateTokenizer("bogus"), domain.ErrUnsupportedType)
}
