package ai

import (
	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator validates provider configurations.
type ConfigValidator struct{}

// NewConfigValidator creates a new config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbedding validates an embedding configuration by pinging the provider.
func (v *ConfigValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	return ValidateEmbeddingConfig(config)
}

// ValidateTokenizer loads the encoding through the shared pool.
func (v *ConfigValidator) ValidateTokenizer(encoding string) error {
	_, err := CreateTokenizer(encoding)
	return err
}
