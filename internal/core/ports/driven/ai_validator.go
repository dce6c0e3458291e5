package driven

import "github.com/custodia-labs/textprep/internal/core/domain"

// AIConfigValidator validates model-backed configurations by testing
// connectivity to the underlying services.
type AIConfigValidator interface {
	// ValidateEmbedding pings the configured embedding provider.
	// Returns nil if configuration is valid or not configured.
	ValidateEmbedding(config *domain.EmbeddingSettings) error

	// ValidateTokenizer checks that the encoding can be loaded.
	ValidateTokenizer(encoding string) error
}
