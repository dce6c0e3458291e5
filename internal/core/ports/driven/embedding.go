// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// EmbeddingService generates vector embeddings from text.
// This is an optional service - when nil, chunks carry no vectors.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
type EmbeddingService interface {
	// Embed generates a vector embedding for one text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1536, 3072).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// BatchEmbedder is implemented by services with a native multi-text call.
// Results must echo their input so callers can detect reordering.
type BatchEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([]domain.Embedding, error)
}
