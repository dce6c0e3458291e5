package driving

import (
	"context"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// PipelineService runs documents through normalisation, chunking,
// metadata extraction and embedding enrichment.
type PipelineService interface {
	// Normalise returns the canonical form of text without chunking it.
	Normalise(ctx context.Context, text string, opts domain.NormaliseOptions) (string, error)

	// Chunk normalises text and splits it into token windows without
	// annotating, embedding or persisting them.
	Chunk(ctx context.Context, text string, opts domain.NormaliseOptions) ([]domain.Chunk, error)

	// Process runs the full pipeline for one document and persists the chunks.
	// Transient failures are retried; on exhaustion the document is marked failed.
	Process(ctx context.Context, req domain.ProcessRequest) (*domain.ProcessResult, error)

	// Status returns the processing status of a document.
	Status(ctx context.Context, documentID string) (*domain.DocumentStatus, error)
}

// ProfileService exposes tenant noise profiles.
type ProfileService interface {
	// Get returns the noise profile for a business or domain.ErrNotFound.
	Get(ctx context.Context, businessID string) (*domain.NoiseProfile, error)
}
