package driven

import (
	"context"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// ProfileStore persists tenant noise profiles.
type ProfileStore interface {
	// Save overwrites the profile for profile.BusinessID.
	Save(ctx context.Context, profile domain.NoiseProfile) error

	// Get returns the stored profile or domain.ErrNotFound.
	Get(ctx context.Context, businessID string) (*domain.NoiseProfile, error)
}

// ChunkStore persists processed chunks for downstream indexing.
type ChunkStore interface {
	// SaveChunks replaces the stored chunks of each chunk's document.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetChunks returns a document's chunks ordered by ID.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)
}

// StatusStore tracks document processing outcomes.
type StatusStore interface {
	MarkProcessing(ctx context.Context, documentID, runID string) error
	MarkCompleted(ctx context.Context, documentID string, attempts, chunkCount int) error
	MarkFailed(ctx context.Context, documentID string, attempts int, reason string) error

	// Get returns the status or domain.ErrNotFound.
	Get(ctx context.Context, documentID string) (*domain.DocumentStatus, error)
}
