package driven

import (
	"context"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// PostProcessor processes normalised document content into chunks.
// PostProcessors are chained in a pipeline (chunking, metadata, embeddings).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a document and returns chunks.
	// The chunker receives nil and returns new chunks; later processors
	// receive the chunks and fill them in.
	Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the document through all processors in order.
	// Returns the final chunks after all processing.
	Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}
