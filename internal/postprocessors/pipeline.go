// Package postprocessors chains the stages that turn normalised text into
// enriched chunks: chunker, metadata extraction and embedding enrichment.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
	"github.com/custodia-labs/textprep/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// Pipeline runs its processors in sequence, each one receiving the chunks
// produced by the previous.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline returns a pipeline over processors, in the given order.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Process feeds doc through every processor. The chunker sees nil chunks
// and produces them; later stages annotate what they are given. Any error
// stops the run and nothing is returned.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", domain.ErrInvalidInput)
	}

	var chunks []domain.Chunk

	for _, processor := range p.processors {
		done := logger.Timed(processor.Name())
		var err error
		chunks, err = processor.Process(ctx, doc, chunks)
		done()
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
		logger.Debug("%s: %d chunks", processor.Name(), len(chunks))
	}

	return chunks, nil
}

// Add appends processor as the last stage.
func (p *Pipeline) Add(processor driven.PostProcessor) {
	p.processors = append(p.processors, processor)
}

// Len is the number of stages.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Names returns the processor names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.processors))
	for i, proc := range p.processors {
		names[i] = proc.Name()
	}
	return names
}
