// Package chunker splits normalised text into overlapping token windows.
package chunker

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
)

// DefaultChunkSize is the default number of tokens per chunk.
const DefaultChunkSize = 512

// DefaultChunkOverlap is the default number of tokens shared by neighbours.
const DefaultChunkOverlap = 50

// Ensure Processor implements the interface.
var _ driven.PostProcessor = (*Processor)(nil)

// Processor emits windows of [start, start+chunkSize) tokens, advancing by
// chunkSize-overlap. It implements the PostProcessor interface.
type Processor struct {
	tok       driven.Tokenizer
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in tokens.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between chunks in tokens.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a chunker. A window that would not advance is rejected with
// domain.ErrInvalidWindow.
func New(tok driven.Tokenizer, opts ...Option) (*Processor, error) {
	if tok == nil {
		return nil, fmt.Errorf("chunker: %w: tokenizer is nil", domain.ErrInvalidInput)
	}
	p := &Processor{
		tok:       tok,
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.chunkSize <= 0 || p.overlap < 0 || p.overlap >= p.chunkSize {
		return nil, fmt.Errorf("%w: chunk_size=%d overlap=%d", domain.ErrInvalidWindow, p.chunkSize, p.overlap)
	}
	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Windows returns the token spans covering n tokens.
func (p *Processor) Windows(n int) []domain.TokenSpan {
	if n <= 0 {
		return nil
	}
	stride := p.chunkSize - p.overlap
	spans := make([]domain.TokenSpan, 0, n/stride+1)
	for start := 0; start < n; start += stride {
		spans = append(spans, domain.TokenSpan{Start: start, End: min(start+p.chunkSize, n)})
	}
	return spans
}

// Chunk returns the decoded, trimmed text of each window.
func (p *Processor) Chunk(text string) []string {
	tokens := p.tok.Encode(text)
	spans := p.Windows(len(tokens))
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = strings.TrimSpace(p.tok.Decode(tokens[s.Start:s.End]))
	}
	return out
}

// Process creates the document's chunks. Input chunks are ignored.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	tokens := p.tok.Encode(doc.Content)
	spans := p.Windows(len(tokens))
	if len(spans) == 0 {
		return nil, nil
	}

	chunks := make([]domain.Chunk, len(spans))
	for i, s := range spans {
		chunks[i] = domain.Chunk{
			ID:         i + 1,
			DocumentID: doc.ID,
			RunID:      doc.RunID,
			Text:       strings.TrimSpace(p.tok.Decode(tokens[s.Start:s.End])),
			TokenSpan:  s,
		}
	}
	return chunks, nil
}
