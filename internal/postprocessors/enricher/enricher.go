// Package enricher attaches embedding vectors to chunks and verifies that
// every vector belongs to the chunk text it was requested for.
package enricher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
	"github.com/custodia-labs/textprep/internal/logger"
)

// DefaultBatchSize is the number of texts sent per embedding round.
const DefaultBatchSize = 10

// Ensure Enricher implements the interface.
var _ driven.PostProcessor = (*Enricher)(nil)

// Enricher embeds chunks in batches.
type Enricher struct {
	embedder  driven.EmbeddingService
	batchSize int
}

// Option configures the enricher.
type Option func(*Enricher)

// WithBatchSize sets the number of texts per round. Values below 1 are ignored.
func WithBatchSize(n int) Option {
	return func(e *Enricher) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// New creates an enricher. With a nil embedder Enrich only hashes.
func New(embedder driven.EmbeddingService, opts ...Option) *Enricher {
	e := &Enricher{embedder: embedder, batchSize: DefaultBatchSize}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the processor name.
func (e *Enricher) Name() string {
	return "enricher"
}

// Process enriches the chunks produced by earlier processors.
func (e *Enricher) Process(ctx context.Context, _ *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	return e.Enrich(ctx, chunks)
}

// ChunkText is the text a chunk is embedded by: its sentences joined by a
// space, or its raw text when no sentences were found.
func ChunkText(c *domain.Chunk) string {
	if len(c.Sentences) == 0 {
		return c.Text
	}
	return strings.Join(c.Sentences, " ")
}

// Hash returns the hex SHA-256 of text.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Enrich hashes every chunk, embeds them batch by batch and attaches the
// vectors. Each batch is checked for count, integrity and format. On any
// failure no chunk is modified and the error is returned. Without an
// embedder only the text hashes are set.
func (e *Enricher) Enrich(ctx context.Context, chunks []domain.Chunk) ([]domain.Chunk, error) {
	if len(chunks) == 0 {
		return chunks, nil
	}

	hashes := make([]string, len(chunks))
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = ChunkText(&chunks[i])
		hashes[i] = Hash(texts[i])
	}

	if e.embedder == nil {
		for i := range chunks {
			chunks[i].TextHash = hashes[i]
		}
		return chunks, nil
	}
	defer logger.Timed("Embedding")()

	vectors := make([][]float32, len(chunks))
	for start := 0; start < len(chunks); start += e.batchSize {
		end := min(start+e.batchSize, len(chunks))
		logger.Debug("embedding chunks %d-%d of %d", start+1, end, len(chunks))

		results, err := e.embed(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embed batch at chunk %d: %w", chunks[start].ID, err)
		}
		if len(results) != end-start {
			return nil, fmt.Errorf("%w: sent %d texts, got %d embeddings",
				domain.ErrEmbeddingCountMismatch, end-start, len(results))
		}

		for j, res := range results {
			i := start + j
			c := &chunks[i]
			if Hash(ChunkText(c)) != hashes[i] || Hash(res.Input) != hashes[i] {
				return nil, fmt.Errorf("%w: chunk %d", domain.ErrIntegrityMismatch, c.ID)
			}
			if err := validate(res.Vector); err != nil {
				return nil, fmt.Errorf("%w: chunk %d: %v", domain.ErrInvalidEmbeddingFormat, c.ID, err)
			}
			vectors[i] = res.Vector
		}
	}

	for i := range chunks {
		chunks[i].TextHash = hashes[i]
		chunks[i].Embedding = vectors[i]
	}
	return chunks, nil
}

// embed uses the native batch call when the service has one.
func (e *Enricher) embed(ctx context.Context, texts []string) ([]domain.Embedding, error) {
	if b, ok := e.embedder.(driven.BatchEmbedder); ok {
		return b.EmbedBatch(ctx, texts)
	}

	out := make([]domain.Embedding, len(texts))
	for i, text := range texts {
		vec, err := e.embedder.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		out[i] = domain.Embedding{Input: text, Vector: vec}
	}
	return out, nil
}

func validate(vec []float32) error {
	if len(vec) == 0 {
		return fmt.Errorf("empty vector")
	}
	for i, v := range vec {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return fmt.Errorf("component %d is not finite", i)
		}
	}
	return nil
}
