package services

import (
	"context"
	"errors"
	"strings"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// upperNormaliser upper-cases text and rejects the word "broken".
type upperNormaliser struct{}

func (upperNormaliser) Normalise(text string, _ domain.NormaliseOptions) (string, error) {
	if strings.Contains(text, "broken") {
		return "", domain.ErrNormalisation
	}
	return strings.ToUpper(text), nil
}

// mockPipeline splits content on spaces and fails the first failures runs.
type mockPipeline struct {
	failures int
	err      error
	calls    int
	docs     []*domain.Document
}

func (m *mockPipeline) Process(_ context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	m.calls++
	m.docs = append(m.docs, doc)
	if m.calls <= m.failures {
		if m.err != nil {
			return nil, m.err
		}
		return nil, errors.New("transient")
	}
	var chunks []domain.Chunk
	for i, w := range strings.Fields(doc.Content) {
		chunks = append(chunks, domain.Chunk{ID: i + 1, Text: w})
	}
	return chunks, nil
}

// mockValidator records validation calls.
type mockValidator struct {
	embedErr error
	tokErr   error
	calls    int
}

func (m *mockValidator) ValidateEmbedding(_ *domain.EmbeddingSettings) error {
	m.calls++
	return m.embedErr
}

func (m *mockValidator) ValidateTokenizer(_ string) error {
	return m.tokErr
}

// wordChunker emits one chunk per word.
type wordChunker struct{}

func (wordChunker) Name() string { return "chunker" }

func (wordChunker) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for i, w := range strings.Fields(doc.Content) {
		chunks = append(chunks, domain.Chunk{ID: i + 1, Text: w})
	}
	return chunks, nil
}
