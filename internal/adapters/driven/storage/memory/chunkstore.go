package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore keeps chunks per document.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks map[string][]domain.Chunk
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{chunks: make(map[string][]domain.Chunk)}
}

// SaveChunks replaces the chunks of every document present in chunks.
func (s *ChunkStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	byDoc := make(map[string][]domain.Chunk)
	for _, c := range chunks {
		byDoc[c.DocumentID] = append(byDoc[c.DocumentID], c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for docID, cs := range byDoc {
		slices.SortFunc(cs, func(a, b domain.Chunk) int { return a.ID - b.ID })
		s.chunks[docID] = cs
	}
	return nil
}

// GetChunks returns a copy of a document's chunks.
func (s *ChunkStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cs, ok := s.chunks[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return slices.Clone(cs), nil
}
