package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
)

// Ensure StatusStore implements the interface.
var _ driven.StatusStore = (*StatusStore)(nil)

// StatusStore keeps document statuses in a map.
type StatusStore struct {
	mu       sync.RWMutex
	statuses map[string]domain.DocumentStatus
	now      func() time.Time
}

// NewStatusStore creates a new in-memory status store.
func NewStatusStore() *StatusStore {
	return &StatusStore{
		statuses: make(map[string]domain.DocumentStatus),
		now:      time.Now,
	}
}

// MarkProcessing records the start of a run, resetting any earlier outcome.
func (s *StatusStore) MarkProcessing(_ context.Context, documentID, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[documentID] = domain.DocumentStatus{
		DocumentID: documentID,
		RunID:      runID,
		State:      domain.StateProcessing,
		UpdatedAt:  s.now().UTC(),
	}
	return nil
}

// MarkCompleted records a successful run.
func (s *StatusStore) MarkCompleted(_ context.Context, documentID string, attempts, chunkCount int) error {
	return s.update(documentID, func(st *domain.DocumentStatus) {
		st.State = domain.StateCompleted
		st.Attempts = attempts
		st.ChunkCount = chunkCount
		st.Error = ""
	})
}

// MarkFailed records an exhausted run.
func (s *StatusStore) MarkFailed(_ context.Context, documentID string, attempts int, reason string) error {
	return s.update(documentID, func(st *domain.DocumentStatus) {
		st.State = domain.StateFailed
		st.Attempts = attempts
		st.ChunkCount = 0
		st.Error = reason
	})
}

func (s *StatusStore) update(documentID string, fn func(*domain.DocumentStatus)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.statuses[documentID]
	if !ok {
		return domain.ErrNotFound
	}
	fn(&st)
	st.UpdatedAt = s.now().UTC()
	s.statuses[documentID] = st
	return nil
}

// Get retrieves the status of a document.
func (s *StatusStore) Get(_ context.Context, documentID string) (*domain.DocumentStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.statuses[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &st, nil
}
