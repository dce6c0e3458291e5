package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
)

// Ensure ProfileStore implements the interface.
var _ driven.ProfileStore = (*ProfileStore)(nil)

// ProfileStore keeps noise profiles in a map.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.NoiseProfile
}

// NewProfileStore creates a new in-memory profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[string]domain.NoiseProfile)}
}

// Save overwrites the tenant's profile.
func (s *ProfileStore) Save(_ context.Context, profile domain.NoiseProfile) error {
	if profile.BusinessID == "" {
		return fmt.Errorf("saving profile: %w: empty business id", domain.ErrInvalidInput)
	}
	profile.NoiseWords = slices.Clone(profile.NoiseWords)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.BusinessID] = profile
	return nil
}

// Get retrieves a tenant's profile.
func (s *ProfileStore) Get(_ context.Context, businessID string) (*domain.NoiseProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[businessID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.NoiseWords = slices.Clone(p.NoiseWords)
	return &p, nil
}
