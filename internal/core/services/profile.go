package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
	"github.com/custodia-labs/textprep/internal/core/ports/driving"
)

// Ensure ProfileService implements the interface.
var _ driving.ProfileService = (*ProfileService)(nil)

// ProfileService reads tenant noise profiles.
type ProfileService struct {
	store driven.ProfileStore
}

// NewProfileService creates a profile service.
func NewProfileService(store driven.ProfileStore) *ProfileService {
	return &ProfileService{store: store}
}

// Get returns the noise profile for a business.
func (s *ProfileService) Get(ctx context.Context, businessID string) (*domain.NoiseProfile, error) {
	if strings.TrimSpace(businessID) == "" {
		return nil, fmt.Errorf("%w: business id is required", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, businessID)
}
