package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
)

// Ensure ProfileStore implements the interface.
var _ driven.ProfileStore = (*ProfileStore)(nil)

// ProfileStore writes each tenant's profile to
// <root>/noise_profiles/<business_id>/noise_words.json.
type ProfileStore struct {
	mu   sync.Mutex
	root string
}

// NewProfileStore creates a profile store under dataDir.
func NewProfileStore(dataDir string) (*ProfileStore, error) {
	root := filepath.Join(dataDir, "noise_profiles")
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("creating profile directory: %w", err)
	}
	return &ProfileStore{root: root}, nil
}

func (s *ProfileStore) path(businessID string) (string, error) {
	if businessID == "" || businessID == "." || businessID == ".." ||
		strings.ContainsAny(businessID, `/\`) {
		return "", fmt.Errorf("%w: business id %q", domain.ErrInvalidInput, businessID)
	}
	return filepath.Join(s.root, businessID, "noise_words.json"), nil
}

// Save overwrites the tenant's profile. The file is replaced atomically.
func (s *ProfileStore) Save(_ context.Context, profile domain.NoiseProfile) error {
	p, err := s.path(profile.BusinessID)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	if profile.NoiseWords == nil {
		profile.NoiseWords = []string{}
	}
	profile.LastUpdated = profile.LastUpdated.UTC()

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return fmt.Errorf("creating profile directory: %w", err)
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("replacing profile: %w", err)
	}
	return nil
}

// Get reads a tenant's profile.
func (s *ProfileStore) Get(_ context.Context, businessID string) (*domain.NoiseProfile, error) {
	p, err := s.path(businessID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	data, err := os.ReadFile(p)
	s.mu.Unlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var profile domain.NoiseProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &profile, nil
}
