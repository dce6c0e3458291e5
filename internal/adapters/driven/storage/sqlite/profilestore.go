package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
)

// profileStore implements driven.ProfileStore.
type profileStore struct {
	store *Store
}

var _ driven.ProfileStore = (*profileStore)(nil)

// Save overwrites the tenant's profile.
func (s *profileStore) Save(ctx context.Context, profile domain.NoiseProfile) error {
	if profile.BusinessID == "" {
		return fmt.Errorf("saving profile: %w: empty business id", domain.ErrInvalidInput)
	}
	wordsJSON, err := json.Marshal(profile.NoiseWords)
	if err != nil {
		return fmt.Errorf("marshalling noise words: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO noise_profiles (business_id, noise_words, last_updated)
		VALUES (?, ?, ?)
		ON CONFLICT(business_id) DO UPDATE SET
			noise_words = excluded.noise_words,
			last_updated = excluded.last_updated
	`, profile.BusinessID, string(wordsJSON), profile.LastUpdated.UTC())
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// Get retrieves a tenant's profile.
func (s *profileStore) Get(ctx context.Context, businessID string) (*domain.NoiseProfile, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT business_id, noise_words, last_updated
		FROM noise_profiles WHERE business_id = ?
	`, businessID)

	var p domain.NoiseProfile
	var wordsJSON string
	if err := row.Scan(&p.BusinessID, &wordsJSON, &p.LastUpdated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	if err := json.Unmarshal([]byte(wordsJSON), &p.NoiseWords); err != nil {
		return nil, fmt.Errorf("unmarshaling noise words: %w", err)
	}
	p.LastUpdated = p.LastUpdated.UTC()
	return &p, nil
}
