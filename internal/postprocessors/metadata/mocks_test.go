package metadata

import (
	"context"
	"sync"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// mockAnnotator returns canned annotations keyed by text.
type mockAnnotator struct {
	byText map[string]*domain.Annotation
	err    error
	calls  []string
}

func (m *mockAnnotator) Annotate(_ context.Context, text string) (*domain.Annotation, error) {
	m.calls = append(m.calls, text)
	if m.err != nil {
		return nil, m.err
	}
	if ann, ok := m.byText[text]; ok {
		return ann, nil
	}
	return &domain.Annotation{Sentences: []string{text}}, nil
}

// mockScorer returns a fixed polarity.
type mockScorer struct {
	polarity float64
	err      error
}

func (m *mockScorer) Score(_ context.Context, _ string) (domain.Sentiment, error) {
	if m.err != nil {
		return domain.Sentiment{}, m.err
	}
	return domain.ClassifyPolarity(m.polarity), nil
}

// mockProfileStore keeps profiles in a map.
type mockProfileStore struct {
	mu       sync.Mutex
	profiles map[string]domain.NoiseProfile
	saves    int
	saveErr  error
}

func newMockProfileStore() *mockProfileStore {
	return &mockProfileStore{profiles: make(map[string]domain.NoiseProfile)}
}

func (m *mockProfileStore) Save(_ context.Context, p domain.NoiseProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.profiles[p.BusinessID] = p
	return nil
}

func (m *mockProfileStore) Get(_ context.Context, businessID string) (*domain.NoiseProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[businessID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}
