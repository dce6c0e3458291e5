package rest

import (
	"context"
	"strings"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// mockPipelineService is a mock implementation of driving.PipelineService.
type mockPipelineService struct {
	err      error
	statuses map[string]domain.DocumentStatus

	lastOpts domain.NormaliseOptions
	lastReq  domain.ProcessRequest
}

func (m *mockPipelineService) Normalise(_ context.Context, text string, opts domain.NormaliseOptions) (string, error) {
	m.lastOpts = opts
	if m.err != nil {
		return "", m.err
	}
	return strings.ToLower(text), nil
}

func (m *mockPipelineService) Chunk(_ context.Context, text string, _ domain.NormaliseOptions) ([]domain.Chunk, error) {
	return []domain.Chunk{{ID: 1, Text: text}}, m.err
}

func (m *mockPipelineService) Process(_ context.Context, req domain.ProcessRequest) (*domain.ProcessResult, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, domain.ErrInvalidInput
	}
	return &domain.ProcessResult{
		DocumentID: "doc-1",
		RunID:      "run-1",
		Normalised: strings.ToLower(req.Text),
		Chunks:     []domain.Chunk{{ID: 1, DocumentID: "doc-1", Text: strings.ToLower(req.Text)}},
	}, nil
}

func (m *mockPipelineService) Status(_ context.Context, id string) (*domain.DocumentStatus, error) {
	s, ok := m.statuses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

// mockProfileService is a mock implementation of driving.ProfileService.
type mockProfileService struct {
	profile *domain.NoiseProfile
}

func (m *mockProfileService) Get(_ context.Context, businessID string) (*domain.NoiseProfile, error) {
	if m.profile == nil || m.profile.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	return m.profile, nil
}
