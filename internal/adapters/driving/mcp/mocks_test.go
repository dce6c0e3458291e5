package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// mockPipelineService is a mock implementation of driving.PipelineService.
type mockPipelineService struct {
	normalised string
	result     *domain.ProcessResult
	err        error

	lastOpts domain.NormaliseOptions
	lastReq  domain.ProcessRequest
}

func (m *mockPipelineService) Normalise(_ context.Context, _ string, opts domain.NormaliseOptions) (string, error) {
	m.lastOpts = opts
	return m.normalised, m.err
}

func (m *mockPipelineService) Chunk(_ context.Context, _ string, _ domain.NormaliseOptions) ([]domain.Chunk, error) {
	if m.result == nil {
		return nil, m.err
	}
	return m.result.Chunks, m.err
}

func (m *mockPipelineService) Process(_ context.Context, req domain.ProcessRequest) (*domain.ProcessResult, error) {
	m.lastReq = req
	return m.result, m.err
}

func (m *mockPipelineService) Status(_ context.Context, id string) (*domain.DocumentStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.DocumentStatus{DocumentID: id, State: domain.StateCompleted}, nil
}

// mockProfileService is a mock implementation of driving.ProfileService.
type mockProfileService struct {
	profiles map[string]domain.NoiseProfile
	err      error
}

func (m *mockProfileService) Get(_ context.Context, businessID string) (*domain.NoiseProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[businessID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func sampleProfiles() *mockProfileService {
	return &mockProfileService{profiles: map[string]domain.NoiseProfile{
		"biz-1": {
			BusinessID:  "biz-1",
			NoiseWords:  []string{"invoice", "order"},
			LastUpdated: time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC),
		},
	}}
}
