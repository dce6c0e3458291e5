package cli

import (
	"context"
	"strings"
	"time"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// mockPipelineService is a mock implementation of driving.PipelineService.
type mockPipelineService struct {
	err      error
	lastOpts domain.NormaliseOptions
	lastReq  domain.ProcessRequest
}

func (m *mockPipelineService) Normalise(_ context.Context, text string, opts domain.NormaliseOptions) (string, error) {
	m.lastOpts = opts
	if m.err != nil {
		return "", m.err
	}
	return strings.ToLower(strings.TrimSpace(text)), nil
}

func (m *mockPipelineService) Chunk(_ context.Context, text string, opts domain.NormaliseOptions) ([]domain.Chunk, error) {
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	var chunks []domain.Chunk
	for i, w := range strings.Fields(text) {
		chunks = append(chunks, domain.Chunk{ID: i + 1, Text: w, TokenSpan: domain.TokenSpan{Start: i, End: i + 1}})
	}
	return chunks, nil
}

func (m *mockPipelineService) Process(_ context.Context, req domain.ProcessRequest) (*domain.ProcessResult, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ProcessResult{
		DocumentID: "doc-1",
		RunID:      "run-1",
		Chunks: []domain.Chunk{{
			ID:        1,
			Text:      strings.ToLower(req.Text),
			Metadata:  domain.Metadata{RankedKeywords: []domain.RankedKeyword{{Keyword: "invoice", Score: 0.6}}},
			Sentiment: domain.Sentiment{Label: domain.SentimentPositive, Polarity: 0.5},
			Embedding: []float32{0.1, 0.2, 0.3},
		}},
		Duration: 12 * time.Millisecond,
	}, nil
}

func (m *mockPipelineService) Status(_ context.Context, id string) (*domain.DocumentStatus, error) {
	if id != "doc-1" {
		return nil, domain.ErrNotFound
	}
	return &domain.DocumentStatus{
		DocumentID: "doc-1",
		RunID:      "run-1",
		State:      domain.StateFailed,
		Attempts:   3,
		Error:      "embedding service unavailable",
		UpdatedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

// mockProfileService is a mock implementation of driving.ProfileService.
type mockProfileService struct{}

func (mockProfileService) Get(_ context.Context, businessID string) (*domain.NoiseProfile, error) {
	if businessID != "biz" {
		return nil, domain.ErrNotFound
	}
	return &domain.NoiseProfile{
		BusinessID:  "biz",
		NoiseWords:  []string{"invoice", "order"},
		LastUpdated: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings    domain.AppSettings
	validateErr error
	provider    domain.AIProvider
	apiKey      string
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettingsService) SetEmbeddingProvider(p domain.AIProvider, model, apiKey string) error {
	m.provider = p
	m.apiKey = apiKey
	m.settings.Embedding.Provider = p
	m.settings.Embedding.Model = model
	m.settings.Embedding.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) SetChunkWindow(size, overlap int) error {
	c := domain.ChunkerSettings{ChunkSize: size, Overlap: overlap}
	if !c.IsValid() {
		return domain.ErrInvalidWindow
	}
	m.settings.Chunker.ChunkSize = size
	m.settings.Chunker.Overlap = overlap
	return nil
}

func (m *mockSettingsService) Validate() error { return m.validateErr }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	pipeline *mockPipelineService
	settings *mockSettingsService
}

// setupTestServices installs mock services and returns a cleanup function.
func setupTestServices() (*testServices, func()) {
	origPipeline, origProfile, origSettings := pipelineService, profileService, settingsService
	origSet, origBootstrap := servicesSet, bootstrap

	ts := &testServices{
		pipeline: &mockPipelineService{},
		settings: newMockSettingsService(),
	}
	SetServices(&Services{
		Pipeline: ts.pipeline,
		Profile:  mockProfileService{},
		Settings: ts.settings,
	})

	return ts, func() {
		pipelineService, profileService, settingsService = origPipeline, origProfile, origSettings
		servicesSet, bootstrap = origSet, origBootstrap
		closeFunc = nil
	}
}
