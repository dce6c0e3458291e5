package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
	"github.com/custodia-labs/textprep/internal/core/ports/driving"
	"github.com/custodia-labs/textprep/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.PipelineService = (*PipelineService)(nil)

// PipelineService normalises documents, runs them through the
// post-processor pipeline and persists the chunks.
type PipelineService struct {
	normaliser driven.Normaliser
	pipeline   driven.PostProcessorPipeline
	chunks     driven.ChunkStore
	statuses   driven.StatusStore
	chunker    driven.PostProcessor
	retry      domain.RetrySettings

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
	newID func() string
	runID func() string
}

// PipelineOption configures the pipeline service.
type PipelineOption func(*PipelineService)

// WithRetry sets the whole-document retry policy.
func WithRetry(r domain.RetrySettings) PipelineOption {
	return func(s *PipelineService) {
		if r.MaxAttempts > 0 {
			s.retry.MaxAttempts = r.MaxAttempts
		}
		if r.BaseDelay >= 0 {
			s.retry.BaseDelay = r.BaseDelay
		}
	}
}

// WithClock sets the time source used to stamp chunks.
func WithClock(now func() time.Time) PipelineOption {
	return func(s *PipelineService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithChunker sets the processor used by Chunk.
func WithChunker(p driven.PostProcessor) PipelineOption {
	return func(s *PipelineService) {
		s.chunker = p
	}
}

// NewPipelineService creates a pipeline service.
func NewPipelineService(
	normaliser driven.Normaliser,
	pipeline driven.PostProcessorPipeline,
	chunks driven.ChunkStore,
	statuses driven.StatusStore,
	opts ...PipelineOption,
) *PipelineService {
	s := &PipelineService{
		normaliser: normaliser,
		pipeline:   pipeline,
		chunks:     chunks,
		statuses:   statuses,
		retry:      domain.DefaultAppSettings().Retry,
		now:        time.Now,
		sleep:      sleepContext,
		newID:      uuid.NewString,
		runID:      func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalise returns the canonical form of text without chunking it.
func (s *PipelineService) Normalise(_ context.Context, text string, opts domain.NormaliseOptions) (string, error) {
	return s.normaliser.Normalise(text, opts)
}

// Chunk normalises text and returns its token windows.
func (s *PipelineService) Chunk(ctx context.Context, text string, opts domain.NormaliseOptions) ([]domain.Chunk, error) {
	if s.chunker == nil {
		return nil, errors.New("chunker not configured")
	}
	normalised, err := s.normaliser.Normalise(text, opts)
	if err != nil {
		return nil, err
	}
	return s.chunker.Process(ctx, &domain.Document{Content: normalised}, nil)
}

// Process runs one document through the pipeline. The whole run is retried
// with exponential backoff; permanent failures are not retried. The
// outcome is recorded in the status store either way.
func (s *PipelineService) Process(ctx context.Context, req domain.ProcessRequest) (*domain.ProcessResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: text is empty", domain.ErrInvalidInput)
	}

	docID := req.DocumentID
	if docID == "" {
		docID = s.newID()
	}
	runID := s.runID()

	if err := s.statuses.MarkProcessing(ctx, docID, runID); err != nil {
		return nil, fmt.Errorf("mark processing: %w", err)
	}
	logger.Section("Processing document " + docID)

	start := s.now()
	var (
		result  *domain.ProcessResult
		err     error
		attempt int
	)
	for attempt = 1; attempt <= s.retry.MaxAttempts; attempt++ {
		result, err = s.run(ctx, docID, runID, req)
		if err == nil || domain.IsPermanent(err) || attempt == s.retry.MaxAttempts {
			break
		}

		delay := s.retry.BaseDelay * time.Duration(1<<(attempt-1))
		logger.Warn("attempt %d/%d for %s failed: %v; retrying in %s",
			attempt, s.retry.MaxAttempts, docID, err, delay)
		if serr := s.sleep(ctx, delay); serr != nil {
			err = serr
			break
		}
	}

	if err != nil {
		// A cancelled caller still gets the failure recorded.
		markCtx := context.WithoutCancel(ctx)
		if merr := s.statuses.MarkFailed(markCtx, docID, attempt, err.Error()); merr != nil {
			logger.Error("mark %s failed: %v", docID, merr)
		}
		return nil, fmt.Errorf("process document %s: %w", docID, err)
	}

	if err := s.statuses.MarkCompleted(ctx, docID, attempt, len(result.Chunks)); err != nil {
		return nil, fmt.Errorf("mark completed: %w", err)
	}

	result.Duration = s.now().Sub(start)
	return result, nil
}

// run performs one attempt.
func (s *PipelineService) run(ctx context.Context, docID, runID string, req domain.ProcessRequest) (*domain.ProcessResult, error) {
	done := logger.Timed("Normalisation")
	normalised, err := s.normaliser.Normalise(req.Text, req.Options)
	done()
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:      docID,
		RunID:   runID,
		Content: normalised,
		Context: req.Context,
	}

	chunks, err := s.pipeline.Process(ctx, doc)
	if err != nil {
		return nil, err
	}

	at := s.now()
	for i := range chunks {
		chunks[i].DocumentID = docID
		chunks[i].Stamp(req.Context, runID, at)
	}

	if err := s.chunks.SaveChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("save chunks: %w", err)
	}

	return &domain.ProcessResult{
		DocumentID: docID,
		RunID:      runID,
		Normalised: normalised,
		Chunks:     chunks,
	}, nil
}

// Status returns the processing status of a document.
func (s *PipelineService) Status(ctx context.Context, documentID string) (*domain.DocumentStatus, error) {
	return s.statuses.Get(ctx, documentID)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
