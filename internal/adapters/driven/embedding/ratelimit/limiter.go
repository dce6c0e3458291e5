// Package ratelimit throttles calls to an embedding service.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
	"github.com/custodia-labs/textprep/internal/logger"
)

// Ensure Service implements the interfaces.
var (
	_ driven.EmbeddingService = (*Service)(nil)
	_ driven.BatchEmbedder    = (*Service)(nil)
)

// Config holds the token bucket configuration.
type Config struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// Burst is the maximum burst size.
	Burst int
}

// DefaultConfig is a conservative limit for hosted providers.
var DefaultConfig = Config{RequestsPerSecond: 5, Burst: 10}

// Service wraps an embedding service with a token bucket. Every Embed
// costs one token; a batch costs one token per text when the inner
// service embeds them one by one, and one token otherwise.
type Service struct {
	inner   driven.EmbeddingService
	limiter *rate.Limiter
}

// Wrap decorates inner. A non-positive rate falls back to DefaultConfig.
func Wrap(inner driven.EmbeddingService, cfg Config) *Service {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultConfig.RequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultConfig.Burst
	}
	return &Service{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

func (s *Service) wait(ctx context.Context, n int) error {
	r := s.limiter.ReserveN(timeNow(), n)
	if !r.OK() {
		return fmt.Errorf("ratelimit: batch of %d exceeds burst %d", n, s.limiter.Burst())
	}
	if d := r.DelayFrom(timeNow()); d > 0 {
		logger.Debug("embedding rate limit: waiting %s", d)
		select {
		case <-ctx.Done():
			r.Cancel()
			return ctx.Err()
		case <-after(d):
		}
	}
	return nil
}

// Embed waits for a token, then delegates.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := s.wait(ctx, 1); err != nil {
		return nil, err
	}
	return s.inner.Embed(ctx, text)
}

// EmbedBatch delegates to the inner batch call when there is one and
// otherwise embeds each text through Embed.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) ([]domain.Embedding, error) {
	if b, ok := s.inner.(driven.BatchEmbedder); ok {
		if err := s.wait(ctx, 1); err != nil {
			return nil, err
		}
		return b.EmbedBatch(ctx, texts)
	}

	out := make([]domain.Embedding, len(texts))
	for i, text := range texts {
		vec, err := s.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		out[i] = domain.Embedding{Input: text, Vector: vec}
	}
	return out, nil
}

// Dimensions returns the inner service's vector size.
func (s *Service) Dimensions() int { return s.inner.Dimensions() }

// ModelName returns the inner service's model.
func (s *Service) ModelName() string { return s.inner.ModelName() }

// Ping is not rate limited.
func (s *Service) Ping(ctx context.Context) error { return s.inner.Ping(ctx) }

// Close closes the inner service.
func (s *Service) Close() error { return s.inner.Close() }
