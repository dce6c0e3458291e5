package metadata

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
	"github.com/custodia-labs/textprep/internal/logger"
)

// Ensure Processor implements the interface.
var _ driven.PostProcessor = (*Processor)(nil)

// Processor annotates each chunk, fills in its sentences, metadata and
// sentiment, and saves the document's noise profile once at the end.
type Processor struct {
	annotator driven.LinguisticAnnotator
	scorer    driven.SentimentScorer
	profiles  driven.ProfileStore
	extractor *Extractor

	maxNoiseWords   int
	seedFromProfile bool
	now             func() time.Time
}

// Option configures the metadata processor.
type Option func(*Processor)

// WithSentimentScorer sets the scorer. Without one chunks are Neutral.
func WithSentimentScorer(s driven.SentimentScorer) Option {
	return func(p *Processor) {
		p.scorer = s
	}
}

// WithProfileStore sets where noise profiles are saved.
// Without one the profile is computed and discarded.
func WithProfileStore(s driven.ProfileStore) Option {
	return func(p *Processor) {
		p.profiles = s
	}
}

// WithMaxNoiseWords caps the learnt noise profile.
func WithMaxNoiseWords(n int) Option {
	return func(p *Processor) {
		p.maxNoiseWords = n
	}
}

// WithSeedFromProfile makes the tenant's stored noise words act as stopwords.
func WithSeedFromProfile(seed bool) Option {
	return func(p *Processor) {
		p.seedFromProfile = seed
	}
}

// WithExtraStopwords adds words to the built-in stopword list.
func WithExtraStopwords(words []string) Option {
	return func(p *Processor) {
		p.extractor = p.extractor.WithNoiseWords(words)
	}
}

// WithClock overrides the profile timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		p.now = now
	}
}

// New creates a metadata processor around an annotator.
func New(annotator driven.LinguisticAnnotator, opts ...Option) (*Processor, error) {
	if annotator == nil {
		return nil, fmt.Errorf("metadata: %w: annotator is nil", domain.ErrInvalidInput)
	}
	p := &Processor{
		annotator:     annotator,
		extractor:     NewExtractor(),
		maxNoiseWords: DefaultMaxNoiseWords,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "metadata"
}

// Process fills in every chunk in place and returns them in the same order.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	extractor, err := p.extractorFor(ctx, doc.Context.BusinessID)
	if err != nil {
		return nil, err
	}

	state := NewDocumentState()
	for i := range chunks {
		c := &chunks[i]

		ann, err := p.annotator.Annotate(ctx, c.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d: %w", domain.ErrAnnotation, c.ID, err)
		}

		c.Sentences = keepSentences(ann.Sentences)
		c.Metadata = extractor.ExtractLocal(ann)
		c.Sentiment, err = p.score(ctx, c.Text)
		if err != nil {
			return nil, fmt.Errorf("score chunk %d: %w", c.ID, err)
		}
		state.Observe(ann)
	}

	businessID := doc.Context.BusinessID
	if businessID == "" {
		return chunks, nil
	}

	profile := state.Finalize(businessID, p.now(), p.maxNoiseWords)
	if p.profiles == nil {
		logger.Debug("no profile store; discarding %d noise words for %s", len(profile.NoiseWords), businessID)
		return chunks, nil
	}
	if err := p.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save noise profile: %w", err)
	}
	logger.Debug("saved %d noise words for %s", len(profile.NoiseWords), businessID)
	return chunks, nil
}

func (p *Processor) extractorFor(ctx context.Context, businessID string) (*Extractor, error) {
	if !p.seedFromProfile || p.profiles == nil || businessID == "" {
		return p.extractor, nil
	}
	profile, err := p.profiles.Get(ctx, businessID)
	if errors.Is(err, domain.ErrNotFound) {
		return p.extractor, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load noise profile: %w", err)
	}
	return p.extractor.WithNoiseWords(profile.NoiseWords), nil
}

func (p *Processor) score(ctx context.Context, text string) (domain.Sentiment, error) {
	if p.scorer == nil {
		return domain.ClassifyPolarity(0), nil
	}
	return p.scorer.Score(ctx, text)
}

// keepSentences trims sentences and drops those of one character or less.
func keepSentences(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); len(s) > 1 {
			out = append(out, s)
		}
	}
	return out
}
