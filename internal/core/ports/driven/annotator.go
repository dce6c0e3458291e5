package driven

import (
	"context"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// LinguisticAnnotator segments text into sentences and reports
// part-of-speech tags (punctuation excluded) and named entities.
type LinguisticAnnotator interface {
	Annotate(ctx context.Context, text string) (*domain.Annotation, error)
}

// SentimentScorer scores the polarity of a text.
// The returned label follows domain.ClassifyPolarity.
type SentimentScorer interface {
	Score(ctx context.Context, text string) (domain.Sentiment, error)
}
