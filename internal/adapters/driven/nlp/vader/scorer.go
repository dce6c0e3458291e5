// Package vader scores sentiment with the VADER lexicon.
package vader

import (
	"context"

	"github.com/jonreiter/govader"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
)

// Ensure Scorer implements the interface.
var _ driven.SentimentScorer = (*Scorer)(nil)

// Scorer uses VADER's compound score, already in [-1, 1], as polarity.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// New loads the VADER lexicon.
func New() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the polarity of text.
func (s *Scorer) Score(ctx context.Context, text string) (domain.Sentiment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Sentiment{}, err
	}
	scores := s.analyzer.PolarityScores(text)
	return domain.ClassifyPolarity(scores.Compound), nil
}
