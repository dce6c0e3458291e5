package gcnl

import (
	"context"
	"fmt"

	languagepb "cloud.google.com/go/language/apiv2/languagepb"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
)

// Ensure Scorer implements the interface.
var _ driven.SentimentScorer = (*Scorer)(nil)

// Scorer uses the document sentiment score as polarity.
type Scorer struct {
	client   sentimentClient
	language string
}

// NewScorer dials the v2 API.
func NewScorer(ctx context.Context, cfg Config) (*Scorer, error) {
	c, err := newSentimentClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Scorer{client: c, language: cfg.Language}, nil
}

// Score analyses the sentiment of text.
func (s *Scorer) Score(ctx context.Context, text string) (domain.Sentiment, error) {
	resp, err := s.client.AnalyzeSentiment(ctx, &languagepb.AnalyzeSentimentRequest{
		Document: &languagepb.Document{
			Source:       &languagepb.Document_Content{Content: text},
			Type:         languagepb.Document_PLAIN_TEXT,
			LanguageCode: s.language,
		},
		EncodingType: languagepb.EncodingType_UTF8,
	})
	if err != nil {
		return domain.Sentiment{}, fmt.Errorf("gcnl: analyze sentiment: %w", err)
	}
	return domain.ClassifyPolarity(float64(resp.GetDocumentSentiment().GetScore())), nil
}

// Close releases the client connection.
func (s *Scorer) Close() error {
	return s.client.Close()
}
