package vader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

func TestScorer_Score(t *testing.T) {
	s := New()

	tests := []struct {
		text string
		want domain.SentimentLabel
	}{
		{"The delivery was great and the staff were wonderful!", domain.SentimentPositive},
		{"Terrible service, the product was awful and broken.", domain.SentimentNegative},
		{"The invoice lists the order number.", domain.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			got, err := s.Score(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Label)
			assert.GreaterOrEqual(t, got.Polarity, -1.0)
			assert.LessOrEqual(t, got.Polarity, 1.0)
		})
	}
}
