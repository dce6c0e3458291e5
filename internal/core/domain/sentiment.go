package domain

// SentimentLabel is the coarse polarity class of a text.
type SentimentLabel string

// Sentiment labels.
const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
)

// Polarity thresholds. Values strictly beyond them leave Neutral.
const (
	PositiveThreshold = 0.2
	NegativeThreshold = -0.2
)

// Sentiment is a label with its polarity in [-1, 1].
type Sentiment struct {
	Label    SentimentLabel `json:"sentiment"`
	Polarity float64        `json:"polarity"`
}

// ClassifyPolarity maps a polarity score onto a Sentiment.
func ClassifyPolarity(polarity float64) Sentiment {
	switch {
	case polarity > PositiveThreshold:
		return Sentiment{Label: SentimentPositive, Polarity: polarity}
	case polarity < NegativeThreshold:
		return Sentiment{Label: SentimentNegative, Polarity: polarity}
	default:
		return Sentiment{Label: SentimentNeutral, Polarity: polarity}
	}
}
