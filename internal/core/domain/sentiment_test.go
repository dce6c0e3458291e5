package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPolarity(t *testing.T) {
	tests := []struct {
		polarity float64
		label    SentimentLabel
	}{
		{0.9, SentimentPositive},
		{0.21, SentimentPositive},
		{0.2, SentimentNeutral},
		{0, SentimentNeutral},
		{-0.2, SentimentNeutral},
		{-0.21, SentimentNegative},
		{-1, SentimentNegative},
	}

	for _, tt := range tests {
		got := ClassifyPolarity(tt.polarity)
		assert.Equal(t, tt.label, got.Label, "polarity %v", tt.polarity)
		assert.Equal(t, tt.polarity, got.Polarity)
	}
}

func TestChunk_Stamp(t *testing.T) {
	at := time.Date(2024, 2, 1, 10, 0, 0, 0, time.FixedZone("IST", 19800))
	c := Chunk{ID: 1}

	c.Stamp(ProcessingContext{
		BusinessID:       "biz-1",
		BusinessRegion:   "ap-south-1",
		SubscriptionType: "pro",
		DataType:         "unstructured",
		FileFormat:       "txt",
	}, "run-1", at)

	assert.Equal(t, "run-1", c.RunID)
	assert.Equal(t, "biz-1", c.BusinessID)
	assert.Equal(t, "ap-south-1", c.BusinessRegion)
	assert.Equal(t, "pro", c.SubscriptionType)
	assert.Equal(t, "unstructured", c.DataType)
	assert.Equal(t, "txt", c.FileFormat)
	assert.Equal(t, time.UTC, c.Timestamp.Location())
	assert.True(t, at.Equal(c.Timestamp))
}

func TestTokenSpan_Len(t *testing.T) {
	assert.Equal(t, 50, TokenSpan{Start: 462, End: 512}.Len())
}

func TestNoiseProfile_Contains(t *testing.T) {
	p := &NoiseProfile{NoiseWords: []string{"order", "please"}}
	assert.True(t, p.Contains("order"))
	assert.False(t, p.Contains("invoice"))

	var nilProfile *NoiseProfile
	assert.False(t, nilProfile.Contains("order"))
}
