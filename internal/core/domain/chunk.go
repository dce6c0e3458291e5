package domain

import "time"

// TokenSpan is the half-open token range [Start, End) a chunk covers.
type TokenSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of tokens in the span.
func (s TokenSpan) Len() int {
	return s.End - s.Start
}

// Chunk is a token-bounded slice of a document's normalised text.
// The chunker creates it; metadata extraction and embedding enrichment
// fill it in place. Chunks are never reordered.
type Chunk struct {
	// ID is 1-based and increases within one document only.
	ID int `json:"id"`

	// DocumentID links to the parent document.
	DocumentID string `json:"document_id"`

	// RunID identifies the processing attempt that produced the chunk.
	RunID string `json:"run_id"`

	// Text is the decoded token window.
	Text string `json:"text"`

	// Sentences are the annotator's sentence boundaries within Text.
	Sentences []string `json:"sentences"`

	// TokenSpan locates the chunk in the document's token stream.
	TokenSpan TokenSpan `json:"token_span"`

	// Metadata holds the categorised keywords.
	Metadata Metadata `json:"indexed_metadata"`

	// Sentiment is the chunk's polarity.
	Sentiment Sentiment `json:"sentiment_analysis"`

	// TextHash is the hex SHA-256 of the joined sentences at embedding time.
	TextHash string `json:"text_hash,omitempty"`

	// Embedding is the vector representation. Nil until enriched.
	Embedding []float32 `json:"embedding,omitempty"`

	BusinessID       string    `json:"business_id,omitempty"`
	BusinessRegion   string    `json:"business_region,omitempty"`
	SubscriptionType string    `json:"subscription_type,omitempty"`
	DataType         string    `json:"data_type,omitempty"`
	FileFormat       string    `json:"file_format,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// Stamp copies the processing context onto the chunk.
func (c *Chunk) Stamp(pc ProcessingContext, runID string, at time.Time) {
	c.RunID = runID
	c.BusinessID = pc.BusinessID
	c.BusinessRegion = pc.BusinessRegion
	c.SubscriptionType = pc.SubscriptionType
	c.DataType = pc.DataType
	c.FileFormat = pc.FileFormat
	c.Timestamp = at.UTC()
}

// Embedding is one result of a batch embedding call.
// Input echoes the text the vector was computed for.
type Embedding struct {
	Input  string
	Vector []float32
}
