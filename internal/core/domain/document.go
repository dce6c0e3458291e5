package domain

import "time"

// ProcessingContext describes where a document came from and who owns it.
// Its fields are copied onto every chunk the document produces.
type ProcessingContext struct {
	// BusinessID identifies the tenant. Noise profiles are keyed by it.
	BusinessID string `json:"business_id,omitempty"`

	// BusinessRegion is the tenant's region.
	BusinessRegion string `json:"business_region,omitempty"`

	// SubscriptionType is the tenant's plan.
	SubscriptionType string `json:"subscription_type,omitempty"`

	// DataType classifies the content (e.g. "unstructured").
	DataType string `json:"data_type,omitempty"`

	// FileFormat is the source file format (e.g. "txt").
	FileFormat string `json:"file_format,omitempty"`

	// Source is the original location (file path, URL, etc).
	Source string `json:"source,omitempty"`
}

// Document is normalised text on its way through the post-processor pipeline.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// RunID identifies this processing attempt.
	RunID string

	// Content is the full normalised text before chunking.
	Content string

	// Context is the submission context.
	Context ProcessingContext
}

// ProcessRequest is the input to one document-processing run.
type ProcessRequest struct {
	// DocumentID is optional. A new ID is generated when empty.
	DocumentID string `json:"document_id,omitempty"`

	// Text is the raw, unnormalised input.
	Text string `json:"text"`

	// Options control normalisation.
	Options NormaliseOptions `json:"options"`

	// Context is stamped onto every chunk.
	Context ProcessingContext `json:"context"`
}

// ProcessResult is the output of a successful run.
type ProcessResult struct {
	DocumentID string        `json:"document_id"`
	RunID      string        `json:"run_id"`
	Normalised string        `json:"normalised"`
	Chunks     []Chunk       `json:"chunks"`
	Duration   time.Duration `json:"duration"`
}
