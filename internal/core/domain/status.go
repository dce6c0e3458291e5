package domain

import "time"

// ProcessingState is the lifecycle state of a document.
type ProcessingState string

// Processing states.
const (
	StateProcessing ProcessingState = "processing"
	StateCompleted  ProcessingState = "completed"
	StateFailed     ProcessingState = "failed"
)

// IsTerminal returns true once the document will not change state again.
func (s ProcessingState) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed
}

// DocumentStatus records the outcome of processing a document.
type DocumentStatus struct {
	DocumentID string          `json:"document_id"`
	RunID      string          `json:"run_id"`
	State      ProcessingState `json:"state"`
	Attempts   int             `json:"attempts"`
	ChunkCount int             `json:"chunk_count"`
	Error      string          `json:"error,omitempty"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
