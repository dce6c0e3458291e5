package domain

import "errors"

// Domain errors represent pipeline failures.
// Adapters wrap them with context; callers match with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown backend or provider name.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmbeddingUnavailable indicates no embedding service is configured.
	// The enrichment stage is skipped without one.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// Pipeline Errors.

	// ErrNormalisation indicates the text could not be brought into valid UTF-8.
	// It is fatal for the document.
	ErrNormalisation = errors.New("normalisation failed")

	// ErrInvalidWindow indicates a chunk window that would never advance.
	// It is reported when the chunker is configured, not while chunking.
	ErrInvalidWindow = errors.New("invalid chunk window")

	// ErrAnnotation indicates the linguistic annotator failed.
	ErrAnnotation = errors.New("annotation failed")

	// Embedding Errors.

	// ErrEmbeddingCountMismatch indicates a batch returned a different number
	// of embeddings than texts sent.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")

	// ErrIntegrityMismatch indicates the chunk text changed, or the response
	// belongs to a different text, between hashing and embedding.
	ErrIntegrityMismatch = errors.New("embedding integrity mismatch")

	// ErrInvalidEmbeddingFormat indicates an empty or non-finite vector.
	ErrInvalidEmbeddingFormat = errors.New("invalid embedding format")
)

// IsPermanent reports whether err cannot succeed on retry.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrNormalisation) ||
		errors.Is(err, ErrInvalidWindow) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrUnsupportedType)
}
