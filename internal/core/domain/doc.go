// Package domain defines the core entities of the textprep pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: normalised text plus the context it was submitted with
//   - Chunk: a token-bounded slice of a document, annotated and embedded
//   - Metadata: categorised, ranked keyword sets extracted from a chunk
//   - NoiseProfile: per-tenant high-frequency words learnt from documents
//   - Annotation: what a linguistic annotator reports for a piece of text
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
