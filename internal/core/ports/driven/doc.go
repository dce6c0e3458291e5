// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to run:
//
//   - Normaliser: Turns raw text into canonical text
//   - Tokenizer: Encodes text into tokens for the chunker
//   - LinguisticAnnotator: Sentences, part-of-speech tags and entities
//   - SentimentScorer: Chunk polarity
//   - ChunkStore, StatusStore, ProfileStore: Persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - EmbeddingService: Without it, chunks are emitted without vectors.
//   - BatchEmbedder: Without it, texts are embedded one request at a time.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or postprocessor package
package driven
