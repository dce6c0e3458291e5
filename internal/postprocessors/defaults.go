package postprocessors

import (
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
	"github.com/custodia-labs/textprep/internal/postprocessors/chunker"
	"github.com/custodia-labs/textprep/internal/postprocessors/enricher"
	"github.com/custodia-labs/textprep/internal/postprocessors/metadata"
)

// Deps are the collaborators the built-in processors are built around.
// Embedder, Scorer and Profiles may be nil.
type Deps struct {
	Tokenizer driven.Tokenizer
	Annotator driven.LinguisticAnnotator
	Scorer    driven.SentimentScorer
	Profiles  driven.ProfileStore
	Embedder  driven.EmbeddingService
}

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry, deps Deps) {
	r.Register("chunker", func(cfg map[string]any) (driven.PostProcessor, error) {
		return buildChunker(deps.Tokenizer, cfg)
	})
	r.Register("metadata", func(cfg map[string]any) (driven.PostProcessor, error) {
		return buildMetadata(deps, cfg)
	})
	r.Register("enricher", func(cfg map[string]any) (driven.PostProcessor, error) {
		return buildEnricher(deps.Embedder, cfg), nil
	})
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - chunk_size (int): Tokens per chunk (default: 512)
//   - overlap (int): Overlapping tokens between chunks (default: 50)
func buildChunker(tok driven.Tokenizer, cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if size, ok := getInt(cfg, "chunk_size"); ok {
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if overlap, ok := getInt(cfg, "overlap"); ok {
		opts = append(opts, chunker.WithOverlap(overlap))
	}

	return chunker.New(tok, opts...)
}

// buildMetadata creates the metadata processor.
// Supported config keys:
//   - max_noise_words (int): Size of the learnt noise profile (default: 50)
//   - seed_from_profile (bool): Treat stored noise words as stopwords
//   - extra_stopwords ([]string): Added to the built-in stopwords
func buildMetadata(deps Deps, cfg map[string]any) (driven.PostProcessor, error) {
	opts := []metadata.Option{
		metadata.WithSentimentScorer(deps.Scorer),
		metadata.WithProfileStore(deps.Profiles),
	}

	if n, ok := getInt(cfg, "max_noise_words"); ok && n > 0 {
		opts = append(opts, metadata.WithMaxNoiseWords(n))
	}
	if seed, ok := cfg["seed_from_profile"].(bool); ok {
		opts = append(opts, metadata.WithSeedFromProfile(seed))
	}
	if words := getStrings(cfg, "extra_stopwords"); len(words) > 0 {
		opts = append(opts, metadata.WithExtraStopwords(words))
	}

	return metadata.New(deps.Annotator, opts...)
}

// buildEnricher creates the embedding enricher.
// Supported config keys:
//   - batch_size (int): Texts per embedding round (default: 10)
func buildEnricher(embedder driven.EmbeddingService, cfg map[string]any) driven.PostProcessor {
	var opts []enricher.Option
	if n, ok := getInt(cfg, "batch_size"); ok {
		opts = append(opts, enricher.WithBatchSize(n))
	}
	return enricher.New(embedder, opts...)
}

// getInt safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getInt(cfg map[string]any, key string) (int, bool) {
	val, ok := cfg[key]
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// getStrings extracts a string list from []string or []any.
func getStrings(cfg map[string]any, key string) []string {
	switch v := cfg[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
