package ai

import (
	"context"
	"fmt"

	"github.com/custodia-labs/textprep/internal/adapters/driven/nlp/gcnl"
	"github.com/custodia-labs/textprep/internal/adapters/driven/nlp/prose"
	"github.com/custodia-labs/textprep/internal/adapters/driven/nlp/vader"
	"github.com/custodia-labs/textprep/internal/adapters/driven/tokenizer/tiktoken"
	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
	"github.com/custodia-labs/textprep/internal/enginepool"
)

// Engines are loaded once per configuration and shared by every document.
var (
	annotators = enginepool.New[domain.AnnotatorSettings, driven.LinguisticAnnotator]()
	scorers    = enginepool.New[scorerKey, driven.SentimentScorer]()
	tokenizers = enginepool.New[string, driven.Tokenizer]()
)

// scorerKey includes annotator settings because the cloud scorer shares
// its credentials and language.
type scorerKey struct {
	Sentiment domain.SentimentSettings
	Annotator domain.AnnotatorSettings
}

// CreateAnnotator returns the shared annotator for settings.
func CreateAnnotator(ctx context.Context, settings domain.AnnotatorSettings) (driven.LinguisticAnnotator, error) {
	return annotators.Get(settings, func() (driven.LinguisticAnnotator, error) {
		switch settings.Backend {
		case domain.AnnotatorProse, "":
			return prose.New(), nil
		case domain.AnnotatorGCNL:
			return gcnl.NewAnnotator(ctx, gcnl.Config{
				CredentialsFile: settings.CredentialsFile,
				Language:        settings.Language,
			})
		default:
			return nil, fmt.Errorf("%w: annotator backend %s", domain.ErrUnsupportedType, settings.Backend)
		}
	})
}

// CreateSentimentScorer returns the shared scorer for settings. The cloud
// scorer reuses the annotator credentials.
func CreateSentimentScorer(ctx context.Context, settings domain.SentimentSettings, annotator domain.AnnotatorSettings) (driven.SentimentScorer, error) {
	key := scorerKey{Sentiment: settings}
	if settings.Backend == domain.SentimentGCNL {
		key.Annotator = annotator
	}
	return scorers.Get(key, func() (driven.SentimentScorer, error) {
		switch settings.Backend {
		case domain.SentimentVADER, "":
			return vader.New(), nil
		case domain.SentimentGCNL:
			return gcnl.NewScorer(ctx, gcnl.Config{
				CredentialsFile: annotator.CredentialsFile,
				Language:        annotator.Language,
			})
		default:
			return nil, fmt.Errorf("%w: sentiment backend %s", domain.ErrUnsupportedType, settings.Backend)
		}
	})
}

// CreateTokenizer returns the shared tokenizer for an encoding name.
func CreateTokenizer(encoding string) (driven.Tokenizer, error) {
	if encoding == "" {
		encoding = tiktoken.DefaultEncoding
	}
	return tokenizers.Get(encoding, func() (driven.Tokenizer, error) {
		return tiktoken.New(encoding)
	})
}
