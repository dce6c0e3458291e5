// Package gcnl binds the annotator and sentiment ports to Google Cloud
// Natural Language. Syntax and entities come from the v1 API, which is the
// only version with part-of-speech tagging; sentiment comes from v2.
package gcnl

import (
	"context"
	"fmt"

	languagev1 "cloud.google.com/go/language/apiv1"
	"cloud.google.com/go/language/apiv1/languagepb"
	languagev2 "cloud.google.com/go/language/apiv2"
	languagepbv2 "cloud.google.com/go/language/apiv2/languagepb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

// syntaxClient is the subset of the v1 client the annotator uses.
type syntaxClient interface {
	AnnotateText(ctx context.Context, req *languagepb.AnnotateTextRequest, opts ...gax.CallOption) (*languagepb.AnnotateTextResponse, error)
	Close() error
}

// sentimentClient is the subset of the v2 client the scorer uses.
type sentimentClient interface {
	AnalyzeSentiment(ctx context.Context, req *languagepbv2.AnalyzeSentimentRequest, opts ...gax.CallOption) (*languagepbv2.AnalyzeSentimentResponse, error)
	Close() error
}

// Config holds Cloud Natural Language client configuration.
type Config struct {
	// CredentialsFile is a service-account JSON key.
	// Empty uses application default credentials.
	CredentialsFile string

	// Language is the BCP-47 document language. Empty lets the API detect it.
	Language string
}

func (c Config) options() []option.ClientOption {
	if c.CredentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(c.CredentialsFile)}
}

func newSyntaxClient(ctx context.Context, cfg Config) (syntaxClient, error) {
	c, err := languagev1.NewClient(ctx, cfg.options()...)
	if err != nil {
		return nil, fmt.Errorf("gcnl: create v1 client: %w", err)
	}
	return c, nil
}

func newSentimentClient(ctx context.Context, cfg Config) (sentimentClient, error) {
	c, err := languagev2.NewClient(ctx, cfg.options()...)
	if err != nil {
		return nil, fmt.Errorf("gcnl: create v2 client: %w", err)
	}
	return c, nil
}
