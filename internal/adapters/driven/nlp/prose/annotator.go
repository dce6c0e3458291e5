// Package prose annotates text in process with the prose NLP library.
package prose

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
)

// Ensure Annotator implements the interface.
var _ driven.LinguisticAnnotator = (*Annotator)(nil)

// Annotator runs prose's segmenter, tagger and entity extractor.
// It holds no mutable state and is safe for concurrent use.
type Annotator struct{}

// New creates a prose annotator.
func New() *Annotator {
	return &Annotator{}
}

// Annotate segments, tags and extracts entities from text.
func (a *Annotator) Annotate(ctx context.Context, text string) (*domain.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(true),
		prose.WithTagging(true),
		prose.WithExtraction(true),
	)
	if err != nil {
		return nil, fmt.Errorf("prose: %w", err)
	}

	ann := &domain.Annotation{}
	for _, s := range doc.Sentences() {
		ann.Sentences = append(ann.Sentences, s.Text)
	}
	for _, tok := range doc.Tokens() {
		pos := UniversalTag(tok.Tag)
		if pos == domain.POSPunct {
			continue
		}
		ann.Tokens = append(ann.Tokens, domain.TaggedToken{Word: tok.Text, POS: pos})
	}
	for _, ent := range doc.Entities() {
		ann.Entities = append(ann.Entities, domain.NamedEntity{
			Text:  ent.Text,
			Label: domain.EntityLabel(strings.ToUpper(ent.Label)),
		})
	}
	return ann, nil
}

// UniversalTag maps a Penn Treebank tag onto the universal tag set.
func UniversalTag(penn string) domain.POS {
	switch penn {
	case "NN", "NNS":
		return domain.POSNoun
	case "NNP", "NNPS":
		return domain.POSPropn
	case "CD":
		return domain.POSNum
	case "VB", "VBD", "VBG", "VBN", "VBP", "VBZ", "MD":
		return domain.POSVerb
	case "JJ", "JJR", "JJS":
		return domain.POSAdj
	case ".", ",", ":", "``", "''", "(", ")", "-LRB-", "-RRB-", "#", "HYPH", "NFP":
		return domain.POSPunct
	default:
		return domain.POSOther
	}
}
