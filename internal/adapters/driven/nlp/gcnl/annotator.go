package gcnl

import (
	"context"
	"fmt"

	"cloud.google.com/go/language/apiv1/languagepb"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
)

// Ensure Annotator implements the interface.
var _ driven.LinguisticAnnotator = (*Annotator)(nil)

// Annotator calls AnnotateText with syntax and entity extraction.
type Annotator struct {
	client   syntaxClient
	language string
}

// NewAnnotator dials the v1 API.
func NewAnnotator(ctx context.Context, cfg Config) (*Annotator, error) {
	c, err := newSyntaxClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Annotator{client: c, language: cfg.Language}, nil
}

// Annotate sends one AnnotateText request for text.
func (a *Annotator) Annotate(ctx context.Context, text string) (*domain.Annotation, error) {
	resp, err := a.client.AnnotateText(ctx, &languagepb.AnnotateTextRequest{
		Document: &languagepb.Document{
			Source:   &languagepb.Document_Content{Content: text},
			Type:     languagepb.Document_PLAIN_TEXT,
			Language: a.language,
		},
		Features: &languagepb.AnnotateTextRequest_Features{
			ExtractSyntax:   true,
			ExtractEntities: true,
		},
		EncodingType: languagepb.EncodingType_UTF8,
	})
	if err != nil {
		return nil, fmt.Errorf("gcnl: annotate text: %w", err)
	}

	ann := &domain.Annotation{}
	for _, s := range resp.GetSentences() {
		ann.Sentences = append(ann.Sentences, s.GetText().GetContent())
	}
	for _, tok := range resp.GetTokens() {
		pos := universalTag(tok.GetPartOfSpeech())
		if pos == domain.POSPunct {
			continue
		}
		ann.Tokens = append(ann.Tokens, domain.TaggedToken{Word: tok.GetText().GetContent(), POS: pos})
	}
	for _, ent := range resp.GetEntities() {
		ann.Entities = append(ann.Entities, domain.NamedEntity{
			Text:  ent.GetName(),
			Label: entityLabel(ent.GetType()),
		})
	}
	return ann, nil
}

// Close releases the client connection.
func (a *Annotator) Close() error {
	return a.client.Close()
}

func universalTag(pos *languagepb.PartOfSpeech) domain.POS {
	switch pos.GetTag() {
	case languagepb.PartOfSpeech_NOUN:
		if pos.GetProper() == languagepb.PartOfSpeech_PROPER {
			return domain.POSPropn
		}
		return domain.POSNoun
	case languagepb.PartOfSpeech_NUM:
		return domain.POSNum
	case languagepb.PartOfSpeech_VERB:
		return domain.POSVerb
	case languagepb.PartOfSpeech_ADJ:
		return domain.POSAdj
	case languagepb.PartOfSpeech_PUNCT:
		return domain.POSPunct
	default:
		return domain.POSOther
	}
}

// entityLabel maps Cloud NL entity types onto OntoNotes labels.
func entityLabel(t languagepb.Entity_Type) domain.EntityLabel {
	switch t {
	case languagepb.Entity_ORGANIZATION:
		return domain.EntityOrg
	case languagepb.Entity_PERSON:
		return domain.EntityPerson
	case languagepb.Entity_CONSUMER_GOOD:
		return domain.EntityProduct
	case languagepb.Entity_LOCATION, languagepb.Entity_ADDRESS:
		return domain.EntityGPE
	case languagepb.Entity_DATE:
		return domain.EntityDate
	case languagepb.Entity_PRICE:
		return domain.EntityMoney
	case languagepb.Entity_NUMBER:
		return domain.EntityCardinal
	default:
		return domain.EntityLabel(t.String())
	}
}
