package domain

// Bucket names a Metadata category.
type Bucket int

// Metadata buckets. BucketNone marks tags that are not collected.
const (
	BucketNone Bucket = iota
	BucketEntities
	BucketLocations
	BucketDates
	BucketNumbers
	BucketKeywords
)

// String returns the JSON field name of the bucket.
func (b Bucket) String() string {
	switch b {
	case BucketEntities:
		return "entities"
	case BucketLocations:
		return "locations"
	case BucketDates:
		return "dates"
	case BucketNumbers:
		return "numbers"
	case BucketKeywords:
		return "keywords"
	default:
		return "none"
	}
}

// EntityLabel is a named-entity class (OntoNotes naming).
type EntityLabel string

// Entity labels with a dedicated route.
const (
	EntityOrg      EntityLabel = "ORG"
	EntityPerson   EntityLabel = "PERSON"
	EntityProduct  EntityLabel = "PRODUCT"
	EntityGPE      EntityLabel = "GPE"
	EntityDate     EntityLabel = "DATE"
	EntityMoney    EntityLabel = "MONEY"
	EntityCardinal EntityLabel = "CARDINAL"
)

// Route returns the bucket and confidence score for the label.
// Unknown labels land in entities with a low score.
func (l EntityLabel) Route() (Bucket, float64) {
	switch l {
	case EntityOrg, EntityPerson, EntityProduct:
		return BucketEntities, 0.9
	case EntityGPE:
		return BucketLocations, 0.85
	case EntityDate:
		return BucketDates, 0.8
	case EntityMoney:
		return BucketNumbers, 0.7
	case EntityCardinal:
		return BucketNumbers, 0.6
	default:
		return BucketEntities, 0.5
	}
}

// POS is a universal part-of-speech tag.
type POS string

// Tags the extractor and annotators care about.
const (
	POSNoun  POS = "NOUN"
	POSPropn POS = "PROPN"
	POSNum   POS = "NUM"
	POSVerb  POS = "VERB"
	POSAdj   POS = "ADJ"
	POSPunct POS = "PUNCT"
	POSOther POS = "X"
)

// Route returns the bucket and score for the tag.
// BucketNone means the token is not collected.
func (p POS) Route() (Bucket, float64) {
	switch p {
	case POSNoun:
		return BucketKeywords, 0.6
	case POSPropn:
		return BucketKeywords, 0.7
	case POSNum:
		return BucketNumbers, 0.5
	default:
		return BucketNone, 0
	}
}

// RankedKeyword is a keyword with the confidence of the source that produced it.
type RankedKeyword struct {
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
}

// Metadata is the categorised keyword set of one chunk.
// Bucket slices are sorted and free of duplicates.
type Metadata struct {
	Entities       []string        `json:"entities"`
	Locations      []string        `json:"locations"`
	Dates          []string        `json:"dates"`
	Numbers        []string        `json:"numbers"`
	Keywords       []string        `json:"keywords"`
	All            []string        `json:"all"`
	RankedKeywords []RankedKeyword `json:"ranked_keywords"`
}

// Bucket returns the slice for b.
func (m Metadata) Bucket(b Bucket) []string {
	switch b {
	case BucketEntities:
		return m.Entities
	case BucketLocations:
		return m.Locations
	case BucketDates:
		return m.Dates
	case BucketNumbers:
		return m.Numbers
	case BucketKeywords:
		return m.Keywords
	default:
		return nil
	}
}
