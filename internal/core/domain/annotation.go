package domain

// TaggedToken is a word with its universal part-of-speech tag.
type TaggedToken struct {
	Word string `json:"word"`
	POS  POS    `json:"pos"`
}

// NamedEntity is an entity mention with its label.
type NamedEntity struct {
	Text  string      `json:"text"`
	Label EntityLabel `json:"label"`
}

// Annotation is what a linguistic annotator reports for one text.
// Tokens exclude punctuation.
type Annotation struct {
	Sentences []string      `json:"sentences"`
	Tokens    []TaggedToken `json:"pos_tags"`
	Entities  []NamedEntity `json:"named_entities"`
}
