package metadata

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed stopwords.yaml
var stopwordsYAML []byte

// lexicon is the on-disk shape of a stopword list.
type lexicon struct {
	Language string   `yaml:"language"`
	Words    []string `yaml:"words"`
}

// defaultStopwords is parsed once at init; a broken embedded file is a build defect.
var defaultStopwords = mustParseLexicon(stopwordsYAML)

func parseLexicon(data []byte) ([]string, error) {
	var lex lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parse stopwords: %w", err)
	}
	words := make([]string, 0, len(lex.Words))
	for _, w := range lex.Words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			words = append(words, w)
		}
	}
	return words, nil
}

func mustParseLexicon(data []byte) []string {
	words, err := parseLexicon(data)
	if err != nil {
		panic(err)
	}
	return words
}

// DefaultStopwords returns a copy of the built-in English stopword list.
func DefaultStopwords() []string {
	return append([]string(nil), defaultStopwords...)
}
