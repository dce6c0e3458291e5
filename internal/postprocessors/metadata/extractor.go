// Package metadata turns linguistic annotations into categorised, ranked
// keyword sets and learns a per-tenant noise profile across a document.
package metadata

import (
	"regexp"
	"slices"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// nonWord matches what is stripped before tokens are compared.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// normaliseToken is the form used for deduplication and noise checks.
func normaliseToken(s string) string {
	return strings.ToLower(nonWord.ReplaceAllString(s, ""))
}

// Extractor buckets entities and part-of-speech tokens into Metadata.
// It holds no per-document state and is safe for concurrent use.
type Extractor struct {
	noise map[string]struct{}
}

// NewExtractor creates an extractor using the built-in stopwords plus extra.
func NewExtractor(extra ...string) *Extractor {
	e := &Extractor{noise: make(map[string]struct{}, len(defaultStopwords)+len(extra))}
	for _, w := range defaultStopwords {
		e.noise[w] = struct{}{}
	}
	for _, w := range extra {
		e.noise[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return e
}

// WithNoiseWords returns a copy of e that also treats words as noise.
func (e *Extractor) WithNoiseWords(words []string) *Extractor {
	c := &Extractor{noise: make(map[string]struct{}, len(e.noise)+len(words))}
	for w := range e.noise {
		c.noise[w] = struct{}{}
	}
	for _, w := range words {
		c.noise[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return c
}

// IsNoise reports whether token carries no keyword value: a stopword or
// learnt noise word, shorter than three runes, a run of three identical
// characters, or digits only.
func (e *Extractor) IsNoise(token string) bool {
	t := strings.ToLower(token)
	if _, ok := e.noise[t]; ok {
		return true
	}
	if utf8.RuneCountInString(t) < 3 {
		return true
	}
	return hasTripleRun(t) || isDigits(t)
}

func hasTripleRun(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run >= 3 {
				return true
			}
			continue
		}
		prev, run = r, 1
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// bucketSet collects unique surface forms per bucket.
type bucketSet map[domain.Bucket]map[string]struct{}

func (b bucketSet) add(bucket domain.Bucket, word string) {
	if b[bucket] == nil {
		b[bucket] = make(map[string]struct{})
	}
	b[bucket][word] = struct{}{}
}

func (b bucketSet) sorted(bucket domain.Bucket) []string {
	return sortedKeys(b[bucket])
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ExtractLocal builds the metadata of one annotated chunk.
// Entities claim tokens first; a part-of-speech token whose normalised
// form was already seen is dropped, so each token lands in one bucket.
func (e *Extractor) ExtractLocal(ann *domain.Annotation) domain.Metadata {
	buckets := bucketSet{}
	all := map[string]struct{}{}
	seen := map[string]struct{}{}
	var ranked []domain.RankedKeyword

	take := func(word string, bucket domain.Bucket, score float64) {
		buckets.add(bucket, word)
		all[word] = struct{}{}
		ranked = append(ranked, domain.RankedKeyword{Keyword: word, Score: score})
	}

	if ann == nil {
		ann = &domain.Annotation{}
	}

	for _, ent := range ann.Entities {
		text := strings.TrimSpace(ent.Text)
		norm := normaliseToken(text)
		if text == "" || e.IsNoise(norm) {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		bucket, score := ent.Label.Route()
		take(text, bucket, score)
		seen[norm] = struct{}{}
	}

	for _, tok := range ann.Tokens {
		word := strings.TrimSpace(tok.Word)
		bucket, score := domain.POS(strings.ToUpper(string(tok.POS))).Route()
		if word == "" || bucket == domain.BucketNone {
			continue
		}
		norm := normaliseToken(word)
		if _, dup := seen[norm]; dup || e.IsNoise(norm) {
			continue
		}
		take(word, bucket, score)
		seen[norm] = struct{}{}
	}

	slices.SortStableFunc(ranked, func(a, b domain.RankedKeyword) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	return domain.Metadata{
		Entities:       buckets.sorted(domain.BucketEntities),
		Locations:      buckets.sorted(domain.BucketLocations),
		Dates:          buckets.sorted(domain.BucketDates),
		Numbers:        buckets.sorted(domain.BucketNumbers),
		Keywords:       buckets.sorted(domain.BucketKeywords),
		All:            sortedKeys(all),
		RankedKeywords: ranked,
	}
}
