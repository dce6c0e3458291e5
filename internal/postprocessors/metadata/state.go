package metadata

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// DefaultMaxNoiseWords is the size of the learnt noise profile.
const DefaultMaxNoiseWords = 50

// DocumentState accumulates token frequencies and entity mentions across
// the chunks of one document. It is not safe for concurrent use.
type DocumentState struct {
	freq     map[string]int
	order    map[string]int
	entities map[string]struct{}
}

// NewDocumentState creates empty cross-chunk state.
func NewDocumentState() *DocumentState {
	return &DocumentState{
		freq:     make(map[string]int),
		order:    make(map[string]int),
		entities: make(map[string]struct{}),
	}
}

// Observe adds one chunk's annotation to the document totals.
func (s *DocumentState) Observe(ann *domain.Annotation) {
	if ann == nil {
		return
	}
	for _, ent := range ann.Entities {
		s.entities[normaliseToken(ent.Text)] = struct{}{}
	}
	for _, tok := range ann.Tokens {
		w := strings.ToLower(strings.TrimSpace(tok.Word))
		if tok.POS == domain.POSPunct || isPunct(w) || utf8.RuneCountInString(w) <= 2 {
			continue
		}
		if _, ok := s.order[w]; !ok {
			s.order[w] = len(s.order)
		}
		s.freq[w]++
	}
}

func isPunct(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// Finalize returns the profile made of the limit most frequent tokens that
// were never recognised as entities. Ties keep first-seen order.
func (s *DocumentState) Finalize(businessID string, now time.Time, limit int) domain.NoiseProfile {
	if limit <= 0 {
		limit = DefaultMaxNoiseWords
	}

	words := make([]string, 0, len(s.freq))
	for w := range s.freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		a, b := words[i], words[j]
		if s.freq[a] != s.freq[b] {
			return s.freq[a] > s.freq[b]
		}
		return s.order[a] < s.order[b]
	})
	if len(words) > limit {
		words = words[:limit]
	}

	noise := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := s.entities[w]; !ok {
			noise = append(noise, w)
		}
	}
	sort.Strings(noise)

	return domain.NoiseProfile{
		BusinessID:  businessID,
		NoiseWords:  noise,
		LastUpdated: now.UTC(),
	}
}
