package domain

import "time"

// NoiseProfile is the set of high-frequency, low-information words learnt
// for one tenant. It is overwritten once per processed document.
type NoiseProfile struct {
	BusinessID  string    `json:"business_id"`
	NoiseWords  []string  `json:"noise_words"`
	LastUpdated time.Time `json:"last_updated"`
}

// Contains reports whether word is a noise word.
func (p *NoiseProfile) Contains(word string) bool {
	if p == nil {
		return false
	}
	for _, w := range p.NoiseWords {
		if w == word {
			return true
		}
	}
	return false
}
