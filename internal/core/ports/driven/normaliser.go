package driven

import "github.com/custodia-labs/textprep/internal/core/domain"

// Normaliser rewrites raw text into canonical text.
// Implementations must be safe for concurrent use.
type Normaliser interface {
	// Normalise returns the canonical form of text.
	// Only malformed encoding fails, with domain.ErrNormalisation.
	Normalise(text string, opts domain.NormaliseOptions) (string, error)
}
