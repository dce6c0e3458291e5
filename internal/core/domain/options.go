package domain

// NormaliseOptions controls the optional stages of text normalisation.
type NormaliseOptions struct {
	// ConvertWords turns number words and digit+multiplier phrases into digits.
	ConvertWords bool `json:"convert_words"`

	// RemoveEmojis deletes symbols outside the punctuation allowlist.
	// When false, emoji runs become an <EMOJI> placeholder.
	RemoveEmojis bool `json:"remove_emojis"`

	// ReplaceWithPlaceholders masks PII (PAN, Aadhaar, accounts, phones,
	// emails, URLs, ...) with placeholder tokens.
	ReplaceWithPlaceholders bool `json:"replace_with_placeholders"`
}

// DefaultNormaliseOptions returns the options used when none are given.
func DefaultNormaliseOptions() NormaliseOptions {
	return NormaliseOptions{
		ConvertWords:            true,
		RemoveEmojis:            true,
		ReplaceWithPlaceholders: false,
	}
}
