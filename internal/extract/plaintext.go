package extract

import "unicode/utf8"

var _ Extractor = PlainText{}

// PlainText passes text through unchanged. It is also the fallback.
type PlainText struct{}

// Extensions returns the handled extensions.
func (PlainText) Extensions() []string {
	return []string{"txt", "text", "log", "csv", "rtf"}
}

// Extract rejects content that is not valid UTF-8.
func (PlainText) Extract(data []byte) (*Result, error) {
	if !utf8.Valid(data) {
		return nil, invalid("text", nil)
	}
	return &Result{Text: string(data)}, nil
}
