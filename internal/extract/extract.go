// Package extract pulls plain text out of the file formats textprep accepts
// before the text reaches the normaliser.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

// Result is the text extracted from one file.
type Result struct {
	Title  string
	Text   string
	Format string
}

// Extractor turns the raw bytes of one file format into text.
type Extractor interface {
	// Extensions returns the lower-case extensions handled, without the dot.
	Extensions() []string

	// Extract returns the text and, when the format carries one, a title.
	// Malformed input fails with domain.ErrInvalidInput.
	Extract(data []byte) (*Result, error)
}

// Registry selects an extractor by file extension.
type Registry struct {
	byExt    map[string]Extractor
	fallback Extractor
}

// New creates a registry. Later extractors win on a shared extension.
// Unknown extensions fall back to plain text.
func New(extractors ...Extractor) *Registry {
	r := &Registry{
		byExt:    make(map[string]Extractor),
		fallback: PlainText{},
	}
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			r.byExt[strings.ToLower(ext)] = e
		}
	}
	return r
}

// Default returns a registry for every built-in format.
func Default() *Registry {
	return New(PlainText{}, Markdown{}, HTML{}, Email{}, DOCX{})
}

// Supports reports whether name has a dedicated extractor.
func (r *Registry) Supports(name string) bool {
	_, ok := r.byExt[Format(name)]
	return ok
}

// Extract converts data read from the file called name.
func (r *Registry) Extract(name string, data []byte) (*Result, error) {
	format := Format(name)
	e, ok := r.byExt[format]
	if !ok {
		e = r.fallback
	}

	res, err := e.Extract(data)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", name, err)
	}
	if res.Title == "" {
		res.Title = TitleFromName(name)
	}
	res.Format = format
	return res, nil
}

// ExtractFile reads and converts the file at path.
func (r *Registry) ExtractFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return r.Extract(path, data)
}

// Format returns the lower-cased extension of name, or "txt" when it has none.
func Format(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return "txt"
	}
	return strings.ToLower(ext)
}

// TitleFromName turns a file name into a readable title.
func TitleFromName(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.NewReplacer("_", " ", "-", " ").Replace(base)
}

func invalid(format string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: malformed %s", domain.ErrInvalidInput, format)
	}
	return fmt.Errorf("%w: malformed %s: %v", domain.ErrInvalidInput, format, err)
}

// compactLines trims every line and drops the empty ones.
func compactLines(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
