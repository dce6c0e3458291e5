package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var _ Extractor = Markdown{}

var (
	mdFence      = regexp.MustCompile("(?s)```.*?```")
	mdInlineCode = regexp.MustCompile("`([^`]+)`")
	mdImage      = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	mdLink       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	mdHeading    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdEmphasis   = regexp.MustCompile(`(\*\*|__|\*)([^*_]+)(\*\*|__|\*)`)
	mdQuote      = regexp.MustCompile(`(?m)^>\s*`)
	mdRule       = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	mdBullet     = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	mdNumbered   = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	mdBlankRuns  = regexp.MustCompile(`\n{3,}`)
)

// Markdown strips formatting and keeps the prose. Code blocks are dropped.
type Markdown struct{}

// Extensions returns the handled extensions.
func (Markdown) Extensions() []string {
	return []string{"md", "markdown"}
}

// Extract uses the first level-one heading as the title.
func (Markdown) Extract(data []byte) (*Result, error) {
	if !utf8.Valid(data) {
		return nil, invalid("markdown", nil)
	}
	content := string(data)

	var title string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			title = strings.TrimSpace(strings.TrimPrefix(line, "#"))
			break
		}
	}

	content = mdFence.ReplaceAllString(content, "")
	content = mdImage.ReplaceAllString(content, "")
	content = mdLink.ReplaceAllString(content, "$1")
	content = mdInlineCode.ReplaceAllString(content, "$1")
	content = mdHeading.ReplaceAllString(content, "")
	content = mdEmphasis.ReplaceAllString(content, "$2")
	content = mdQuote.ReplaceAllString(content, "")
	content = mdRule.ReplaceAllString(content, "")
	content = mdBullet.ReplaceAllString(content, "")
	content = mdNumbered.ReplaceAllString(content, "")
	content = mdBlankRuns.ReplaceAllString(content, "\n\n")

	return &Result{Title: title, Text: strings.TrimSpace(content)}, nil
}
