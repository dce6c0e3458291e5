package extract

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

var _ Extractor = HTML{}

// skippedElements contribute no text.
var skippedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "head": true, "svg": true, "template": true,
}

// lineBreakElements start a new line in the output.
var lineBreakElements = map[string]bool{
	"p": true, "div": true, "br": true, "hr": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "table": true, "section": true, "article": true,
}

// HTML extracts visible text from a page.
type HTML struct{}

// Extensions returns the handled extensions.
func (HTML) Extensions() []string {
	return []string{"html", "htm", "xhtml"}
}

// Extract takes the title from <title> and the text from the body.
func (HTML) Extract(data []byte) (*Result, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, invalid("html", err)
	}
	return &Result{Title: pageTitle(doc), Text: visibleText(doc)}, nil
}

func pageTitle(doc *html.Node) string {
	var title string
	var find func(*html.Node) bool
	find = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "title" {
			var b strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					b.WriteString(c.Data)
				}
			}
			title = strings.TrimSpace(b.String())
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if find(c) {
				return true
			}
		}
		return false
	}
	find(doc)
	return title
}

func visibleText(doc *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if skippedElements[n.Data] {
				return
			}
			if lineBreakElements[n.Data] {
				b.WriteByte('\n')
			}
		case html.TextNode:
			b.WriteString(strings.Join(strings.Fields(n.Data), " "))
			if strings.TrimSpace(n.Data) != "" {
				b.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && lineBreakElements[n.Data] {
			b.WriteByte('\n')
		}
	}
	walk(doc)
	return compactLines(b.String())
}
