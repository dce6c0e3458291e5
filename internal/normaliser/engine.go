package normaliser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
	"github.com/custodia-labs/textprep/internal/normaliser/numeral"
)

// Ensure Engine implements the interface.
var _ driven.Normaliser = (*Engine)(nil)

// Shielded spans are replaced by shieldOpen, an index, and shieldClose.
const (
	shieldOpen  = '\uE001'
	shieldClose = '\uE002'
)

// blockElements get a separating space when markup is stripped.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true, "td": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

type rewrite struct {
	re            *regexp.Regexp
	repl          string
	digitRequired bool
}

func (r rewrite) apply(s string) string {
	if !r.digitRequired {
		return r.re.ReplaceAllString(s, r.repl)
	}
	return r.re.ReplaceAllStringFunc(s, func(m string) string {
		sub := r.re.FindStringSubmatch(m)
		if len(sub) < 2 || !strings.ContainsAny(sub[1], "0123456789") {
			return m
		}
		return r.re.ReplaceAllString(m, r.repl)
	})
}

func compile(rules []rule) []rewrite {
	out := make([]rewrite, len(rules))
	for i, r := range rules {
		out[i] = rewrite{re: regexp.MustCompile(r.pattern), repl: r.repl, digitRequired: digitGuarded[r.pattern]}
	}
	return out
}

func applyAll(s string, rws []rewrite) string {
	for _, rw := range rws {
		s = rw.apply(s)
	}
	return s
}

// Engine is the text normalisation engine.
type Engine struct {
	placeholder *regexp.Regexp
	sentinel    *regexp.Regexp

	rtfControl    *regexp.Regexp
	uc0u          *regexp.Regexp
	unicodeEscape *regexp.Regexp
	fontHeader    *regexp.Regexp

	emojiAllowlist *regexp.Regexp
	emojiRange     *regexp.Regexp

	masks         []rewrite
	amount        *regexp.Regexp
	currency      []rewrite
	email         *regexp.Regexp
	abbreviations []rewrite
	units         []rewrite
	date          *regexp.Regexp

	duplicateCurrency []rewrite
	groupedRupee      *regexp.Regexp
	danglingGroup     *regexp.Regexp

	repeatedPunct *regexp.Regexp
	finalAllow    *regexp.Regexp
	gluedPunct    *regexp.Regexp
	whitespace    *regexp.Regexp
	verboseNumber *regexp.Regexp
	cleanup       []rewrite
}

// New compiles the rewrite tables.
func New() *Engine {
	return &Engine{
		placeholder:       regexp.MustCompile(placeholderPattern),
		sentinel:          regexp.MustCompile(`\x{E001}(\d+)\x{E002}`),
		rtfControl:        regexp.MustCompile(rtfControlPattern),
		uc0u:              regexp.MustCompile(uc0uPattern),
		unicodeEscape:     regexp.MustCompile(unicodeEscapePattern),
		fontHeader:        regexp.MustCompile(fontHeaderPattern),
		emojiAllowlist:    regexp.MustCompile(emojiAllowlistPattern),
		emojiRange:        regexp.MustCompile(emojiRangePattern),
		masks:             compile(maskRules),
		amount:            regexp.MustCompile(currencyAmountPattern),
		currency:          compile(currencyRules),
		email:             regexp.MustCompile(emailPattern),
		abbreviations:     compile(abbreviationRules),
		units:             compile(unitRules),
		date:              regexp.MustCompile(datePattern),
		duplicateCurrency: compile(duplicateCurrencyRules),
		groupedRupee:      regexp.MustCompile(groupedRupeePattern),
		danglingGroup:     regexp.MustCompile(danglingGroupPattern),
		repeatedPunct:     regexp.MustCompile(repeatedPunctPattern),
		finalAllow:        regexp.MustCompile(finalAllowPattern),
		gluedPunct:        regexp.MustCompile(gluedPunctPattern),
		whitespace:        regexp.MustCompile(`\s+`),
		verboseNumber:     regexp.MustCompile(verboseNumberPattern),
		cleanup:           compile(cleanupRules),
	}
}

// Normalise runs every stage over text in order.
// It fails only with domain.ErrNormalisation when text is not valid UTF-8.
func (e *Engine) Normalise(text string, opts domain.NormaliseOptions) (string, error) {
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("%w: input is not valid UTF-8", domain.ErrNormalisation)
	}
	text = strings.Map(dropSentinels, text)

	// Placeholders from an earlier pass would otherwise parse as markup.
	text, saved := e.shield(text, e.placeholder)
	text = stripMarkup(text)
	text = norm.NFKC.String(text)
	text = e.stripRichText(text)
	text = e.handleEmojis(text, opts.RemoveEmojis)
	text = e.unshield(text, saved)

	if opts.ReplaceWithPlaceholders {
		text, saved = e.shield(text, e.amount)
		text = applyAll(text, e.masks)
		text = e.unshield(text, saved)
	}
	text = applyAll(text, e.currency)

	text, saved = e.shield(text, e.email, e.placeholder)
	text = applyAll(text, e.abbreviations)
	text = e.unshield(text, saved)

	text = applyAll(text, e.units)
	text = e.date.ReplaceAllString(text, PlaceholderDate)
	text = e.collapseCurrency(text)

	text = e.repeatedPunct.ReplaceAllStringFunc(text, func(m string) string { return m[:1] })
	text = e.finalAllow.ReplaceAllString(text, "")
	text = e.gluedPunct.ReplaceAllString(text, "$1 $2$3")
	text = strings.TrimSpace(e.whitespace.ReplaceAllString(text, " "))
	text = e.verboseNumber.ReplaceAllString(text, "permanent account number")

	text, err := roundTrip(text)
	if err != nil {
		return "", err
	}

	if opts.ConvertWords {
		text = numeral.Convert(text)
	}
	text = dropRepeatedWords(text)
	return e.finalCleanup(text), nil
}

func dropSentinels(r rune) rune {
	if r == shieldOpen || r == shieldClose {
		return -1
	}
	return r
}

// shield swaps every match of res for a positional sentinel.
func (e *Engine) shield(text string, res ...*regexp.Regexp) (string, []string) {
	var saved []string
	for _, re := range res {
		text = re.ReplaceAllStringFunc(text, func(m string) string {
			saved = append(saved, m)
			return string(shieldOpen) + strconv.Itoa(len(saved)-1) + string(shieldClose)
		})
	}
	return text, saved
}

func (e *Engine) unshield(text string, saved []string) string {
	if len(saved) == 0 {
		return text
	}
	return e.sentinel.ReplaceAllStringFunc(text, func(m string) string {
		sub := e.sentinel.FindStringSubmatch(m)
		i, err := strconv.Atoi(sub[1])
		if err != nil || i >= len(saved) {
			return ""
		}
		return saved[i]
	})
}

// stripMarkup decodes entities and keeps text nodes outside script and style.
func stripMarkup(text string) string {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return html.UnescapeString(text)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] && b.Len() > 0 {
			b.WriteByte(' ')
		}
	}
	walk(doc)
	return b.String()
}

func (e *Engine) stripRichText(text string) string {
	text = e.rtfControl.ReplaceAllString(text, "")
	text = e.uc0u.ReplaceAllString(text, "")
	text = e.unicodeEscape.ReplaceAllString(text, "")
	return e.fontHeader.ReplaceAllString(text, "")
}

func (e *Engine) handleEmojis(text string, remove bool) string {
	if remove {
		return e.emojiAllowlist.ReplaceAllString(text, "")
	}
	return e.emojiRange.ReplaceAllString(text, PlaceholderEmoji)
}

func (e *Engine) collapseCurrency(text string) string {
	text = applyAll(text, e.duplicateCurrency)
	text = e.groupedRupee.ReplaceAllStringFunc(text, func(m string) string {
		sub := e.groupedRupee.FindStringSubmatch(m)
		return "₹" + strings.ReplaceAll(sub[1], ",", "")
	})
	return e.danglingGroup.ReplaceAllString(text, "$1")
}

func roundTrip(text string) (string, error) {
	encoded, err := xunicode.UTF8.NewEncoder().String(text)
	if err != nil {
		return "", fmt.Errorf("%w: encode: %v", domain.ErrNormalisation, err)
	}
	decoded, err := xunicode.UTF8.NewDecoder().String(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: decode: %v", domain.ErrNormalisation, err)
	}
	return decoded, nil
}

// dropRepeatedWords collapses consecutive case-insensitive duplicates.
// "hello hello," keeps the punctuated form; "end. End" is a sentence boundary.
func dropRepeatedWords(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	out := words[:1]
	for _, w := range words[1:] {
		prev := out[len(out)-1]
		prevCore := strings.TrimRight(prev, wordPunct)
		if prevCore == prev && prevCore != "" && strings.EqualFold(prevCore, strings.TrimRight(w, wordPunct)) {
			out[len(out)-1] = w
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

const wordPunct = ".,!?;:"

func (e *Engine) finalCleanup(text string) string {
	text = applyAll(text, e.cleanup)
	// Dropping spaces can glue "! !" back into a run.
	text = e.repeatedPunct.ReplaceAllStringFunc(text, func(m string) string { return m[:1] })
	return strings.TrimSpace(capitaliseSentences(text))
}

// capitaliseSentences upper-cases the first rune of each sentence and leaves
// the rest untouched. Sentences end at . ! or ? followed by whitespace.
func capitaliseSentences(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	start, term := true, false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if term {
				start = true
			}
		case start:
			r = unicode.ToUpper(r)
			start, term = false, isTerminator(r)
		default:
			term = isTerminator(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
