// Package numeral rewrites number words and digit+multiplier phrases
// into canonical digit strings, covering both the Indian (lakh, crore)
// and international (thousand, million, billion) systems.
package numeral

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// cutset is stripped from both ends of a token before matching.
const cutset = ",.!?;:'\""

var decimalRe = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

// Convert scans whitespace-separated tokens left to right and replaces
// numeric spans. Matching is greedy and never backtracks:
//
//  1. a digit token followed by a multiplier word ("15 crore", "₹10 thousand")
//  2. a run of number words ("ten lakh", "two hundred fifty")
//  3. a single number word ("five")
//
// Tokens that match nothing are emitted unchanged.
func Convert(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	out := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		if s, ok := pairDigitMultiplier(words, i); ok {
			out = append(out, s)
			i += 2
			continue
		}

		if s, n, ok := parsePhrase(words, i); ok {
			out = append(out, s)
			i += n
			continue
		}

		out = append(out, convertSingle(words[i]))
		i++
	}

	return strings.Join(out, " ")
}

// pairDigitMultiplier handles "<number> <multiplier>" at words[i].
func pairDigitMultiplier(words []string, i int) (string, bool) {
	if i+1 >= len(words) {
		return "", false
	}

	lead, core, _ := split(words[i])
	prefix := ""
	for _, p := range currencyPrefixes {
		if strings.HasPrefix(core, p) {
			prefix = p
			core = strings.TrimPrefix(core, p)
			break
		}
	}
	if !decimalRe.MatchString(core) {
		return "", false
	}

	_, next, trail := split(words[i+1])
	factor, ok := multipliers[strings.ToLower(next)]
	if !ok {
		return "", false
	}

	r, ok := new(big.Rat).SetString(core)
	if !ok {
		return "", false
	}
	r.Mul(r, new(big.Rat).SetInt64(factor))
	n := new(big.Int).Quo(r.Num(), r.Denom())

	return lead + prefix + n.String() + trail, true
}

// slot says which number word may extend the open group.
type slot int

const (
	slotOpen   slot = iota // empty group or just after "hundred": any small word
	slotOnes               // after a bare tens word: only one through nine
	slotClosed             // after a unit, teen or compound: no small word
)

// parsePhrase reads a run of number words starting at words[i] and returns
// the rendered value and the number of tokens consumed. Small words only
// extend the run as real compounds ("twenty five", "one hundred six"), so
// "two three" is left to convertSingle token by token. "hundred" scales a
// group at most once and scale words must strictly descend, which keeps a
// group below 10,000 and the whole phrase far inside int64.
func parsePhrase(words []string, i int) (string, int, bool) {
	var sum, acc, lastScale int64
	state := slotOpen
	hundredSeen := false
	applied := false
	lead, trail := "", ""

	j := i
	for ; j < len(words); j++ {
		l, core, t := split(words[j])
		if j > i && l != "" {
			break
		}

		w := strings.ToLower(core)
		if v, ok := smallValue(w); ok {
			next, ok := advance(state, v)
			if !ok {
				break
			}
			acc += v
			state = next
		} else if w == hundred {
			if hundredSeen {
				break
			}
			acc = max(acc, 1) * 100
			hundredSeen = true
			state = slotOpen
			applied = true
		} else if s, ok := scales[w]; ok {
			if lastScale != 0 && s >= lastScale {
				break
			}
			// A bare scale word means one of it.
			sum += max(acc, 1) * s
			acc, lastScale = 0, s
			hundredSeen = false
			state = slotOpen
			applied = true
		} else {
			break
		}

		if j == i {
			lead = l
		}
		trail = t
		if t != "" {
			// Trailing punctuation closes the phrase.
			j++
			break
		}
	}

	n := j - i
	if n == 0 || (!applied && n == 1) {
		return "", 0, false
	}

	return lead + strconv.FormatInt(sum+acc, 10) + trail, n, true
}

// advance reports whether a small word worth v may follow in state, and the
// state after it.
func advance(state slot, v int64) (slot, bool) {
	switch state {
	case slotOpen:
		if v >= 20 && v%10 == 0 {
			return slotOnes, true
		}
		return slotClosed, true
	case slotOnes:
		if v >= 1 && v <= 9 {
			return slotClosed, true
		}
	}
	return state, false
}

// convertSingle converts one number word, keeping surrounding punctuation.
func convertSingle(word string) string {
	lead, core, trail := split(word)
	v, ok := smallValue(strings.ToLower(core))
	if !ok {
		return word
	}
	return lead + strconv.FormatInt(v, 10) + trail
}

// smallValue resolves "five", "twenty", and compounds like "twenty-five".
func smallValue(w string) (int64, bool) {
	if v, ok := smallNumbers[w]; ok {
		return v, true
	}

	tens, ones, found := strings.Cut(w, "-")
	if !found {
		return 0, false
	}
	t, ok := smallNumbers[tens]
	if !ok || t < 20 || t%10 != 0 {
		return 0, false
	}
	o, ok := smallNumbers[ones]
	if !ok || o < 1 || o > 9 {
		return 0, false
	}
	return t + o, true
}

// split separates leading and trailing cutset characters from a token.
func split(tok string) (lead, core, trail string) {
	core = strings.TrimLeft(tok, cutset)
	lead = tok[:len(tok)-len(core)]
	trimmed := strings.TrimRight(core, cutset)
	trail = core[len(trimmed):]
	return lead, trimmed, trail
}
