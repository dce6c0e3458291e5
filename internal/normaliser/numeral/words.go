package numeral

// smallNumbers are the words that add to the running accumulator.
var smallNumbers = map[string]int64{
	"zero":      0,
	"one":       1,
	"two":       2,
	"three":     3,
	"four":      4,
	"five":      5,
	"six":       6,
	"seven":     7,
	"eight":     8,
	"nine":      9,
	"ten":       10,
	"eleven":    11,
	"twelve":    12,
	"thirteen":  13,
	"fourteen":  14,
	"fifteen":   15,
	"sixteen":   16,
	"seventeen": 17,
	"eighteen":  18,
	"nineteen":  19,
	"twenty":    20,
	"thirty":    30,
	"forty":     40,
	"fifty":     50,
	"sixty":     60,
	"seventy":   70,
	"eighty":    80,
	"ninety":    90,
}

// multipliers scale a preceding digit token ("15 crore", "₹2.5 lakh").
var multipliers = map[string]int64{
	"ten":      10,
	"hundred":  100,
	"thousand": 1_000,
	"lakh":     100_000,
	"lakhs":    100_000,
	"lac":      100_000,
	"lacs":     100_000,
	"million":  1_000_000,
	"crore":    10_000_000,
	"crores":   10_000_000,
	"billion":  1_000_000_000,
}

// scales close a group inside a word phrase ("two lakh fifty thousand").
// "hundred" is handled separately because it scales the open group instead.
var scales = map[string]int64{
	"thousand": 1_000,
	"lakh":     100_000,
	"lakhs":    100_000,
	"lac":      100_000,
	"lacs":     100_000,
	"million":  1_000_000,
	"crore":    10_000_000,
	"crores":   10_000_000,
	"billion":  1_000_000_000,
}

const hundred = "hundred"

// currencyPrefixes may lead a digit token.
var currencyPrefixes = []string{"₹", "$"}
