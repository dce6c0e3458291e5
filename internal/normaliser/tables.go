package normaliser

// rule is a pattern and its replacement template before compilation.
type rule struct {
	pattern string
	repl    string
}

// Placeholder tokens emitted by masking, date and emoji stages.
const (
	PlaceholderEmoji     = "<EMOJI>"
	PlaceholderPAN       = "<PAN>"
	PlaceholderAadhaar   = "<AADHAAR>"
	PlaceholderTxnID     = "<TXN_ID>"
	PlaceholderRefNo     = "<REF_NO>"
	PlaceholderIFSC      = "<IFSC>"
	PlaceholderAccountNo = "<ACCOUNT_NO>"
	PlaceholderPhone     = "<PHONE>"
	PlaceholderEmail     = "<EMAIL>"
	PlaceholderURL       = "<URL>"
	PlaceholderDate      = "<DATE>"
)

const placeholderPattern = `<(?:EMOJI|PAN|AADHAAR|TXN_ID|REF_NO|IFSC|ACCOUNT_NO|PHONE|EMAIL|URL|DATE)>`

// Rich-text and escape residue (stage 3).
const (
	rtfControlPattern    = `\\[a-z]+\d*|\{\\\*\\[^}]+\}|[{}]`
	uc0uPattern          = `uc0u\d+`
	unicodeEscapePattern = `\\u[0-9A-Fa-f]{4}|\bu\d{4}\b`
	fontHeaderPattern    = `(?i)^Helvetica;[\s;]*`
)

// Emoji handling (stage 4). Shield sentinels are kept so placeholders survive.
const (
	emojiAllowlistPattern = `[^A-Za-z0-9\s.,!?$₹:;'"\-/@\x{E001}\x{E002}]`
	emojiRangePattern     = `[\x{10000}-\x{10FFFF}]+`
)

// PII masks (stage 5), applied in this order. Tightly structured codes come
// first so the looser account and phone patterns cannot consume them.
var maskRules = []rule{
	{`(?i)\b[A-Z]{5}\d{4}[A-Z]\b`, PlaceholderPAN},
	{`\b\d{4}\s?\d{4}\s?\d{4}\b`, PlaceholderAadhaar},
	{`(?i)\bTXN\w+\b`, PlaceholderTxnID},
	{refPattern, "Ref: " + PlaceholderRefNo},
	{`\b[A-Z]{4}0[A-Z0-9]{6}\b`, PlaceholderIFSC},
	{`\b\d{9,18}\b`, PlaceholderAccountNo},
	{`(?:\+?\d{1,3}[-.\s]??\d{2,5}[-.\s]??\d{2,5}[-.\s]??\d{2,9})|(?:\+91\s?\d{10})`, PlaceholderPhone},
	{emailPattern, PlaceholderEmail},
	{`(?i)(?:https?://\S+)|(?:www\.\S+)`, PlaceholderURL},
}

// refPattern matches "Ref: AB12CD34"; codes without a digit are words, not references.
const refPattern = `(?i)\bRef[:\-]?\s?([A-Z0-9]{6,})\b`

// digitGuarded patterns only rewrite matches whose first group holds a digit.
var digitGuarded = map[string]bool{refPattern: true}

// currencyAmountPattern marks amounts that masking must not read as phone or
// account numbers.
const currencyAmountPattern = `(?i)(?:₹|\$|\b(?:rs|inr|rupees?|usd)\b\.?)\s*\d[\d,]*(?:\.\d+)?`

const emailPattern = `[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`

// Currency words (stage 6). A following amount is glued to the symbol.
var currencyRules = []rule{
	{`(?i)\b(?:rs|inr|rupees?)\b(?:\.?\s*(\d)|\.)?`, "₹${1}"},
	{`(?i)\b(?:usd|dollars?|bucks)\b(?:\s*(\d))?`, "$$${1}"},
}

// Abbreviations (stage 7), case-insensitive whole words, in order.
var abbreviationRules = []rule{
	{`(?i)\bqty\b`, "quantity"},
	{`(?i)\bmrp\b`, "maximum retail price"},
	{`(?i)\bmfg\b`, "manufacturing"},
	{`(?i)\bexp\b`, "expiry"},
	{`(?i)\bgst\b`, "goods and services tax"},
	{`(?i)\bamt\b`, "amount"},
	{`(?i)\bdob\b`, "date of birth"},
	{`(?i)\bupi\b`, "unified payments interface"},
	{`(?i)\bsms\b`, "message"},
	{`(?i)\bod\b`, "outstanding"},
	{`(?i)\bemis?\b`, "equated monthly installment"},
	{`(?i)\bcust(?:omer)?\b`, "customer"},
	{`(?i)\btxn\b`, "transaction"},
	{`(?i)\bref\b`, "reference"},
	{`(?i)\bac(?:count)?\.?\b`, "account"},
	{`(?i)\bamt\.?\b`, "amount"},
	{`(?i)\bcrm\b`, "customer relationship management"},
	// BFSI and address forms.
	{`(?i)\bacc?\b`, "account"},
	{`(?i)\bifsc\b`, "indian financial system code"},
	{`(?i)\bkyc\b`, "know your customer"},
	{`(?i)\bpan\b`, "permanent account number"},
	{`(?i)\bhno\b`, "house number"},
	{`(?i)\bs/o\b`, "son of"},
}

// Units (stage 8).
var unitRules = []rule{
	{`(?i)\bpcs\b`, "pieces"},
	{`(?i)\bnos\b`, "units"},
	{`(?i)\bltr\b`, "liters"},
	{`(?i)\bkg\b`, "kilograms"},
	{`(?i)\bgms?\b`, "grams"},
	{`(?i)\bml\b`, "milliliters"},
	{`(?i)\bdozen\b`, "12 units"},
}

const datePattern = `\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`

// Duplicate currency renderings (stage 10), e.g. "25000000 2,50,00,000 ₹".
var duplicateCurrencyRules = []rule{
	{`\b(\d{5,})[\s,]+\d{1,3}(?:,\d{2,3}){2,}\s*₹?`, "₹${1}"},
	{`\b(\d{6,})\s+\d{1,3},\d{2},\d{3}\s*₹?`, "₹${1}"},
}

const (
	groupedRupeePattern  = `₹\s?(\d{1,3}(?:,\d{2,3})+)\b`
	danglingGroupPattern = `(₹\d+)\s*(?:,\d{2,3}){2,}\b`
)

// Punctuation (stages 11 and 12).
const (
	repeatedPunctPattern = `!{2,}|\?{2,}|\.{2,}|,{2,}`
	finalAllowPattern    = `[^\p{L}\p{N}_\s.,!?$₹:;'"\-/@<>%()#+=]`
	gluedPunctPattern    = `([A-Za-z0-9])([:!?])(\s|$)`
	verboseNumberPattern = `(?i)permanent account number\s+Number`
)

// Final cleanup (stage 18).
var cleanupRules = []rule{
	{`\s+([?!:;,])`, "$1"},
	{`\(\s+`, "("},
	{`\s+\)`, ")"},
	{`"\s*([^"]*?)\s*"`, `"$1"`},
	{`\s+\.`, "."},
	{`\s{2,}`, " "},
}
