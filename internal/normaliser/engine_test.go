package normaliser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/textprep/internal/core/domain"
)

func normalise(t *testing.T, e *Engine, text string, opts domain.NormaliseOptions) string {
	t.Helper()
	out, err := e.Normalise(text, opts)
	require.NoError(t, err)
	return out
}

func withPlaceholders() domain.NormaliseOptions {
	opts := domain.DefaultNormaliseOptions()
	opts.ReplaceWithPlaceholders = true
	return opts
}

func keepEmojis() domain.NormaliseOptions {
	opts := domain.DefaultNormaliseOptions()
	opts.RemoveEmojis = false
	return opts
}

func TestEngine_EndToEnd(t *testing.T) {
	e := New()
	raw := "Rs. 15,00,000 paid on 01/02/2024 for qty 10 pcs. Contact john@x.com"

	t.Run("with placeholders", func(t *testing.T) {
		out := normalise(t, e, raw, withPlaceholders())
		assert.Equal(t, "₹1500000 paid on <DATE> for quantity 10 pieces. Contact <EMAIL>", out)
	})

	t.Run("without placeholders keeps email", func(t *testing.T) {
		out := normalise(t, e, raw, domain.DefaultNormaliseOptions())
		assert.Equal(t, "₹1500000 paid on <DATE> for quantity 10 pieces. Contact john@x.com", out)
	})
}

func TestEngine_Normalise(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  domain.NormaliseOptions
		want  string
	}{
		{"rupee amount glued", "Paid Rs 500 today", domain.DefaultNormaliseOptions(), "Paid ₹500 today"},
		{"grouped rupee canonicalised", "INR 1,200 due", domain.DefaultNormaliseOptions(), "₹1200 due"},
		{"dollar word", "cost 20 dollars", domain.DefaultNormaliseOptions(), "Cost 20 $"},
		{"duplicate currency collapsed", "total 25000000 2,50,00,000 ₹ only", domain.DefaultNormaliseOptions(), "Total ₹25000000 only"},
		{"numeral phrase", "we raised ten lakh", domain.DefaultNormaliseOptions(), "We raised 1000000"},
		{"adjacent number words kept apart", "i have two three year old kids", domain.DefaultNormaliseOptions(), "I have 2 3 year old kids"},
		{"repeated hundred", "paid one hundred hundred hundred", domain.DefaultNormaliseOptions(), "Paid 100"},
		{"numerals disabled", "ten lakh", domain.NormaliseOptions{RemoveEmojis: true}, "Ten lakh"},
		{"markup stripped", "<p>Hello <b>world</b></p><script>alert(1)</script>", domain.DefaultNormaliseOptions(), "Hello world"},
		{"rich text residue", `{\rtf1\ansi Hello}`, domain.DefaultNormaliseOptions(), "Hello"},
		{"font header", "Helvetica; ; Dear cust", domain.DefaultNormaliseOptions(), "Dear customer"},
		{"repeated punctuation", "Wow!!! really??", domain.DefaultNormaliseOptions(), "Wow! Really?"},
		{"emoji removed", "great 😀 service", domain.DefaultNormaliseOptions(), "Great service"},
		{"emoji placeholder", "great 😀 service", keepEmojis(), "Great <EMOJI> service"},
		{"date masked", "due 1-2-24", domain.DefaultNormaliseOptions(), "Due <DATE>"},
		{"repeated words", "hello hello, how are you", domain.DefaultNormaliseOptions(), "Hello, how are you"},
		{"sentence case", "first. second! third? fourth", domain.DefaultNormaliseOptions(), "First. Second! Third? Fourth"},
		{"quotes tightened", `he said " hi there " ok`, domain.DefaultNormaliseOptions(), `He said "hi there" ok`},
		{"brackets tightened", "see ( note )", keepEmojis(), "See (note)"},
		{"verbose pan", "PAN Number ABCDE1234F", domain.DefaultNormaliseOptions(), "Permanent account number ABCDE1234F"},
		{"email shielded from abbreviations", "mail cust@acc.com re qty", domain.DefaultNormaliseOptions(), "Mail cust@acc.com re quantity"},
		{"empty", "", domain.DefaultNormaliseOptions(), ""},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalise(t, e, tt.input, tt.opts))
		})
	}
}

func TestEngine_Units(t *testing.T) {
	out := normalise(t, New(), "2 kg and 3 dozen", domain.DefaultNormaliseOptions())
	assert.Contains(t, out, "kilograms")
	assert.Contains(t, out, "12 units")
}

func TestEngine_Masking(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"pan", "PAN ABCDE1234F", "Permanent account number <PAN>"},
		{"aadhaar", "Aadhaar 1234 5678 9012", "Aadhaar <AADHAAR>"},
		{"transaction id", "TXN12345 done", "<TXN_ID> done"},
		{"reference code", "Ref: AB12CD34", "Reference: <REF_NO>"},
		{"reference word untouched", "Reference number", "Reference number"},
		{"ifsc", "IFSC HDFC0001234", "Indian financial system code <IFSC>"},
		{"account number", "call 9876543210", "Call <ACCOUNT_NO>"},
		{"phone", "call +1 555 1234", "Call <PHONE>"},
		{"url", "see https://x.com/a now", "See <URL> now"},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalise(t, e, tt.input, withPlaceholders()))
		})
	}
}

func TestCompile_DigitGuard(t *testing.T) {
	rws := compile([]rule{{refPattern, "Ref: " + PlaceholderRefNo}, {`\bqty\b`, "quantity"}})
	require.Len(t, rws, 2)

	assert.True(t, rws[0].digitRequired)
	assert.False(t, rws[1].digitRequired)
	assert.Equal(t, "Ref: <REF_NO>", rws[0].apply("Ref: AB12CD34"))
	assert.Equal(t, "Ref: ABCDEFGH", rws[0].apply("Ref: ABCDEFGH"))
}

func TestEngine_MaskedCurrency(t *testing.T) {
	e := New()

	t.Run("grouped amount with account", func(t *testing.T) {
		out := normalise(t, e, "Rs. 15,00,000 credited to 9876543210", withPlaceholders())
		assert.Equal(t, "₹1500000 credited to <ACCOUNT_NO>", out)
	})

	t.Run("plain amount is not a phone", func(t *testing.T) {
		out := normalise(t, e, "Rs 2500000 paid", withPlaceholders())
		assert.Equal(t, "₹2500000 paid", out)
		assert.NotContains(t, out, "<PHONE>")
	})

	t.Run("spelled amount", func(t *testing.T) {
		out := normalise(t, e, "15 crore rupees", withPlaceholders())
		assert.Contains(t, out, "150000000")
	})
}

func TestEngine_CurrencyUnified(t *testing.T) {
	inputs := []string{
		"Rs 100 and rs. 200",
		"fifty rupees only",
		"INR 5,000 and inr. 20",
		"pay 10 USD or 12 dollars",
		"a few bucks",
		"one rupee",
	}

	e := New()
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			out := normalise(t, e, in, domain.DefaultNormaliseOptions())
			assert.NotRegexp(t, `(?i)\b(rs|rupees?|inr|usd|dollars?|bucks)\b`, out)
		})
	}
}

func TestEngine_Idempotent(t *testing.T) {
	corpus := []string{
		"Rs. 15,00,000 paid on 01/02/2024 for qty 10 pcs. Contact john@x.com",
		"total 25000000 2,50,00,000 ₹ only",
		"Wow!!! really?? yes... ok,,",
		"<div>Dear cust,</div><p>your EMI of Rs 4,500 is due</p>",
		"2 kg and 3 dozen eggs",
		"hello hello, how are you",
		"we raised ten lakh and twenty five thousand",
		"Note: PAN Number ABCDE1234F",
		"great 😀 service!!",
		`he said " hi there " ok`,
		"15 crore rupees",
	}

	e := New()
	for _, opts := range []domain.NormaliseOptions{domain.DefaultNormaliseOptions(), keepEmojis()} {
		for _, in := range corpus {
			t.Run(in, func(t *testing.T) {
				once := normalise(t, e, in, opts)
				twice := normalise(t, e, once, opts)
				assert.Equal(t, once, twice)
			})
		}
	}
}

func TestEngine_InvalidUTF8(t *testing.T) {
	_, err := New().Normalise("abc\xffdef", domain.DefaultNormaliseOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNormalisation)
}

func TestEngine_ConcurrentUse(t *testing.T) {
	e := New()
	want := normalise(t, e, "qty 10 pcs for Rs 500", domain.DefaultNormaliseOptions())

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = e.Normalise("qty 10 pcs for Rs 500", domain.DefaultNormaliseOptions())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestCapitaliseSentences(t *testing.T) {
	assert.Equal(t, "One. Two", capitaliseSentences("one. two"))
	assert.Equal(t, "<DATE> due. Pay", capitaliseSentences("<DATE> due. pay"))
	assert.Equal(t, "ÉCOLE iPhone", capitaliseSentences("éCOLE iPhone"))
}

func TestDropRepeatedWords(t *testing.T) {
	assert.Equal(t, "go", dropRepeatedWords("go Go go"))
	assert.Equal(t, "end. End", dropRepeatedWords("end. End"))
	assert.Equal(t, "", dropRepeatedWords(""))
}
