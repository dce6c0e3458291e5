// Package tiktoken adapts BPE encodings from tiktoken-go to the Tokenizer port.
// Encodings are loaded from the offline loader, so no network access is needed.
package tiktoken

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
	tiktokenloader "github.com/pkoukk/tiktoken-go-loader"

	"github.com/custodia-labs/textprep/internal/core/domain"
	"github.com/custodia-labs/textprep/internal/core/ports/driven"
)

// DefaultEncoding is used when none is configured.
const DefaultEncoding = "cl100k_base"

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

func init() {
	tiktoken.SetBpeLoader(tiktokenloader.NewOfflineLoader())
}

// Tokenizer encodes text without special tokens.
type Tokenizer struct {
	enc      *tiktoken.Tiktoken
	encoding string
}

// New loads the named encoding.
func New(encoding string) (*Tokenizer, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load encoding %q: %w: %w", encoding, domain.ErrUnsupportedType, err)
	}
	return &Tokenizer{enc: enc, encoding: encoding}, nil
}

// Encode returns the token ids of text. Special-token text is encoded as
// ordinary text.
func (t *Tokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

// Decode returns the text of tokens.
func (t *Tokenizer) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}

// Encoding returns the encoding name.
func (t *Tokenizer) Encoding() string {
	return t.encoding
}
