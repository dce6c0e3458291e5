package driven

// Tokenizer converts text to model tokens and back.
// Neither direction adds special tokens.
type Tokenizer interface {
	Encode(text string) []int
	Decode(tokens []int) string
}
