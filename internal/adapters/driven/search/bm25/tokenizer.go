package bm25

import (
	"strings"
	"unicode"

	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// Tokenizer is the default tokenization strategy: lower-cased,
// punctuation-stripped, whitespace-split tokens. It can be replaced by
// any driven.Tokenizer at engine construction.
type Tokenizer struct{}

// NewTokenizer creates the default tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize returns the tokens for the given text.
func (t *Tokenizer) Tokenize(text string) ([]string, error) {
	lowered := strings.ToLower(text)
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, lowered)
	return strings.Fields(stripped), nil
}
