// Package tokenizer provides the word splitting shared by indexing and
// query parsing. Both sides must agree, or query automatons chase words
// the index never stored.
package tokenizer

import (
	"strings"
	"unicode"
)

// Token is one normalized word with its position inside the source text.
type Token struct {
	Word     string
	Position uint32
}

// Tokenize lowercases text and splits it into letter/digit runs.
// Positions number the produced words, not bytes or runes.
func Tokenize(text string) []Token {
	var tokens []Token
	var word strings.Builder
	position := uint32(0)

	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, Token{Word: word.String(), Position: position})
			position++
			word.Reset()
		}
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			word.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// stopWords are common words not worth a posting list of their own.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "in": {},
	"is": {}, "it": {}, "of": {}, "on": {}, "or": {}, "that": {},
	"the": {}, "to": {}, "was": {}, "with": {},
}

// IsStopWord reports whether word is in the built-in stopword set.
// The word must already be normalized.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
