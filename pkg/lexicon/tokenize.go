package lexicon

import (
	"strings"

	"github.com/bastiangx/kokoa/pkg/candidate"
	"github.com/bastiangx/kokoa/pkg/chunk"
)

// Token is one piece of tokenized text.
type Token struct {
	Text  string
	Class chunk.Class
	// Known is set when Text is an indexed word.
	Known bool
}

// Tokenize splits text into tokens that concatenate back to text.
// Each Hangul chunk is split into its longest indexed prefix and a remainder,
// which is split the same way. A remainder with no indexed prefix is kept whole.
// Chunks of other classes are passed through unchanged.
func (l *Lexicon) Tokenize(text string) []Token {
	var tokens []Token
	for c := range chunk.Segment(text) {
		if c.Class != chunk.Hangul {
			tokens = append(tokens, Token{Text: c.Text, Class: c.Class})
			continue
		}
		tokens = l.splitLR(tokens, c.Text)
	}
	return tokens
}

func (l *Lexicon) splitLR(tokens []Token, text string) []Token {
	for text != "" {
		left := l.longestPrefix(text)
		if left == "" {
			return append(tokens, Token{Text: text, Class: chunk.Hangul})
		}
		tokens = append(tokens, Token{Text: left, Class: chunk.Hangul, Known: true})
		text = text[len(left):]
	}
	return tokens
}

// longestPrefix returns the longest prefix candidate of text that is indexed.
func (l *Lexicon) longestPrefix(text string) string {
	best := ""
	for cand := range candidate.Expand(text) {
		if strings.HasPrefix(text, cand.Text) && l.Has(cand.Text) {
			best = cand.Text
		}
	}
	return best
}
