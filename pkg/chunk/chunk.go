// Package chunk splits text into maximal runs of characters sharing one class.
package chunk

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/kokoa/pkg/jamo"
)

// Class is the character class a chunk is made of.
type Class int

const (
	Other Class = iota
	Latin
	Hangul
	Digit
)

func (c Class) String() string {
	switch c {
	case Latin:
		return "latin"
	case Hangul:
		return "hangul"
	case Digit:
		return "digit"
	default:
		return "other"
	}
}

// Classify returns the class of a single character.
// The Latin range runs from 'A' to 'z' inclusive, so the six ASCII
// symbols between 'Z' and 'a' ('[', '\\', ']', '^', '_', '`') are Latin too.
func Classify(r rune) Class {
	switch {
	case r >= 'A' && r <= 'z':
		return Latin
	case jamo.IsSyllable(r):
		return Hangul
	case r >= '0' && r <= '9':
		return Digit
	default:
		return Other
	}
}

// Chunk is a maximal run of same-class characters.
// Start and End are byte offsets into the segmented text.
type Chunk struct {
	Text  string
	Class Class
	Start int
	End   int
}

// Runes returns the number of characters in the chunk.
func (c Chunk) Runes() int {
	return utf8.RuneCountInString(c.Text)
}

// Segment yields the chunks of text in order. Every call to the returned
// sequence restarts from the beginning of text.
func Segment(text string) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		if text == "" {
			return
		}
		start := 0
		r, _ := utf8.DecodeRuneInString(text)
		class := Classify(r)

		for i, r := range text {
			c := Classify(r)
			if c == class {
				continue
			}
			if !yield(Chunk{Text: text[start:i], Class: class, Start: start, End: i}) {
				return
			}
			start, class = i, c
		}
		yield(Chunk{Text: text[start:], Class: class, Start: start, End: len(text)})
	}
}

// All collects Segment(text) into a slice.
func All(text string) []Chunk {
	var chunks []Chunk
	for c := range Segment(text) {
		chunks = append(chunks, c)
	}
	return chunks
}

// Of yields only the chunks of text belonging to class.
func Of(text string, class Class) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		for c := range Segment(text) {
			if c.Class != class {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Join concatenates chunk texts in order.
func Join(chunks []Chunk) string {
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(c.Text)
	}
	return b.String()
}
