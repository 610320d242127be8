// Package candidate expands a Hangul chunk into its completable prefix word candidates.
//
// A chunk is flattened into a jamo stream (onset, nucleus, optional coda per
// syllable). A prefix of the stream is completable when it ends a whole
// syllable, never on a bare onset waiting for its vowel. Each completable
// prefix is reassembled into syllable text and yielded as a Candidate.
package candidate

import (
	"iter"

	"github.com/bastiangx/kokoa/pkg/jamo"
)

// Role is the position a jamo unit takes inside its syllable.
type Role uint8

const (
	Onset Role = iota
	Nucleus
	Coda
)

// Unit is one jamo in a stream.
type Unit struct {
	Jamo rune
	Role Role
}

// Stream is the flat jamo sequence of a text.
type Stream []Unit

// NewStream flattens text into jamo units. Characters that do not decompose
// contribute a single onset unit.
func NewStream(text string) Stream {
	s := make(Stream, 0, len(text))
	for _, r := range text {
		t := jamo.DecomposeOrSelf(r)
		s = append(s, Unit{Jamo: t.Onset, Role: Onset})
		if t.Nucleus != jamo.None {
			s = append(s, Unit{Jamo: t.Nucleus, Role: Nucleus})
		}
		if t.Coda != jamo.None {
			s = append(s, Unit{Jamo: t.Coda, Role: Coda})
		}
	}
	return s
}

// Completable reports whether the prefix s[:n] ends on a whole syllable.
func (s Stream) Completable(n int) bool {
	if n <= 0 || n > len(s) {
		return false
	}
	if s[n-1].Role == Onset {
		return false
	}
	return n == len(s) || s[n].Role == Onset
}

// Triples regroups the units of s into syllable triples.
func (s Stream) Triples() []jamo.Triple {
	var triples []jamo.Triple
	for _, u := range s {
		switch u.Role {
		case Onset:
			triples = append(triples, jamo.Triple{Onset: u.Jamo})
		case Nucleus:
			triples[len(triples)-1].Nucleus = u.Jamo
		case Coda:
			triples[len(triples)-1].Coda = u.Jamo
		}
	}
	return triples
}

// Candidate is a completable prefix of a chunk.
type Candidate struct {
	Text      string
	Syllables int
	Jamo      int
}

// Expand yields the candidates of chunk in strictly increasing length.
func Expand(chunk string) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		stream := NewStream(chunk)
		syllables := 0
		for n := 1; n <= len(stream); n++ {
			if stream[n-1].Role == Onset {
				continue
			}
			if !stream.Completable(n) {
				continue
			}
			triples := stream[:n].Triples()
			if !complete(triples) {
				return
			}
			syllables++
			c := Candidate{
				Text:      jamo.ComposeAll(triples),
				Syllables: syllables,
				Jamo:      n,
			}
			if !yield(c) {
				return
			}
		}
	}
}

// All collects Expand(chunk) into a slice.
func All(chunk string) []Candidate {
	var out []Candidate
	for c := range Expand(chunk) {
		out = append(out, c)
	}
	return out
}

func complete(triples []jamo.Triple) bool {
	for _, t := range triples {
		if !t.Complete() {
			return false
		}
	}
	return true
}
