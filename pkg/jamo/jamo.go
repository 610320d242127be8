// Package jamo converts between precomposed Hangul syllables and their
// onset, nucleus and coda jamo using the Unicode Hangul Syllables block arithmetic.
package jamo

import (
	"errors"
	"strings"
)

// ErrNotApplicable is returned when a codepoint or jamo combination falls outside the Hangul ranges.
var ErrNotApplicable = errors.New("jamo: not applicable")

const (
	syllableBase  = 0xAC00
	syllableLast  = 0xD7A3
	onsetCount    = 19
	nucleusCount  = 21
	codaCount     = 28
	nucleusStride = codaCount
	onsetStride   = nucleusCount * codaCount
)

// None marks an absent nucleus or coda.
const None rune = 0

var (
	onsets   = []rune{'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ'}
	nuclei   = []rune{'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ', 'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ'}
	codas    = []rune{None, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ', 'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ'}

	onsetIndex   = buildIndex(onsets)
	nucleusIndex = buildIndex(nuclei)
	codaIndex    = buildIndex(codas)
)

func buildIndex(table []rune) map[rune]int {
	index := make(map[rune]int, len(table))
	for i, r := range table {
		index[r] = i
	}
	return index
}

// Triple is the jamo decomposition of one character.
// Nucleus and Coda hold None when absent.
type Triple struct {
	Onset   rune
	Nucleus rune
	Coda    rune
}

// HasCoda reports whether the triple carries a trailing consonant.
func (t Triple) HasCoda() bool {
	return t.Coda != None
}

// Complete reports whether the triple forms a full syllable (onset and nucleus present).
func (t Triple) Complete() bool {
	return t.Nucleus != None
}

// Len returns the number of jamo units present in the triple.
func (t Triple) Len() int {
	n := 1
	if t.Nucleus != None {
		n++
	}
	if t.Coda != None {
		n++
	}
	return n
}

// String renders the triple as its jamo in order, skipping absent parts.
func (t Triple) String() string {
	var b strings.Builder
	b.WriteRune(t.Onset)
	if t.Nucleus != None {
		b.WriteRune(t.Nucleus)
	}
	if t.Coda != None {
		b.WriteRune(t.Coda)
	}
	return b.String()
}

// IsSyllable reports whether r lies in the precomposed Hangul syllable block.
func IsSyllable(r rune) bool {
	return r >= syllableBase && r <= syllableLast
}

// Decompose splits a precomposed syllable into its jamo.
func Decompose(r rune) (Triple, error) {
	if !IsSyllable(r) {
		return Triple{}, ErrNotApplicable
	}
	offset := int(r - syllableBase)
	return Triple{
		Onset:   onsets[offset/onsetStride],
		Nucleus: nuclei[(offset%onsetStride)/nucleusStride],
		Coda:    codas[offset%nucleusStride],
	}, nil
}

// DecomposeOrSelf decomposes r, falling back to r as its own onset with
// no nucleus or coda when r is not a syllable.
func DecomposeOrSelf(r rune) Triple {
	t, err := Decompose(r)
	if err != nil {
		return Triple{Onset: r}
	}
	return t
}

// Compose builds the syllable for an onset, nucleus and optional coda.
func Compose(onset, nucleus, coda rune) (rune, error) {
	oi, ok := onsetIndex[onset]
	if !ok {
		return 0, ErrNotApplicable
	}
	ni, ok := nucleusIndex[nucleus]
	if !ok {
		return 0, ErrNotApplicable
	}
	ci, ok := codaIndex[coda]
	if !ok {
		return 0, ErrNotApplicable
	}
	return syllableBase + rune(oi*onsetStride+ni*nucleusStride+ci), nil
}

// ComposeOrOnset composes t, returning the onset unchanged when the
// combination is not a valid syllable.
func ComposeOrOnset(t Triple) rune {
	r, err := Compose(t.Onset, t.Nucleus, t.Coda)
	if err != nil {
		return t.Onset
	}
	return r
}

// DecomposeAll decomposes every character of s, one triple per rune.
func DecomposeAll(s string) []Triple {
	triples := make([]Triple, 0, len(s)/3+1)
	for _, r := range s {
		triples = append(triples, DecomposeOrSelf(r))
	}
	return triples
}

// ComposeAll reassembles triples into text using the onset fallback.
func ComposeAll(triples []Triple) string {
	var b strings.Builder
	b.Grow(len(triples) * 3)
	for _, t := range triples {
		b.WriteRune(ComposeOrOnset(t))
	}
	return b.String()
}

// Count returns the number of jamo units composing s.
// Characters outside the syllable block count as one unit each.
func Count(s string) int {
	n := 0
	for _, r := range s {
		n += DecomposeOrSelf(r).Len()
	}
	return n
}
