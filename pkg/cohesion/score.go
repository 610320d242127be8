package cohesion

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/bastiangx/kokoa/pkg/jamo"
)

// SingleSyllableScore is the cohesion floor of a one-syllable candidate.
const SingleSyllableScore = 0.1

// ErrMissingHead is returned when a multi-syllable candidate's first syllable was never counted.
var ErrMissingHead = errors.New("cohesion: head syllable missing from frequency table")

// Scores maps candidate text to its cohesion score.
type Scores map[string]float64

// Of returns the score of word and whether it was scored.
func (s Scores) Of(word string) (float64, bool) {
	v, ok := s[word]
	return v, ok
}

// head returns the first syllable of w.
func head(w string) string {
	_, size := utf8.DecodeRuneInString(w)
	return w[:size]
}

// Score computes the cohesion of word against table.
//
//	score(w) = (count(w) / count(head(w))) ^ (1 / jamoLen(w))
//
// One-syllable words score SingleSyllableScore.
func Score(table *FrequencyTable, word string) (float64, error) {
	if utf8.RuneCountInString(word) <= 1 {
		return SingleSyllableScore, nil
	}
	h := head(word)
	denom := table.Count(h)
	if denom == 0 {
		return 0, fmt.Errorf("%w: %q (head %q)", ErrMissingHead, word, h)
	}
	ratio := float64(table.Count(word)) / float64(denom)
	return math.Pow(ratio, 1/float64(jamo.Count(word))), nil
}

// ScoreTable scores every candidate in table.
func ScoreTable(table *FrequencyTable) (Scores, error) {
	scores := make(Scores, table.Len())
	var err error
	table.Range(func(word string, _ int) bool {
		var s float64
		s, err = Score(table, word)
		if err != nil {
			return false
		}
		scores[word] = s
		return true
	})
	if err != nil {
		return nil, err
	}
	return scores, nil
}
