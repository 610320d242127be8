package cohesion

import (
	"sort"
	"sync"
)

// Tag is the category attached to a discovered word.
type Tag string

// Unassigned is the placeholder tag of every freshly discovered word.
const Unassigned Tag = ""

// Entry is one word of a Vocabulary together with its selection evidence.
type Entry struct {
	Word  string
	Tag   Tag
	Score float64
	Count int
}

// Vocabulary holds discovered words. A word is inserted at most once and never overwritten.
type Vocabulary struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewVocabulary returns an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{entries: make(map[string]Entry)}
}

// Add inserts e unless its word is already present. It reports whether e was inserted.
func (v *Vocabulary) Add(e Entry) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, exists := v.entries[e.Word]; exists {
		return false
	}
	v.entries[e.Word] = e
	return true
}

// Has reports whether word was discovered.
func (v *Vocabulary) Has(word string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.entries[word]
	return ok
}

// Get returns the entry for word.
func (v *Vocabulary) Get(word string) (Entry, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	e, ok := v.entries[word]
	return e, ok
}

// Len returns the number of words.
func (v *Vocabulary) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.entries)
}

// Tags returns the word to tag mapping.
func (v *Vocabulary) Tags() map[string]Tag {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make(map[string]Tag, len(v.entries))
	for w, e := range v.entries {
		out[w] = e.Tag
	}
	return out
}

// Words returns the words sorted.
func (v *Vocabulary) Words() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	words := make([]string, 0, len(v.entries))
	for w := range v.entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Ranked returns the entries ordered by descending score, then by word.
func (v *Vocabulary) Ranked() []Entry {
	v.mu.RLock()
	entries := make([]Entry, 0, len(v.entries))
	for _, e := range v.entries {
		entries = append(entries, e)
	}
	v.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Word < entries[j].Word
	})
	return entries
}
