// Package lexicon indexes a discovered vocabulary in a patricia trie for
// prefix completion and left/right tokenization of new text.
package lexicon

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/kokoa/pkg/cohesion"
)

// Lexicon is a read-mostly word index. Items stored in the trie are cohesion.Entry values.
type Lexicon struct {
	mu   sync.RWMutex
	trie *patricia.Trie
	size int
}

// New returns an empty lexicon.
func New() *Lexicon {
	return &Lexicon{trie: patricia.NewTrie()}
}

// FromEntries indexes entries. Later duplicates of a word are ignored.
func FromEntries(entries []cohesion.Entry) *Lexicon {
	l := New()
	for _, e := range entries {
		l.Add(e)
	}
	return l
}

// FromVocabulary indexes every word of v.
func FromVocabulary(v *cohesion.Vocabulary) *Lexicon {
	return FromEntries(v.Ranked())
}

// FromTrie wraps a trie whose items are cohesion.Entry values, such as the
// one built by dictionary.Loader. The trie is shared, not copied, so it must
// not be modified while the lexicon is in use.
func FromTrie(trie *patricia.Trie) *Lexicon {
	l := &Lexicon{trie: trie}
	_ = trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
		l.size++
		return nil
	})
	return l
}

// Add inserts e unless its word is present. It reports whether e was inserted.
func (l *Lexicon) Add(e cohesion.Entry) bool {
	if e.Word == "" {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.trie.Insert(patricia.Prefix(e.Word), e) {
		return false
	}
	l.size++
	return true
}

// Has reports whether word is indexed.
func (l *Lexicon) Has(word string) bool {
	_, ok := l.Get(word)
	return ok
}

// Get returns the entry stored for word.
func (l *Lexicon) Get(word string) (cohesion.Entry, bool) {
	if word == "" {
		return cohesion.Entry{}, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	item := l.trie.Get(patricia.Prefix(word))
	if item == nil {
		return cohesion.Entry{}, false
	}
	e, ok := item.(cohesion.Entry)
	if !ok {
		log.Errorf("Unknown item type: %T for word %s", item, word)
	}
	return e, ok
}

// Len returns the number of indexed words.
func (l *Lexicon) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.size
}

// Complete returns up to limit words that extend prefix, best score first.
// The prefix itself is not returned. A limit below one means no limit.
func (l *Lexicon) Complete(prefix string, limit int) []cohesion.Entry {
	if prefix == "" {
		return nil
	}

	l.mu.RLock()
	var out []cohesion.Entry
	err := l.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		if string(p) == prefix {
			return nil
		}
		if e, ok := item.(cohesion.Entry); ok {
			out = append(out, e)
		}
		return nil
	})
	l.mu.RUnlock()
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Word < out[j].Word
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
