package cohesion

import (
	"hash/maphash"
	"sort"
	"sync"
)

// FrequencyTable maps candidate text to the number of times it was observed.
type FrequencyTable struct {
	counts map[string]int
}

// NewFrequencyTable returns an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]int)}
}

// Add increments the count of word by n.
func (t *FrequencyTable) Add(word string, n int) {
	t.counts[word] += n
}

// Count returns how many times word was observed.
func (t *FrequencyTable) Count(word string) int {
	return t.counts[word]
}

// Len returns the number of distinct candidates.
func (t *FrequencyTable) Len() int {
	return len(t.counts)
}

// Merge adds every count of other into t.
func (t *FrequencyTable) Merge(other *FrequencyTable) {
	for w, n := range other.counts {
		t.counts[w] += n
	}
}

// Range calls fn for every entry until fn returns false. Order is unspecified.
func (t *FrequencyTable) Range(fn func(word string, count int) bool) {
	for w, n := range t.counts {
		if !fn(w, n) {
			return
		}
	}
}

// Words returns every candidate text sorted.
func (t *FrequencyTable) Words() []string {
	words := make([]string, 0, len(t.counts))
	for w := range t.counts {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// shardedCounter accumulates counts from concurrent workers.
// Each key lives in exactly one shard, so updates to a key are serialised by its shard lock.
type shardedCounter struct {
	seed   maphash.Seed
	shards []counterShard
}

type counterShard struct {
	mu     sync.Mutex
	counts map[string]int
}

func newShardedCounter(n int) *shardedCounter {
	if n < 1 {
		n = 1
	}
	c := &shardedCounter{
		seed:   maphash.MakeSeed(),
		shards: make([]counterShard, n),
	}
	for i := range c.shards {
		c.shards[i].counts = make(map[string]int)
	}
	return c
}

func (c *shardedCounter) shard(word string) *counterShard {
	return &c.shards[maphash.String(c.seed, word)%uint64(len(c.shards))]
}

// merge folds a worker-local table into the shared shards.
func (c *shardedCounter) merge(local map[string]int) {
	for w, n := range local {
		s := c.shard(w)
		s.mu.Lock()
		s.counts[w] += n
		s.mu.Unlock()
	}
}

// table flattens the shards. It must only be called after every merge has returned.
func (c *shardedCounter) table() *FrequencyTable {
	size := 0
	for i := range c.shards {
		size += len(c.shards[i].counts)
	}
	t := &FrequencyTable{counts: make(map[string]int, size)}
	for i := range c.shards {
		for w, n := range c.shards[i].counts {
			t.counts[w] = n
		}
	}
	return t
}
