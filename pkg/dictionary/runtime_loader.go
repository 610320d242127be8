package dictionary

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// Resizer grows or shrinks the set of loaded chunks at runtime.
// Loaded chunks always form a prefix of the rank order.
type Resizer struct {
	loader *Loader
	mu     sync.Mutex
}

// SizeOption describes one possible dictionary size.
type SizeOption struct {
	ChunkCount int    `msgpack:"chunks"`
	WordCount  int    `msgpack:"words"`
	SizeLabel  string `msgpack:"label"`
}

// NewResizer wraps loader.
func NewResizer(loader *Loader) *Resizer {
	return &Resizer{loader: loader}
}

// SetSize loads or evicts chunks until exactly target chunks are loaded.
func (r *Resizer) SetSize(target int) error {
	if target < 1 {
		return fmt.Errorf("minimum dictionary size is 1 chunk")
	}
	chunks, err := r.loader.GetAvailable()
	if err != nil {
		return err
	}
	if target > len(chunks) {
		return fmt.Errorf("requested %d chunks but only %d are available", target, len(chunks))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range chunks {
		if i < target {
			if err := r.loader.Load(c.ID); err != nil {
				return err
			}
		}
	}
	for _, id := range r.loader.GetLoadedIDs() {
		if !within(chunks[:target], id) {
			if err := r.loader.Evict(id); err != nil {
				return err
			}
		}
	}
	log.Debugf("Dictionary resized to %d chunks", target)
	return nil
}

func within(chunks []ChunkInfo, id int) bool {
	for _, c := range chunks {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Options lists the cumulative word count of each possible size.
func (r *Resizer) Options() ([]SizeOption, error) {
	chunks, err := r.loader.GetAvailable()
	if err != nil {
		return nil, err
	}

	options := make([]SizeOption, 0, len(chunks))
	total := 0
	for i, c := range chunks {
		total += c.WordCount
		options = append(options, SizeOption{
			ChunkCount: i + 1,
			WordCount:  total,
			SizeLabel:  fmt.Sprintf("%d words", total),
		})
	}
	return options, nil
}
