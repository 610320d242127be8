package cohesion

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotVersion is the on-disk model format version.
const SnapshotVersion = 1

// Snapshot is the persisted state of a trained model.
type Snapshot struct {
	Version     int                `msgpack:"v"`
	Frequencies map[string]int     `msgpack:"f"`
	Scores      map[string]float64 `msgpack:"s"`
	Chunks      []string           `msgpack:"c"`
}

// Snapshot captures the current counts, scores and chunks of m.
func (m *Model) Snapshot() Snapshot {
	freqs := make(map[string]int, m.table.Len())
	m.table.Range(func(w string, n int) bool {
		freqs[w] = n
		return true
	})
	scores := make(map[string]float64, len(m.scores))
	for w, s := range m.scores {
		scores[w] = s
	}
	return Snapshot{
		Version:     SnapshotVersion,
		Frequencies: freqs,
		Scores:      scores,
		Chunks:      append([]string(nil), m.chunks...),
	}
}

// FromSnapshot rebuilds a model without recounting. Scores are recomputed
// when the snapshot carries none.
func FromSnapshot(opts Options, snap Snapshot) (*Model, error) {
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	m := New(opts)
	for w, n := range snap.Frequencies {
		m.table.Add(w, n)
	}
	m.chunks = append([]string(nil), snap.Chunks...)
	if len(snap.Scores) == 0 {
		if err := m.Update(); err != nil {
			return nil, err
		}
		return m, nil
	}
	for w, s := range snap.Scores {
		m.scores[w] = s
	}
	return m, nil
}

// SaveSnapshot writes snap to path as msgpack.
func SaveSnapshot(snap Snapshot, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create model file %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := msgpack.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write model file %s: %w", path, err)
	}
	log.Debugf("Saved model to %s: %d candidates", path, len(snap.Frequencies))
	return nil
}

// LoadSnapshot reads a msgpack snapshot from path.
func LoadSnapshot(path string) (Snapshot, error) {
	var snap Snapshot
	file, err := os.Open(path)
	if err != nil {
		return snap, fmt.Errorf("failed to open model file %s: %w", path, err)
	}
	defer file.Close()

	if err := msgpack.NewDecoder(bufio.NewReader(file)).Decode(&snap); err != nil {
		return snap, fmt.Errorf("failed to decode model file %s: %w", path, err)
	}
	return snap, nil
}
