package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/kokoa/pkg/cohesion"
)

// Loader loads vocabulary chunk files on demand into a patricia trie.
type Loader struct {
	dirPath      string
	maxWords     int
	loadedChunks map[int]bool
	chunkWords   map[int][]cohesion.Entry
	trie         *patricia.Trie
	totalWords   int
	mu           sync.RWMutex
}

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ID        int
	Filename  string
	WordCount int
	Exists    bool
}

// LoaderStats provides statistics about the loading process
type LoaderStats struct {
	LoadedWords     int
	LoadedChunks    int
	AvailableChunks int
}

// NewLoader creates a loader over dirPath. maxWords caps LoadAll; zero loads every chunk.
func NewLoader(dirPath string, maxWords int) *Loader {
	return &Loader{
		dirPath:      dirPath,
		maxWords:     maxWords,
		loadedChunks: make(map[int]bool),
		chunkWords:   make(map[int][]cohesion.Entry),
		trie:         patricia.NewTrie(),
	}
}

// GetAvailable scans the directory for valid chunk files sorted by ID.
// Files failing header validation are skipped.
func (l *Loader) GetAvailable() ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(l.dirPath, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		if err := ValidateFileFormat(file, FormatChunk); err != nil {
			log.Warnf("Skipping chunk %s: %v", file, err)
			continue
		}
		wordCount, err := readChunkHeader(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
			continue
		}
		chunks = append(chunks, ChunkInfo{ID: id, Filename: file, WordCount: wordCount, Exists: true})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ID < chunks[j].ID
	})
	return chunks, nil
}

func readChunkHeader(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var count int32
	if err := binary.Read(file, binary.LittleEndian, &count); err != nil {
		return 0, err
	}
	return int(count), nil
}

// LoadAll loads chunks in ID order until maxWords is reached.
func (l *Loader) LoadAll() error {
	chunks, err := l.GetAvailable()
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return fmt.Errorf("%w in %s", ErrNoChunks, l.dirPath)
	}

	loaded := 0
	for _, c := range chunks {
		if l.maxWords > 0 && loaded >= l.maxWords {
			break
		}
		if err := l.Load(c.ID); err != nil {
			return err
		}
		loaded += c.WordCount
	}
	log.Debugf("Loaded %d chunks from %s", len(l.GetLoadedIDs()), l.dirPath)
	return nil
}

// Load reads one chunk into memory. Loading an already loaded chunk is a no-op.
func (l *Loader) Load(id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loadedChunks[id] {
		return nil
	}

	filename := chunkFilename(l.dirPath, id)
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	entries, err := readChunk(bufio.NewReader(file))
	if err != nil {
		return fmt.Errorf("chunk %d: %w", id, err)
	}

	for _, e := range entries {
		l.trie.Insert(patricia.Prefix(e.Word), e)
	}
	l.chunkWords[id] = entries
	l.loadedChunks[id] = true
	l.totalWords += len(entries)
	log.Debugf("Chunk %d loaded: %d words", id, len(entries))
	return nil
}

func readChunk(r io.Reader) ([]cohesion.Entry, error) {
	var total int32
	if err := binary.Read(r, binary.LittleEndian, &total); err != nil {
		return nil, fmt.Errorf("failed to read chunk header: %w", err)
	}
	if total < 0 || total > maxChunkEntries {
		return nil, fmt.Errorf("invalid entry count %d", total)
	}

	entries := make([]cohesion.Entry, 0, total)
	for i := 0; i < int(total); i++ {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			return nil, fmt.Errorf("failed to read word length: %w", err)
		}
		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(r, wordBytes); err != nil {
			return nil, fmt.Errorf("failed to read word: %w", err)
		}
		var count uint32
		if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
			return nil, fmt.Errorf("failed to read frequency: %w", err)
		}
		var score float32
		if err := binary.Read(r, binary.LittleEndian, &score); err != nil {
			return nil, fmt.Errorf("failed to read score: %w", err)
		}
		entries = append(entries, cohesion.Entry{
			Word:  string(wordBytes),
			Tag:   cohesion.Unassigned,
			Count: int(count),
			Score: float64(score),
		})
	}
	return entries, nil
}

// Evict removes a chunk from memory and rebuilds the trie from the remaining chunks.
func (l *Loader) Evict(id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loadedChunks[id] {
		return fmt.Errorf("chunk %d is not loaded", id)
	}
	l.totalWords -= len(l.chunkWords[id])
	delete(l.loadedChunks, id)
	delete(l.chunkWords, id)

	l.trie = patricia.NewTrie()
	for _, entries := range l.chunkWords {
		for _, e := range entries {
			l.trie.Insert(patricia.Prefix(e.Word), e)
		}
	}
	log.Debugf("Evicted chunk %d", id)
	return nil
}

// Trie returns the trie of loaded words. Items are cohesion.Entry values.
// Load inserts into the returned trie, and Evict replaces it.
func (l *Loader) Trie() *patricia.Trie {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.trie
}

// GetLoadedIDs returns the sorted IDs of loaded chunks.
func (l *Loader) GetLoadedIDs() []int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]int, 0, len(l.loadedChunks))
	for id := range l.loadedChunks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// GetStats returns current loading statistics
func (l *Loader) GetStats() LoaderStats {
	chunks, _ := l.GetAvailable()

	l.mu.RLock()
	defer l.mu.RUnlock()
	return LoaderStats{
		LoadedWords:     l.totalWords,
		LoadedChunks:    len(l.loadedChunks),
		AvailableChunks: len(chunks),
	}
}
