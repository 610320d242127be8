package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/kokoa/internal/utils"
	"github.com/bastiangx/kokoa/pkg/cohesion"
)

// WriteChunks writes entries in order to consecutive chunk files in dir,
// chunkSize entries per file, numbered from 1. Existing chunk files in dir are removed first.
func WriteChunks(dir string, entries []cohesion.Entry, chunkSize int) ([]ChunkInfo, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create dictionary dir %s: %w", dir, err)
	}
	if err := removeChunks(dir); err != nil {
		return nil, err
	}

	var infos []ChunkInfo
	for start, id := 0, 1; start < len(entries); start, id = start+chunkSize, id+1 {
		part := entries[start:min(start+chunkSize, len(entries))]
		filename := chunkFilename(dir, id)
		if err := writeChunk(filename, part); err != nil {
			return infos, err
		}
		infos = append(infos, ChunkInfo{ID: id, Filename: filename, WordCount: len(part), Exists: true})
		log.Debugf("Wrote chunk %d: %d words", id, len(part))
	}
	return infos, nil
}

func writeChunk(filename string, entries []cohesion.Entry) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create chunk file %s: %w", filename, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := binary.Write(w, binary.LittleEndian, int32(len(entries))); err != nil {
		return fmt.Errorf("failed to write chunk header: %w", err)
	}
	for _, e := range entries {
		if len(e.Word) > math.MaxUint16 {
			return fmt.Errorf("word too long for chunk format: %d bytes", len(e.Word))
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(e.Word))); err != nil {
			return err
		}
		if _, err := w.WriteString(e.Word); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(e.Count)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, float32(e.Score)); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write chunk file %s: %w", filename, err)
	}
	return nil
}

func removeChunks(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "dict_*.bin"))
	if err != nil {
		return fmt.Errorf("failed to scan for chunk files: %w", err)
	}
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			return fmt.Errorf("failed to remove stale chunk %s: %w", f, err)
		}
	}
	return nil
}

// WriteText writes entries as word,count,score lines.
func WriteText(filename string, entries []cohesion.Entry) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filename, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, e := range entries {
		line := strings.Join([]string{
			e.Word,
			strconv.Itoa(e.Count),
			strconv.FormatFloat(e.Score, 'g', -1, 64),
		}, ",")
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ReadText reads entries written by WriteText. Malformed lines are skipped.
func ReadText(filename string) ([]cohesion.Entry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var entries []cohesion.Entry
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parts := strings.Split(scanner.Text(), ",")
		if len(parts) != 3 {
			log.Debugf("Skipping malformed line %d in %s", lineNo, filename)
			continue
		}
		count, err := strconv.Atoi(parts[1])
		if err != nil {
			log.Debugf("Skipping line %d in %s: %v", lineNo, filename, err)
			continue
		}
		score, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			log.Debugf("Skipping line %d in %s: %v", lineNo, filename, err)
			continue
		}
		entries = append(entries, cohesion.Entry{Word: parts[0], Tag: cohesion.Unassigned, Count: count, Score: score})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return entries, nil
}
