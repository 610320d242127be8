// Package corpus reads training documents from plain text and JSON news files.
//
// Text files contribute one document per non-empty line. JSON files hold a
// news item object with "title" and "content", or an array of them, and
// contribute both fields as separate documents when both are present. JSON
// Lines files hold one such object per line. Every document is normalized to
// NFC so decomposed Hangul reaches segmentation as precomposed syllables.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
	"golang.org/x/text/unicode/norm"
)

// ErrUnsupported is returned for a file whose extension has no reader.
var ErrUnsupported = errors.New("corpus: unsupported file type")

// Reader turns one file into documents.
type Reader func(r io.Reader) ([]string, error)

var readers = map[string]Reader{
	".txt":   ReadText,
	".json":  ReadJSON,
	".jsonl": ReadJSONLines,
}

// Supported reports whether path has a known extension.
func Supported(path string) bool {
	_, ok := readers[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load reads every path in order. Directories are walked in lexical order and
// files with unknown extensions inside them are skipped.
func Load(paths ...string) ([]string, error) {
	var docs []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			got, err := LoadFile(p)
			if err != nil {
				return nil, err
			}
			docs = append(docs, got...)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !Supported(path) {
				return nil
			}
			got, err := LoadFile(path)
			if err != nil {
				return err
			}
			docs = append(docs, got...)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
	}
	return docs, nil
}

// LoadFile reads one file with the reader registered for its extension.
func LoadFile(path string) ([]string, error) {
	read, ok := readers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file %s: %w", path, err)
	}
	defer file.Close()

	docs, err := read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file %s: %w", path, err)
	}
	log.Debugf("Read %d documents from %s", len(docs), path)
	return docs, nil
}

// ReadText returns every non-empty line of r.
func ReadText(r io.Reader) ([]string, error) {
	var docs []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if doc := normalize(scanner.Text()); doc != "" {
			docs = append(docs, doc)
		}
	}
	return docs, scanner.Err()
}

// ReadJSON reads a news item object or an array of them.
func ReadJSON(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	result := gjson.ParseBytes(data)
	if !result.IsArray() {
		return newsItem(result), nil
	}
	var docs []string
	result.ForEach(func(_, item gjson.Result) bool {
		docs = append(docs, newsItem(item)...)
		return true
	})
	return docs, nil
}

// ReadJSONLines reads one news item object per line. Invalid lines are skipped.
func ReadJSONLines(r io.Reader) ([]string, error) {
	var docs []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if !gjson.Valid(text) {
			log.Debugf("Skipping invalid JSON on line %d", line)
			continue
		}
		docs = append(docs, newsItem(gjson.Parse(text))...)
	}
	return docs, scanner.Err()
}

// newsItem returns the title and content of item, or nothing unless both are set.
func newsItem(item gjson.Result) []string {
	if !item.IsObject() {
		return nil
	}
	title := normalize(item.Get("title").String())
	content := normalize(item.Get("content").String())
	if title == "" || content == "" {
		return nil
	}
	return []string{title, content}
}

func normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
