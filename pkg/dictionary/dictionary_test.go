package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/kokoa/pkg/cohesion"
)

func sampleEntries() []cohesion.Entry {
	return []cohesion.Entry{
		{Word: "안녕", Count: 12, Score: 1},
		{Word: "학교", Count: 7, Score: 0.94},
		{Word: "학생", Count: 5, Score: 0.875},
		{Word: "사과나무", Count: 3, Score: 0.5},
		{Word: "나무", Count: 2, Score: 0.25},
	}
}

func TestWriteChunks_LoadAll(t *testing.T) {
	dir := t.TempDir()
	infos, err := WriteChunks(dir, sampleEntries(), 2)
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, []int{2, 2, 1}, []int{infos[0].WordCount, infos[1].WordCount, infos[2].WordCount})

	l := NewLoader(dir, 0)
	require.NoError(t, l.LoadAll())
	assert.Equal(t, []int{1, 2, 3}, l.GetLoadedIDs())

	assert.Equal(t, 5, l.GetStats().LoadedWords)
	for _, e := range sampleEntries() {
		item := l.Trie().Get(patricia.Prefix(e.Word))
		require.NotNil(t, item, e.Word)
		got := item.(cohesion.Entry)
		assert.Equal(t, e.Count, got.Count)
		assert.InDelta(t, e.Score, got.Score, 1e-6)
	}
}

func TestLoader_MaxWords(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteChunks(dir, sampleEntries(), 2)
	require.NoError(t, err)

	l := NewLoader(dir, 2)
	require.NoError(t, l.LoadAll())
	assert.Equal(t, []int{1}, l.GetLoadedIDs())

	stats := l.GetStats()
	assert.Equal(t, 2, stats.LoadedWords)
	assert.Equal(t, 3, stats.AvailableChunks)
}

func TestLoader_Evict(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteChunks(dir, sampleEntries(), 2)
	require.NoError(t, err)

	l := NewLoader(dir, 0)
	require.NoError(t, l.LoadAll())
	require.NoError(t, l.Evict(1))

	assert.Nil(t, l.Trie().Get(patricia.Prefix("안녕")))
	assert.NotNil(t, l.Trie().Get(patricia.Prefix("사과나무")))
	assert.Equal(t, 3, l.GetStats().LoadedWords)
	assert.Error(t, l.Evict(1))
}

func TestLoader_NoChunks(t *testing.T) {
	err := NewLoader(t.TempDir(), 0).LoadAll()
	assert.ErrorIs(t, err, ErrNoChunks)
}

func TestWriteChunks_ReplacesStale(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteChunks(dir, sampleEntries(), 1)
	require.NoError(t, err)
	_, err = WriteChunks(dir, sampleEntries()[:2], 10)
	require.NoError(t, err)

	chunks, err := NewLoader(dir, 0).GetAvailable()
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 2, chunks[0].WordCount)
}

func TestLoader_SkipsInvalidChunks(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteChunks(dir, sampleEntries(), 10)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(chunkFilename(dir, 8), []byte{1, 0}, 0644))
	require.NoError(t, os.WriteFile(chunkFilename(dir, 9), []byte{0xff, 0xff, 0xff, 0xff}, 0644))

	l := NewLoader(dir, 0)
	chunks, err := l.GetAvailable()
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 1, chunks[0].ID)

	require.NoError(t, l.LoadAll())
	assert.Equal(t, []int{1}, l.GetLoadedIDs())
	assert.Equal(t, 1, l.GetStats().AvailableChunks)
}

func TestLoader_OnlyInvalidChunks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(chunkFilename(dir, 1), []byte{1}, 0644))

	err := NewLoader(dir, 0).LoadAll()
	assert.ErrorIs(t, err, ErrNoChunks)
}

func TestWriteChunks_BadSize(t *testing.T) {
	_, err := WriteChunks(t.TempDir(), sampleEntries(), 0)
	assert.Error(t, err)
}

func TestText_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, WriteText(path, sampleEntries()))

	got, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, sampleEntries(), got)
}

func TestReadText_SkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte("안녕,2,1\nbroken\n학교,x,1\n학생,1,0.5\n"), 0644))

	got, err := ReadText(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "학생", got[1].Word)
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteChunks(dir, sampleEntries(), 10)
	require.NoError(t, err)

	format, err := DetectFileFormat(chunkFilename(dir, 1))
	require.NoError(t, err)
	assert.Equal(t, FormatChunk, format)

	csv := filepath.Join(dir, "words.csv")
	require.NoError(t, WriteText(csv, sampleEntries()))
	format, err = DetectFileFormat(csv)
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	other := filepath.Join(dir, "model.msgpack")
	require.NoError(t, os.WriteFile(other, []byte{1}, 0644))
	_, err = DetectFileFormat(other)
	assert.Error(t, err)
}

func TestResizer(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteChunks(dir, sampleEntries(), 2)
	require.NoError(t, err)

	l := NewLoader(dir, 0)
	r := NewResizer(l)

	require.NoError(t, r.SetSize(2))
	assert.Equal(t, []int{1, 2}, l.GetLoadedIDs())

	require.NoError(t, r.SetSize(1))
	assert.Equal(t, []int{1}, l.GetLoadedIDs())
	assert.Nil(t, l.Trie().Get(patricia.Prefix("학생")))

	assert.Error(t, r.SetSize(0))
	assert.Error(t, r.SetSize(4))

	opts, err := r.Options()
	require.NoError(t, err)
	require.Len(t, opts, 3)
	assert.Equal(t, 5, opts[2].WordCount)
}
