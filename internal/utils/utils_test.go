package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatWithCommas(t *testing.T) {
	tests := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
		100000:   "100,000",
	}
	for n, want := range tests {
		assert.Equal(t, want, FormatWithCommas(n))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.5s", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "12ms", FormatDuration(12*time.Millisecond+300*time.Microsecond))
}

func TestParseTOMLWithRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, os.WriteFile(path, []byte("[train]\nworkers = 4\nout = \"data\"\ndebug = true\n"), 0644))

	raw, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	section, ok := ExtractSection(raw, "train")
	require.True(t, ok)

	n, ok := ExtractInt64(section, "workers")
	assert.True(t, ok)
	assert.Equal(t, 4, n)
	s, ok := ExtractString(section, "out")
	assert.True(t, ok)
	assert.Equal(t, "data", s)
	b, ok := ExtractBool(section, "debug")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = ExtractInt64(section, "out")
	assert.False(t, ok)
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	res := CheckDirStatus(dir)
	require.NoError(t, res.Error)
	assert.True(t, res.Exists)
	assert.True(t, res.Writable)
	assert.True(t, IsDir(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
}
