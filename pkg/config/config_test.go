package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/kokoa/pkg/cohesion"
)

func TestDefaultConfig_MatchesModelDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cohesion.DefaultOptions(), cfg.Options())
	assert.Equal(t, 10000, cfg.Dict.ChunkSize)
	assert.Equal(t, 64, cfg.Server.MaxLimit)
	assert.True(t, cfg.CLI.ShowJamo)
}

func TestInitConfig_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadConfig_KeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[train]\nworkers = 3\nmin_frequency = 5\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Train.Workers)
	assert.Equal(t, 5, cfg.Train.MinFrequency)
	assert.Equal(t, 32, cfg.Train.Shards)
	assert.Equal(t, 4096, cfg.Server.MaxInput)
}

func TestLoadConfig_PartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[train]\nworkers = \"many\"\nshards = 8\n[cli]\nshow_jamo = false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Train.Workers)
	assert.Equal(t, 8, cfg.Train.Shards)
	assert.False(t, cfg.CLI.ShowJamo)
}

func TestLoadConfig_Unparseable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[[ not toml"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigWithPriority_CustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[dict]\nchunk_size = 50\n"), 0644))

	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 50, cfg.Dict.ChunkSize)
}
