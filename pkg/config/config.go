/*
Package config manages the TOML config of kokoa.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/kokoa/internal/utils"
	"github.com/bastiangx/kokoa/pkg/cohesion"
)

// Config holds the entire config structure
type Config struct {
	Train  TrainConfig  `toml:"train"`
	Dict   DictConfig   `toml:"dict"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// TrainConfig holds word discovery options.
type TrainConfig struct {
	Workers      int    `toml:"workers"`
	Shards       int    `toml:"shards"`
	MinFrequency int    `toml:"min_frequency"`
	MinSyllables int    `toml:"min_syllables"`
	Out          string `toml:"out"`
}

// DictConfig holds dictionary file options.
type DictConfig struct {
	ChunkSize int `toml:"chunk_size"`
	MaxWords  int `toml:"max_words"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit int `toml:"max_limit"`
	MaxInput int `toml:"max_input"`
}

// CliConfig holds interactive mode options.
type CliConfig struct {
	ShowJamo   bool `toml:"show_jamo"`
	ShowChunks bool `toml:"show_chunks"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/kokoa
// 2. ~/Library/Application Support/kokoa (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "kokoa")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "kokoa")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/kokoa/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	opts := cohesion.DefaultOptions()
	return &Config{
		Train: TrainConfig{
			Workers:      opts.Workers,
			Shards:       opts.Shards,
			MinFrequency: opts.MinFrequency,
			MinSyllables: opts.MinSyllables,
			Out:          "kokoa-data",
		},
		Dict: DictConfig{
			ChunkSize: 10000,
			MaxWords:  0,
		},
		Server: ServerConfig{
			MaxLimit: 64,
			MaxInput: 4096,
		},
		CLI: CliConfig{
			ShowJamo:   true,
			ShowChunks: true,
		},
	}
}

// Options converts the train section into model options.
func (c *Config) Options() cohesion.Options {
	return cohesion.Options{
		Workers:      c.Train.Workers,
		Shards:       c.Train.Shards,
		MinFrequency: c.Train.MinFrequency,
		MinSyllables: c.Train.MinSyllables,
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every value that decodes with the right type and
// falls back to defaults for the rest.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(raw, "train"); ok {
		extractTrainConfig(section, &config.Train)
	}
	if section, ok := utils.ExtractSection(raw, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractTrainConfig(data map[string]any, train *TrainConfig) {
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		train.Workers = val
	}
	if val, ok := utils.ExtractInt64(data, "shards"); ok {
		train.Shards = val
	}
	if val, ok := utils.ExtractInt64(data, "min_frequency"); ok {
		train.MinFrequency = val
	}
	if val, ok := utils.ExtractInt64(data, "min_syllables"); ok {
		train.MinSyllables = val
	}
	if val, ok := utils.ExtractString(data, "out"); ok {
		train.Out = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractInt64(data, "chunk_size"); ok {
		dict.ChunkSize = val
	}
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		dict.MaxWords = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_input"); ok {
		server.MaxInput = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractBool(data, "show_jamo"); ok {
		cli.ShowJamo = val
	}
	if val, ok := utils.ExtractBool(data, "show_chunks"); ok {
		cli.ShowChunks = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
