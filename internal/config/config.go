package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Path   string `toml:"path"`
}

// Storage contains timeline persistence configuration.
type Storage struct {
	DatabasePath string `toml:"database_path"`
}

// Thresholds contains the reconciliation tuning values. See the package
// documentation for why these are configuration rather than constants.
type Thresholds struct {
	MinDurationTrigger float64 `toml:"min_duration_trigger"`
	RepairedDuration   float64 `toml:"repaired_duration"`
	GapCloseWindow     float64 `toml:"gap_close_window"`
	SameTextMergeGap   float64 `toml:"same_text_merge_gap"`
}

// Splitter contains auto-split configuration.
type Splitter struct {
	MaxWeight int `toml:"max_weight"`
}

// Config is the root configuration document.
type Config struct {
	Logging    Logging    `toml:"logging"`
	Storage    Storage    `toml:"storage"`
	Thresholds Thresholds `toml:"thresholds"`
	Splitter   Splitter   `toml:"splitter"`
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() string {
	return "~/.config/subweave/config.toml"
}

// Load reads the config file at path, or the defaults when the file does not
// exist. An empty path means the standard location.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	data, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if normErr := cfg.Normalize(); normErr != nil {
				return nil, normErr
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", expanded, err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteSample writes the annotated sample config to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// EnsureDirectories creates the directories the configuration points at.
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.Storage.DatabasePath)}
	if c.Logging.Path != "" {
		dirs = append(dirs, filepath.Dir(c.Logging.Path))
	}
	for _, dir := range dirs {
		if dir == "." || dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure directory %s: %w", dir, err)
		}
	}
	return nil
}
