package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading "~" against the current user's home
// directory and makes the result absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", trimmed, err)
	}
	return abs, nil
}

// Normalize expands paths and fills empty fields with defaults. It runs
// before Validate so validation always sees resolved values.
func (c *Config) Normalize() error {
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Storage.DatabasePath) == "" {
		c.Storage.DatabasePath = defaultDatabasePath
	}

	dbPath, err := ExpandPath(c.Storage.DatabasePath)
	if err != nil {
		return err
	}
	c.Storage.DatabasePath = dbPath

	if c.Logging.Path != "" {
		logPath, err := ExpandPath(c.Logging.Path)
		if err != nil {
			return err
		}
		c.Logging.Path = logPath
	}

	if c.Splitter.MaxWeight == 0 {
		c.Splitter.MaxWeight = defaultMaxWeight
	}
	th := &c.Thresholds
	if th.MinDurationTrigger == 0 {
		th.MinDurationTrigger = defaultMinDurationTrigger
	}
	if th.RepairedDuration == 0 {
		th.RepairedDuration = defaultRepairedDuration
	}
	if th.GapCloseWindow == 0 {
		th.GapCloseWindow = defaultGapCloseWindow
	}
	if th.SameTextMergeGap == 0 {
		th.SameTextMergeGap = defaultSameTextMergeGap
	}
	return nil
}
