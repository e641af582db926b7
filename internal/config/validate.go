package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for values the rest of the system
// cannot work with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}

	th := c.Thresholds
	if th.MinDurationTrigger < 0 || th.RepairedDuration <= 0 ||
		th.GapCloseWindow < 0 || th.SameTextMergeGap < 0 {
		return fmt.Errorf("thresholds: values must be non-negative and repaired_duration positive")
	}
	if th.RepairedDuration < th.MinDurationTrigger {
		return fmt.Errorf("thresholds: repaired_duration %.3f below min_duration_trigger %.3f",
			th.RepairedDuration, th.MinDurationTrigger)
	}
	if c.Splitter.MaxWeight < 1 {
		return fmt.Errorf("splitter.max_weight: must be at least 1, got %d", c.Splitter.MaxWeight)
	}
	return nil
}
