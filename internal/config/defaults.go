package config

const (
	defaultLogLevel     = "info"
	defaultLogFormat    = "console"
	defaultDatabasePath = "~/.local/share/subweave/timelines.db"

	defaultMinDurationTrigger = 0.3
	defaultRepairedDuration   = 0.5
	defaultGapCloseWindow     = 0.1
	defaultSameTextMergeGap   = 0.3

	defaultMaxWeight = 12
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Storage: Storage{
			DatabasePath: defaultDatabasePath,
		},
		Thresholds: Thresholds{
			MinDurationTrigger: defaultMinDurationTrigger,
			RepairedDuration:   defaultRepairedDuration,
			GapCloseWindow:     defaultGapCloseWindow,
			SameTextMergeGap:   defaultSameTextMergeGap,
		},
		Splitter: Splitter{
			MaxWeight: defaultMaxWeight,
		},
	}
}
