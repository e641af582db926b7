package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"subweave/internal/config"
	"subweave/internal/export"
	"subweave/internal/normalize"
	"subweave/internal/subtitle"
)

// readInput returns the contents of path, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// writeOutput writes content to path, or to w when path is empty.
func writeOutput(w io.Writer, path, content string) error {
	if path == "" {
		_, err := io.WriteString(w, content)
		return err
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(expanded, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// renderRecords serializes records in the requested output format.
func renderRecords(records []subtitle.Record, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "srt", "":
		return export.RenderSRT(records), nil
	case "vtt":
		return export.RenderVTT(records), nil
	default:
		return "", fmt.Errorf("unsupported output format %q (srt or vtt)", format)
	}
}

func normalizeOptions(cfg *config.Config) normalize.Options {
	return normalize.Options{
		MinDurationTrigger: cfg.Thresholds.MinDurationTrigger,
		RepairedDuration:   cfg.Thresholds.RepairedDuration,
		GapCloseWindow:     cfg.Thresholds.GapCloseWindow,
		SameTextMergeGap:   cfg.Thresholds.SameTextMergeGap,
	}
}
