package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"subweave/internal/logging"
	"subweave/internal/normalize"
	"subweave/internal/response"
	"subweave/internal/split"
	"subweave/internal/store"
	"subweave/internal/subtitle"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	var (
		format    string
		output    string
		saveName  string
		linesPath string
		maxWeight int
	)

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a raw model response into a normalized subtitle timeline",
		Long: `Parse reads a model response (structured JSON, a response envelope, or
plain text with bracketed timestamps), repairs it into a clean ordered
timeline, and writes SRT or VTT. With --lines, timing-only responses resolve
their text from the given file, one subtitle per line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			raw, err := readInput(args[0])
			if err != nil {
				return err
			}

			parseCtx := response.Context{
				Logger: logging.WithComponent(ctx.ensureLogger(), "parse"),
			}
			if linesPath != "" {
				linesRaw, err := readInput(linesPath)
				if err != nil {
					return err
				}
				parseCtx.Lines = splitLines(linesRaw)
			}

			records, err := response.Parse(raw, parseCtx)
			if err != nil {
				return err
			}

			records = normalize.Apply(records, normalizeOptions(cfg))
			if weight := effectiveMaxWeight(maxWeight, cfg.Splitter.MaxWeight); weight > 0 {
				records = split.AutoAll(records, weight)
			}

			if saveName != "" {
				if err := saveTimeline(ctx, saveName, records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %d cues to timeline %q\n", len(records), saveName)
				return nil
			}

			rendered, err := renderRecords(records, format)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, rendered)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "srt", "Output format: srt or vtt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&saveName, "save", "", "Save the result as a named timeline instead of printing")
	cmd.Flags().StringVar(&linesPath, "lines", "", "File with user-provided subtitle text, one line per index")
	cmd.Flags().IntVar(&maxWeight, "max-weight", 0, "Auto-split subtitles above this weight (0 uses the configured default)")

	return cmd
}

func effectiveMaxWeight(flagValue, configured int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configured
}

func splitLines(raw string) []string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func saveTimeline(ctx *commandContext, name string, records []subtitle.Record) error {
	return ctx.withStore(func(s *store.Store) error {
		return upsertTimeline(context.Background(), s, name, records)
	})
}

// upsertTimeline saves records under name, creating the timeline on first
// use.
func upsertTimeline(cctx context.Context, s *store.Store, name string, records []subtitle.Record) error {
	tl, err := s.FindByName(cctx, name)
	if errors.Is(err, store.ErrNotFound) {
		tl, err = s.Create(cctx, name, "")
	}
	if err != nil {
		return err
	}
	return s.SaveCues(cctx, tl.ID, records)
}
