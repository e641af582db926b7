package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subweave/internal/export"
	"subweave/internal/merge"
	"subweave/internal/store"
	"subweave/internal/subtitle"
	"subweave/internal/timecode"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var (
		fromValue   string
		toValue     string
		progressive bool
		timeline    string
		format      string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "merge [BASE] FRESH",
		Short: "Replace a time window of a timeline with freshly parsed cues",
		Long: `Merge carves the window [--from, --to) out of the base timeline and
inserts the cues from FRESH in its place. Base cues spanning a window edge
are clipped rather than dropped.

The base is either an SRT file given as the first argument or a stored
timeline named with --timeline; with --timeline the merged result is saved
back to the store.

With --progressive the window is only carved up to the end of the fresh
cues, so a partially transcribed window keeps its trailing base cues until
a later pass covers them.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if timeline == "" && len(args) != 2 {
				return fmt.Errorf("merge needs BASE and FRESH files, or --timeline and FRESH")
			}
			if timeline != "" && len(args) != 1 {
				return fmt.Errorf("--timeline replaces the BASE argument; give only FRESH")
			}

			freshPath := args[len(args)-1]
			freshRaw, err := readInput(freshPath)
			if err != nil {
				return err
			}
			fresh := export.ParseSRT(freshRaw)

			from, err := parseTimeValue(fromValue, defaultFrom(fresh))
			if err != nil {
				return fmt.Errorf("parse --from: %w", err)
			}
			to, err := parseTimeValue(toValue, defaultTo(fresh))
			if err != nil {
				return fmt.Errorf("parse --to: %w", err)
			}
			seg := subtitle.Segment{Start: from, End: to}

			apply := func(existing []subtitle.Record) []subtitle.Record {
				if progressive {
					return merge.Progressive(existing, fresh, seg)
				}
				return merge.Segment(existing, fresh, seg)
			}

			if timeline != "" {
				return ctx.withStore(func(s *store.Store) error {
					cctx := context.Background()
					tl, err := s.FindByName(cctx, timeline)
					if err != nil {
						return err
					}
					existing, err := s.LoadCues(cctx, tl.ID)
					if err != nil {
						return err
					}
					merged := apply(existing)
					if err := s.SaveCues(cctx, tl.ID, merged); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "merged %d cues into timeline %q (%d total)\n",
						len(fresh), timeline, len(merged))
					return nil
				})
			}

			baseRaw, err := readInput(args[0])
			if err != nil {
				return err
			}
			merged := apply(export.ParseSRT(baseRaw))
			rendered, err := renderRecords(merged, format)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, rendered)
		},
	}

	cmd.Flags().StringVar(&fromValue, "from", "", "Window start, seconds or HH:MM:SS[,mmm] (default: first fresh cue)")
	cmd.Flags().StringVar(&toValue, "to", "", "Window end, seconds or HH:MM:SS[,mmm] (default: last fresh cue)")
	cmd.Flags().BoolVar(&progressive, "progressive", false, "Only carve the base up to the last fresh cue")
	cmd.Flags().StringVar(&timeline, "timeline", "", "Merge into the named stored timeline instead of a file")
	cmd.Flags().StringVarP(&format, "format", "f", "srt", "Output format: srt or vtt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

// parseTimeValue accepts plain seconds ("12.5") or any timestamp form the
// timecode package recognizes. An empty value yields the fallback.
func parseTimeValue(value string, fallback float64) (float64, error) {
	if value == "" {
		return fallback, nil
	}
	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		return seconds, nil
	}
	if seconds, ok := timecode.Parse(value); ok {
		return seconds, nil
	}
	return 0, fmt.Errorf("unrecognized time %q", value)
}

func defaultFrom(fresh []subtitle.Record) float64 {
	if len(fresh) == 0 {
		return 0
	}
	return fresh[0].Start
}

func defaultTo(fresh []subtitle.Record) float64 {
	if len(fresh) == 0 {
		return 0
	}
	return fresh[len(fresh)-1].End
}
