package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subweave/internal/export"
	"subweave/internal/normalize"
)

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "normalize FILE",
		Short: "Repair timing defects in an SRT file",
		Long: `Normalize reads SRT, drops empty cues, repairs too-short durations,
resolves overlaps, closes small gaps, and merges adjacent cues that carry
the same text.`,
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
			records := export.ParseSRT(raw)
			if len(records) == 0 {
				return fmt.Errorf("no cues found in %s", args[0])
			}
			records = normalize.Apply(records, normalizeOptions(cfg))
			rendered, err := renderRecords(records, format)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, rendered)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "srt", "Output format: srt or vtt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}
