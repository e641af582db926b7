package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subweave/internal/export"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Re-render an SRT file as SRT or WebVTT",
		Long: `Convert parses SRT, skipping malformed blocks and renumbering the
survivors, and renders the result in the requested format. Converting to
srt is useful on its own as a cleanup pass.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(args[0])
			if err != nil {
				return err
			}
			records := export.ParseSRT(raw)
			if len(records) == 0 {
				return fmt.Errorf("no cues found in %s", args[0])
			}
			rendered, err := renderRecords(records, format)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, rendered)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "vtt", "Output format: srt or vtt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}
