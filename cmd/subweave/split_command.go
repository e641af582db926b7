package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subweave/internal/export"
	"subweave/internal/split"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var (
		maxWeight int
		format    string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "split FILE",
		Short: "Split overlong subtitles into evenly weighted pieces",
		Long: `Split divides every cue whose text weight exceeds the limit into
near-equal chunks, slicing the original duration proportionally. Latin text
is weighed in words and split on word boundaries; CJK text is weighed in
characters and split near punctuation.`,
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
			weight := effectiveMaxWeight(maxWeight, cfg.Splitter.MaxWeight)
			if weight < 1 {
				return fmt.Errorf("max weight must be at least 1")
			}
			records = split.AutoAll(records, weight)
			rendered, err := renderRecords(records, format)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, rendered)
		},
	}

	cmd.Flags().IntVar(&maxWeight, "max-weight", 0, "Weight limit per cue (0 uses the configured default)")
	cmd.Flags().StringVarP(&format, "format", "f", "srt", "Output format: srt or vtt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}
