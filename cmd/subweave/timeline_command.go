package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subweave/internal/export"
	"subweave/internal/language"
	"subweave/internal/store"
	"subweave/internal/timecode"
)

func newTimelineCommand(ctx *commandContext) *cobra.Command {
	timelineCmd := &cobra.Command{
		Use:   "timeline",
		Short: "Inspect and manage stored timelines",
	}

	timelineCmd.AddCommand(newTimelineListCommand(ctx))
	timelineCmd.AddCommand(newTimelineShowCommand(ctx))
	timelineCmd.AddCommand(newTimelineImportCommand(ctx))
	timelineCmd.AddCommand(newTimelineExportCommand(ctx))
	timelineCmd.AddCommand(newTimelineRenameCommand(ctx))
	timelineCmd.AddCommand(newTimelineDeleteCommand(ctx))

	return timelineCmd
}

func newTimelineListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored timelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store) error {
				timelines, err := s.List(context.Background())
				if err != nil {
					return err
				}
				if len(timelines) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No timelines stored")
					return nil
				}
				rows := make([][]string, 0, len(timelines))
				for _, tl := range timelines {
					rows = append(rows, []string{
						tl.Name,
						language.Display(tl.Language),
						strconv.Itoa(tl.CueCount),
						tl.UpdatedAt.Format("2006-01-02 15:04"),
					})
				}
				out := renderTable(
					[]string{"Name", "Language", "Cues", "Updated"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
}

func newTimelineShowCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show the cues of a stored timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store) error {
				cctx := context.Background()
				tl, err := s.FindByName(cctx, args[0])
				if err != nil {
					return err
				}
				records, err := s.LoadCues(cctx, tl.ID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				heading := fmt.Sprintf("%s (%d cues)", tl.Name, len(records))
				fmt.Fprintln(out, renderHeading(heading, shouldColorize(out)))

				shown := records
				if limit > 0 && len(shown) > limit {
					shown = shown[:limit]
				}
				rows := make([][]string, 0, len(shown))
				for _, rec := range shown {
					rows = append(rows, []string{
						strconv.Itoa(rec.ID),
						timecode.FormatSRT(rec.Start),
						timecode.FormatSRT(rec.End),
						rec.Text,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Start", "End", "Text"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
				))
				if len(shown) < len(records) {
					fmt.Fprintf(out, "... %d more cues (raise --limit to see them)\n", len(records)-len(shown))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum cues to display (0 shows all)")
	return cmd
}

func newTimelineImportCommand(ctx *commandContext) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "import NAME FILE",
		Short: "Import an SRT file as a stored timeline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(args[1])
			if err != nil {
				return err
			}
			records := export.ParseSRT(raw)
			if len(records) == 0 {
				return fmt.Errorf("no cues found in %s", args[1])
			}
			tag := language.NormalizeTag(lang)
			for i := range records {
				records[i].Language = tag
			}
			return ctx.withStore(func(s *store.Store) error {
				cctx := context.Background()
				tl, err := s.FindByName(cctx, args[0])
				if errors.Is(err, store.ErrNotFound) {
					tl, err = s.Create(cctx, args[0], tag)
				}
				if err != nil {
					return err
				}
				if err := s.SaveCues(cctx, tl.ID, records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d cues into timeline %q\n", len(records), args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&lang, "language", "", "Language tag for the imported cues (e.g. en, zh, ja)")
	return cmd
}

func newTimelineExportCommand(ctx *commandContext) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export NAME",
		Short: "Render a stored timeline as SRT or WebVTT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store) error {
				cctx := context.Background()
				tl, err := s.FindByName(cctx, args[0])
				if err != nil {
					return err
				}
				records, err := s.LoadCues(cctx, tl.ID)
				if err != nil {
					return err
				}
				rendered, err := renderRecords(records, format)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), output, rendered)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "srt", "Output format: srt or vtt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func newTimelineRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename a stored timeline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store) error {
				cctx := context.Background()
				tl, err := s.FindByName(cctx, args[0])
				if err != nil {
					return err
				}
				if err := s.Rename(cctx, tl.ID, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "renamed timeline %q to %q\n", args[0], args[1])
				return nil
			})
		},
	}
}

func newTimelineDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a stored timeline and its cues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store) error {
				cctx := context.Background()
				tl, err := s.FindByName(cctx, args[0])
				if err != nil {
					return err
				}
				if err := s.Delete(cctx, tl.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted timeline %q\n", args[0])
				return nil
			})
		},
	}
}
