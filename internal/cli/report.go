package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/activitycal/internal/export"
	"github.com/idilsaglam/activitycal/internal/stats"
	"github.com/idilsaglam/activitycal/internal/ui"
)

func newStatsCommand(a *app) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise time spent per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flt, err := ff.build(a.svc)
			if err != nil {
				return classify("stats", err)
			}
			acts, err := a.svc.Activities(flt)
			if err != nil {
				return classify("stats", err)
			}
			cats, err := a.svc.Categories()
			if err != nil {
				return classify("stats", err)
			}
			sum := stats.Summarize(acts, cats)
			if a.opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), sum)
			}

			t := ui.Current()
			h, m := sum.Hours()
			lines := []string{
				ui.C(t.Title, "Statistics"),
				"",
				fmt.Sprintf("Activities: %d", sum.Count),
				fmt.Sprintf("Total time: %dh %02dmin", h, m),
			}
			if len(sum.Lines) > 0 {
				lines = append(lines, "")
			}
			for _, ln := range sum.Lines {
				lines = append(lines, fmt.Sprintf("%s %-12s %3d  %7s  %s",
					ui.Swatch(ln.Color, t.Dot), ln.Name, ln.Count,
					stats.FormatMinutes(ln.Minutes), ui.ProgressBar(ln.Percent, 20)))
			}
			ui.Panel(cmd.OutOrStdout(), lines)
			return nil
		},
	}
	ff.register(cmd)
	return cmd
}

func newExportCommand(a *app) *cobra.Command {
	var ff filterFlags
	var as, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write activities as CSV or iCalendar",
		Example: `  activitycal export --as csv -o activities.csv
  activitycal export --as ics --from 2025-01-01 --to 2025-01-31 > january.ics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !contains(export.Formats, as) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid export format %q: must be one of %v", as, export.Formats))
			}
			flt, err := ff.build(a.svc)
			if err != nil {
				return classify("export", err)
			}
			acts, err := a.svc.Activities(flt)
			if err != nil {
				return classify("export", err)
			}
			cats, err := a.svc.Categories()
			if err != nil {
				return classify("export", err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return WrapExitError(ExitFailure, "export", err)
				}
				defer f.Close()
				w = f
			}
			if err := export.Write(w, as, acts, cats, a.now()); err != nil {
				return WrapExitError(ExitFailure, "export", err)
			}
			if output != "" && output != "-" {
				a.log.Info("exported", "format", as, "file", output, "count", len(acts))
				ui.OK(cmd.ErrOrStderr(), fmt.Sprintf("exported %d activities to %s", len(acts), output))
			}
			return nil
		},
	}
	ff.register(cmd)
	cmd.Flags().StringVar(&as, "as", export.FormatCSV, "export format (csv|ics)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
