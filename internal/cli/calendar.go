package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/activitycal/internal/calendar"
	"github.com/idilsaglam/activitycal/internal/model"
	"github.com/idilsaglam/activitycal/internal/tui"
	"github.com/idilsaglam/activitycal/internal/ui"
)

func newTUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := tui.Run(a.svc, tui.Options{Locale: a.cfg.Locale, Now: a.now, Logger: a.log})
			if err != nil {
				return WrapExitError(ExitFailure, "tui", err)
			}
			return nil
		},
	}
}

// dayJSON is the --format json shape of a grid cell.
type dayJSON struct {
	Date     string   `json:"date"`
	Today    bool     `json:"today,omitempty"`
	Selected bool     `json:"selected,omitempty"`
	Colors   []string `json:"colors"`
}

type monthJSON struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Weeks [][]dayJSON `json:"weeks"`
}

func newCalCommand(a *app) *cobra.Command {
	var selected string
	cmd := &cobra.Command{
		Use:   "cal [YYYY-MM]",
		Short: "Print a month with its category indicators",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := calendar.NewView(a.now())
			if len(args) == 1 {
				t, err := time.Parse("2006-01", args[0])
				if err != nil {
					return NewExitError(ExitCommandError, fmt.Sprintf("invalid month %q: want YYYY-MM", args[0]))
				}
				v = calendar.NewView(t)
			}
			if selected != "" {
				if !model.ValidateDate(selected) {
					return classify("cal", model.Invalid("select", model.ErrInvalidDate))
				}
				v = v.Select(selected)
			}
			g, _, err := calendar.BuildFrom(a.svc, v, a.now())
			if err != nil {
				return classify("cal", err)
			}
			if a.opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), monthToJSON(g))
			}
			ui.Panel(cmd.OutOrStdout(), ui.MonthLines(g, a.cfg.Locale))
			return nil
		},
	}
	cmd.Flags().StringVar(&selected, "select", "", "highlight a day (YYYY-MM-DD)")
	return cmd
}

func monthToJSON(g calendar.Grid) monthJSON {
	out := monthJSON{Year: g.Year, Month: int(g.Month)}
	for _, week := range g.Rows() {
		days := make([]dayJSON, 0, calendar.Cols)
		for _, c := range week {
			colors := c.Colors
			if colors == nil {
				colors = []string{}
			}
			days = append(days, dayJSON{Date: c.Date, Today: c.Today, Selected: c.Selected, Colors: colors})
		}
		out.Weeks = append(out.Weeks, days)
	}
	return out
}
