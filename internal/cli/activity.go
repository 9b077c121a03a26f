package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/activitycal/internal/model"
	"github.com/idilsaglam/activitycal/internal/stats"
	"github.com/idilsaglam/activitycal/internal/store/jsonstore"
	"github.com/idilsaglam/activitycal/internal/tracker"
	"github.com/idilsaglam/activitycal/internal/ui"
)

// filterFlags are shared by ls, stats and export.
type filterFlags struct {
	date, from, to, category string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "single day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.from, "from", "", "first day, inclusive")
	cmd.Flags().StringVar(&f.to, "to", "", "last day, inclusive")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category name or id")
}

func (f *filterFlags) build(svc *tracker.Service) (jsonstore.Filter, error) {
	flt := jsonstore.Filter{StartDate: f.from, EndDate: f.to}
	if f.date != "" {
		flt = jsonstore.Day(f.date)
	}
	if f.category != "" {
		id, err := categoryID(svc, f.category)
		if err != nil {
			return flt, err
		}
		flt = flt.InCategory(id)
	}
	return flt, nil
}

// categoryID resolves an exact category name, falling back to a numeric id.
func categoryID(svc *tracker.Service, s string) (int, error) {
	c, err := svc.CategoryByName(s)
	if err == nil {
		return c.ID, nil
	}
	if !errors.Is(err, tracker.ErrNotFound) {
		return 0, err
	}
	id, convErr := strconv.Atoi(strings.TrimSpace(s))
	if convErr != nil {
		return 0, err
	}
	return id, nil
}

func parseID(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, NewExitError(ExitCommandError, "not an id: "+s)
	}
	return n, nil
}

// -------------- ls ----------------

func newListCommand(a *app) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flt, err := ff.build(a.svc)
			if err != nil {
				return classify("ls", err)
			}
			acts, err := a.svc.Activities(flt)
			if err != nil {
				return classify("ls", err)
			}
			if a.opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), acts)
			}
			cats, err := a.svc.Categories()
			if err != nil {
				return classify("ls", err)
			}
			ui.Panel(cmd.OutOrStdout(), activityLines(acts, cats))
			return nil
		},
	}
	ff.register(cmd)
	return cmd
}

func activityLines(acts []model.Activity, cats []model.Category) []string {
	t := ui.Current()
	byID := make(map[int]model.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	s := stats.Summarize(acts, cats)
	lines := []string{
		fmt.Sprintf("%s  %d  %s %s",
			ui.C(t.Title, "Activities"), s.Count,
			ui.C(t.Accent, "Total"), stats.FormatMinutes(s.Minutes)),
		"",
	}
	if len(acts) == 0 {
		return append(lines, ui.C(t.Muted, "no activities"))
	}
	for _, act := range acts {
		c, ok := byID[act.CategoryID]
		if !ok {
			c = model.Category{Name: stats.UnknownName, Color: stats.UnknownColor}
		}
		title := act.Title
		if r := []rune(title); len(r) > 60 {
			title = string(r[:57]) + "..."
		}
		line := fmt.Sprintf("%s %s %s %s  %s  %s",
			ui.C(t.Muted, fmt.Sprintf("%3d.", act.ID)), act.Date,
			ui.Swatch(c.Color, t.Dot), title,
			ui.C(t.Muted, c.Name), stats.FormatMinutes(act.Duration))
		lines = append(lines, line)
		if act.Notes != "" {
			lines = append(lines, "     "+ui.C(t.Muted, act.Notes))
		}
	}
	return lines
}

// -------------- add / edit / rm ----------------

func newAddCommand(a *app) *cobra.Command {
	var category, date, notes string
	var duration int
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add an activity",
		Example: `  activitycal add Morning run -c Sport -m 30
  activitycal add "Chapter 4" -c Lecture -m 45 --date 2025-01-10 --notes "slow going"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = model.FormatDate(a.now())
			}
			catID, err := categoryID(a.svc, category)
			if err != nil {
				return classify("add", err)
			}
			id, err := a.svc.AddActivity(strings.Join(args, " "), catID, date, duration, notes)
			if err != nil {
				return classify("add", err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added #%d", id))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name or id")
	cmd.Flags().StringVarP(&date, "date", "d", "", "day (YYYY-MM-DD, default today)")
	cmd.Flags().IntVarP(&duration, "minutes", "m", 0, "duration in minutes")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "free-form notes")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}

func newEditCommand(a *app) *cobra.Command {
	var title, category, notes string
	var duration int
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an activity's title, category, duration or notes",
		Long:  "Change an activity. Flags left out keep their current value. The date cannot be changed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cur, err := a.svc.Activity(id)
			if err != nil {
				return classify("edit", err)
			}
			fl := cmd.Flags()
			if fl.Changed("title") {
				cur.Title = title
			}
			if fl.Changed("category") {
				if cur.CategoryID, err = categoryID(a.svc, category); err != nil {
					return classify("edit", err)
				}
			}
			if fl.Changed("minutes") {
				cur.Duration = duration
			}
			if fl.Changed("notes") {
				cur.Notes = notes
			}
			if err := a.svc.UpdateActivity(id, cur.Title, cur.CategoryID, cur.Duration, cur.Notes); err != nil {
				return classify("edit", err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("updated #%d", id))
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name or id")
	cmd.Flags().IntVarP(&duration, "minutes", "m", 0, "duration in minutes")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "free-form notes")
	return cmd
}

func newRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.svc.DeleteActivity(id); err != nil {
				return classify("rm", err)
			}
			ui.OK(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
}
