package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/activitycal/internal/ui"
)

func newCategoryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cat",
		Aliases: []string{"category"},
		Short:   "Manage categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := a.svc.Categories()
			if err != nil {
				return classify("cat ls", err)
			}
			if a.opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), cats)
			}
			t := ui.Current()
			lines := []string{ui.C(t.Title, "Categories"), ""}
			for _, c := range cats {
				lines = append(lines, fmt.Sprintf("%s %s %s %s",
					ui.C(t.Muted, fmt.Sprintf("%3d.", c.ID)), ui.Swatch(c.Color, t.Dot), c.Name, ui.C(t.Muted, c.Color)))
			}
			ui.Panel(cmd.OutOrStdout(), lines)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "add <name> <color>",
		Short:   "Add a category",
		Example: `  activitycal cat add Yoga "#22AA88"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.svc.AddCategory(args[0], args[1])
			if err != nil {
				return classify("cat add", err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added category #%d", id))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id|name>",
		Short: "Delete a category that no activity uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := categoryID(a.svc, args[0])
			if err != nil {
				return classify("cat rm", err)
			}
			if err := a.svc.DeleteCategory(id); err != nil {
				return classify("cat rm", err)
			}
			ui.OK(cmd.OutOrStdout(), "removed category")
			return nil
		},
	})

	return cmd
}
