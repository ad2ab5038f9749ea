package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/rustdojo/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [file.xlsx]",
	Short: "Write progress and the leaderboard to a spreadsheet",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		path := "rustdojo-progress.xlsx"
		if len(args) == 1 {
			path = args[0]
		}

		ctx := cmd.Context()
		all, err := a.eng.Catalog()
		if err != nil {
			return err
		}
		p, err := a.eng.Progress(ctx)
		if err != nil {
			return err
		}
		lb, err := a.eng.Leaderboard(ctx, 0)
		if err != nil {
			return err
		}

		// Leaderboard returns newest first; the workbook expects file order.
		for i, j := 0, len(lb)-1; i < j; i, j = i+1, j-1 {
			lb[i], lb[j] = lb[j], lb[i]
		}
		if err := export.WriteFile(path, export.Workbook{Exercises: all, Progress: p, Leaderboard: lb}); err != nil {
			return err
		}
		a.printf("Exported to %s\n", path)
		return nil
	}),
}
