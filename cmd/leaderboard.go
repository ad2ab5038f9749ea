package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/rustdojo/internal/ui/components"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show recent first-time completions",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		n, _ := cmd.Flags().GetInt("limit")
		entries, err := a.eng.Leaderboard(cmd.Context(), n)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			a.println("The leaderboard is empty. Complete an exercise to get on it!")
			return nil
		}

		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			name := e.Name
			if e.Avatar != nil {
				name = *e.Avatar + " " + name
			}
			rows = append(rows, []string{
				time.Unix(e.Timestamp, 0).Local().Format("2006-01-02 15:04"),
				name,
				e.LessonID,
				fmt.Sprint(e.Points),
				formatSecs(e.DurationSecs),
			})
		}
		a.println(components.Table(a.styles, []string{"When", "Who", "Exercise", "Points", "Time"}, rows))
		return nil
	}),
}

func init() {
	leaderboardCmd.Flags().IntP("limit", "n", 10, "Number of entries to show (0 for all)")
}
