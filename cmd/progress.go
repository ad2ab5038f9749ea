package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/rustdojo/internal/rewards"
	"github.com/abhisek/rustdojo/internal/store"
	"github.com/abhisek/rustdojo/internal/ui/components"
	"github.com/abhisek/rustdojo/internal/ui/layout"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show points, badges and per-exercise progress",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		p, err := a.eng.Progress(ctx)
		if err != nil {
			return err
		}
		tiers, err := a.eng.Tiers(ctx)
		if err != nil {
			return err
		}

		width := layout.Width(layout.DefaultWidth)
		avatar := store.DefaultAvatar
		if p.Avatar != nil {
			avatar = *p.Avatar
		}
		a.println(layout.RenderHeader(a.styles, p.Name(), avatar, p.TotalPoints, width))

		if len(p.Exercises) == 0 {
			a.println("No progress yet. Start an exercise!")
			return nil
		}

		var rows [][]string
		for _, t := range tiers {
			done := 0
			for _, st := range t.Exercises {
				if st.Progress.Completed {
					done++
				}
				if st.Progress.Attempts == 0 && st.Progress.LastStartedAt == nil {
					continue
				}
				status := "in progress"
				if st.Progress.Completed {
					status = "completed"
				}
				rows = append(rows, []string{
					st.Exercise.ID,
					status,
					fmt.Sprint(st.Progress.Attempts),
					fmt.Sprint(st.Progress.PointsEarned),
					formatSecs(st.Progress.BestDurationSecs),
				})
			}
			a.println(components.NewProgressBar(fmt.Sprintf("%-12s", t.Difficulty.DisplayName()), done, len(t.Exercises), width).View(a.styles))
		}

		if len(rows) > 0 {
			a.println(components.Table(a.styles, []string{"Exercise", "Status", "Attempts", "Points", "Best"}, rows))
		}

		if len(p.Badges) > 0 {
			a.println(a.styles.Title.Render("Badges"))
			for _, b := range p.Badges {
				a.println("  " + badgeLine(a, rewards.Badge(b)))
			}
		}
		return nil
	}),
}

func formatSecs(secs *uint64) string {
	if secs == nil {
		return "-"
	}
	return (time.Duration(*secs) * time.Second).String()
}
