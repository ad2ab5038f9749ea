package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/rustdojo/internal/engine"
	"github.com/abhisek/rustdojo/internal/ui/components"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List exercises in unlock order",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		tiers, err := a.eng.Tiers(cmd.Context())
		if err != nil {
			return err
		}
		if len(tiers) == 0 {
			a.printf("No exercises found under %q\n", a.cfg.LessonsDir)
			return nil
		}

		for _, t := range tiers {
			rows := make([][]string, 0, len(t.Exercises))
			for i, st := range t.Exercises {
				rows = append(rows, []string{fmt.Sprint(i + 1), st.Exercise.ID, st.Exercise.Title, statusLabel(a, st)})
			}
			a.println(a.styles.Title.Render(t.Difficulty.DisplayName()))
			a.println(components.Table(a.styles, []string{"#", "Exercise", "Title", "Status"}, rows))
		}
		return nil
	}),
}

func statusLabel(a *app, st engine.Status) string {
	switch {
	case st.Progress.Completed:
		return a.styles.Pass.Render("✓ done")
	case !st.Unlocked:
		return a.styles.Locked.Render("locked")
	case st.Progress.LastStartedAt != nil:
		return a.styles.Body.Render(fmt.Sprintf("in progress (%s)", pluralize(int(st.Progress.Attempts), "attempt")))
	default:
		return a.styles.Body.Render("open")
	}
}
