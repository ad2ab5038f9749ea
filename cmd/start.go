package cmd

import (
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start <exercise-id>",
	Short: "Create your working copy of an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		res, err := a.eng.Start(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		a.println(a.styles.Title.Render(res.Exercise.Title), a.styles.Subtitle.Render("("+res.Exercise.Difficulty.DisplayName()+")"))
		if res.Created {
			a.printf("Initialized working copy at %s\n", res.WorkingFile)
		} else {
			a.printf("Working copy already exists at %s\n", res.WorkingFile)
		}
		a.println(a.styles.Hint.Render("Edit it, then run `rustdojo check " + res.Exercise.ID + "`."))
		return nil
	}),
}
