package cmd

import (
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <exercise-id>",
	Short: "Delete the working copy and sandbox of one exercise (progress is kept)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id := args[0]
		rep, err := a.eng.ResetExercise(id)
		if err != nil {
			return err
		}
		if rep.WorkRemoved {
			a.printf("Reset working dir %s\n", rep.WorkDir)
		} else {
			a.printf("No working dir for %s\n", id)
		}
		if rep.SandboxRemoved {
			a.printf("Reset sandbox dir %s\n", rep.SandboxDir)
		}
		return nil
	}),
}
