package cmd

import (
	"github.com/spf13/cobra"
)

var checkAllCmd = &cobra.Command{
	Use:   "check-all",
	Short: "Grade every exercise (working copy if present, else the starter); progress is not recorded",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		timeout, err := timeoutFlag(cmd)
		if err != nil {
			return err
		}
		quiet, _ := cmd.Flags().GetBool("quiet")

		sum, err := a.eng.CheckAll(cmd.Context(), timeout)
		if err != nil {
			return err
		}
		if sum.Total == 0 {
			a.println("No lessons found")
			return nil
		}

		for _, r := range sum.Results {
			switch {
			case r.Err != nil:
				a.println(a.styles.Fail.Render("!"), r.Exercise.ID, "- error:", r.Err)
			case r.Outcome.Passed:
				a.println(a.styles.Pass.Render("✓"), r.Exercise.ID, "- pass")
			default:
				a.println(a.styles.Fail.Render("✗"), r.Exercise.ID, "- fail")
				if !quiet {
					printOutcome(a, r.Outcome)
				}
			}
		}
		a.printf("Summary: %d/%d passed\n", sum.Passed, sum.Total)
		return nil
	}),
}

func init() {
	checkAllCmd.Flags().String("timeout", "", "Per-exercise grading deadline, e.g. 30 or 45s")
	checkAllCmd.Flags().BoolP("quiet", "q", false, "Do not print output of failing exercises")
}
