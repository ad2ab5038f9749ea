package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/rustdojo/internal/config"
	"github.com/abhisek/rustdojo/internal/engine"
	"github.com/abhisek/rustdojo/internal/rewards"
	"github.com/abhisek/rustdojo/internal/sandbox"
)

var checkCmd = &cobra.Command{
	Use:   "check <exercise-id>",
	Short: "Grade your working copy against the exercise tests",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		timeout, err := timeoutFlag(cmd)
		if err != nil {
			return err
		}
		res, err := a.eng.Check(cmd.Context(), args[0], timeout)
		if err != nil {
			return err
		}
		printOutcome(a, res.Outcome)
		if res.Outcome.Passed {
			printAward(a, res.Award, res.Progress.TotalPoints)
		}
		return nil
	}),
}

func init() {
	checkCmd.Flags().String("timeout", "", "Grading deadline, e.g. 30 or 45s (default: exercise, then config)")
}

// timeoutFlag reads --timeout. Zero means "not given".
func timeoutFlag(cmd *cobra.Command) (time.Duration, error) {
	raw, _ := cmd.Flags().GetString("timeout")
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	d, err := config.ParseTimeout(raw)
	if err != nil {
		return 0, fmt.Errorf("--timeout: %w", err)
	}
	return d, nil
}

func printOutcome(a *app, out sandbox.Outcome) {
	switch {
	case out.Passed:
		a.println(a.styles.Pass.Render("All tests passed 🎉"))
	case out.TimedOut:
		a.println(a.styles.Fail.Render(out.Stderr))
	default:
		a.println(a.styles.Fail.Render("Some tests failed"))
		if out.Stdout != "" {
			a.printf("stdout:\n%s\n", strings.TrimRight(out.Stdout, "\n"))
		}
		if out.Stderr != "" {
			a.printf("stderr:\n%s\n", strings.TrimRight(out.Stderr, "\n"))
		}
		if codes := sandbox.ErrorCodes(out.Stderr); len(codes) > 0 {
			a.println(a.styles.Title.Render("Help:"))
			for _, c := range codes {
				a.println("  - " + sandbox.DocURL(c))
			}
		}
	}
}

func printAward(a *app, award engine.Award, total uint32) {
	if award.DurationSecs != nil {
		a.printf("Solved in %s\n", time.Duration(*award.DurationSecs)*time.Second)
	}
	if !award.Fresh() {
		a.println(a.styles.Subtitle.Render("Already completed; no new points."))
		return
	}
	a.println(a.styles.Badge.Render(fmt.Sprintf("+%d points", award.Points)), a.styles.Subtitle.Render(fmt.Sprintf("(total %d)", total)))
	for _, b := range award.Badges {
		a.println(badgeLine(a, b))
	}
}

func badgeLine(a *app, b rewards.Badge) string {
	return a.styles.Badge.Render(b.Icon()+" "+string(b)) + " " + a.styles.Subtitle.Render(b.Description())
}
