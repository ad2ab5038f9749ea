package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/abhisek/rustdojo/internal/engine"
)

var solutionCmd = &cobra.Command{
	Use:   "solution <exercise-id>",
	Short: "Show the start of the reference solution",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		sol, err := a.eng.Solution(args[0])
		if errors.Is(err, engine.ErrNoSolution) {
			a.printf("No official solution for %s\n", args[0])
			return nil
		}
		if err != nil {
			return err
		}
		a.printf("Solution: %s\n", sol.Path)
		a.println(sol.Preview)
		if sol.Truncated {
			a.println("...")
		}
		return nil
	}),
}
