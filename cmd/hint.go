package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/rustdojo/internal/ui/components"
	"github.com/abhisek/rustdojo/internal/ui/layout"
)

var hintCmd = &cobra.Command{
	Use:   "hint <exercise-id>",
	Short: "Show the exercise hint",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ex, err := a.eng.Exercise(args[0])
		if err != nil {
			return err
		}
		width := components.ContentWidth(layout.DefaultWidth)

		if ex.HasHint() {
			a.println(components.Card(a.styles, "Hint", ex.Hint, width))
		} else {
			a.println("No hint available.")
		}

		if explain, _ := cmd.Flags().GetBool("explain"); explain {
			if ex.ExplanationPath == "" {
				a.println("No explanation available.")
				return nil
			}
			text, err := os.ReadFile(ex.ExplanationPath)
			if err != nil {
				return fmt.Errorf("read explanation: %w", err)
			}
			a.println(components.Card(a.styles, "Explanation", string(text), width))
		}
		return nil
	}),
}

func init() {
	hintCmd.Flags().Bool("explain", false, "Also print the exercise's explanation.md")
}
