package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var clearAllCmd = &cobra.Command{
	Use:   "clear-all",
	Short: "Erase all progress, the leaderboard, working copies and sandboxes",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			a.printf("This deletes everything under %s. Type 'yes' to continue: ", a.cfg.DataDir)
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if strings.TrimSpace(line) != "yes" {
				return fmt.Errorf("aborted")
			}
		}
		if err := a.eng.ClearAll(cmd.Context()); err != nil {
			return err
		}
		a.println("Reset complete. Fresh start ready.")
		return nil
	}),
}

func init() {
	clearAllCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
