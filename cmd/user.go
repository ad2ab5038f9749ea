package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/rustdojo/internal/ui/components"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage the local account that keeps attempt history",
}

var userRegisterCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		pw, err := readPassword(cmd, a)
		if err != nil {
			return err
		}
		u, err := a.eng.Register(cmd.Context(), args[0], pw)
		if err != nil {
			return err
		}
		a.printf("Registered %s. Log in with `rustdojo user login %s`.\n", u.Username, u.Username)
		return nil
	}),
}

var userLoginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in so graded attempts are recorded to your history",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		pw, err := readPassword(cmd, a)
		if err != nil {
			return err
		}
		u, err := a.eng.Login(cmd.Context(), args[0], pw)
		if err != nil {
			return err
		}
		a.printf("Logged in as %s.\n", u.Username)
		return nil
	}),
}

var userLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out; progress stays on this machine",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		if err := a.eng.Logout(cmd.Context()); err != nil {
			return err
		}
		a.println("Logged out.")
		return nil
	}),
}

var userHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your graded attempts, newest first",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		hist, err := a.eng.History(cmd.Context())
		if err != nil {
			return err
		}
		if len(hist) == 0 {
			a.println("No attempts recorded yet.")
			return nil
		}
		limit, _ := cmd.Flags().GetInt("limit")
		if limit > 0 && len(hist) > limit {
			hist = hist[:limit]
		}

		rows := make([][]string, 0, len(hist))
		for _, h := range hist {
			result := a.styles.Fail.Render("fail")
			if h.Passed {
				result = a.styles.Pass.Render("pass")
			}
			dur := "-"
			if h.DurationSecs.Valid {
				dur = (time.Duration(h.DurationSecs.Int64) * time.Second).String()
			}
			rows = append(rows, []string{
				time.Unix(h.Timestamp, 0).Local().Format("2006-01-02 15:04"),
				h.LessonID,
				result,
				dur,
			})
		}
		a.println(components.Table(a.styles, []string{"When", "Exercise", "Result", "Time"}, rows))
		return nil
	}),
}

func init() {
	for _, c := range []*cobra.Command{userRegisterCmd, userLoginCmd} {
		c.Flags().String("password", "", "Password (read from stdin when omitted)")
	}
	userHistoryCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show (0 for all)")

	userCmd.AddCommand(userRegisterCmd)
	userCmd.AddCommand(userLoginCmd)
	userCmd.AddCommand(userLogoutCmd)
	userCmd.AddCommand(userHistoryCmd)
}

func readPassword(cmd *cobra.Command, a *app) (string, error) {
	if pw, _ := cmd.Flags().GetString("password"); pw != "" {
		return pw, nil
	}
	a.printf("Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("password is required")
	}
	return pw, nil
}
