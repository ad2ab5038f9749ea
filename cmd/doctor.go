package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/abhisek/rustdojo/internal/sandbox"
)

var errToolchain = errors.New("toolchain check failed")

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the cargo toolchain and show where rustdojo keeps its files",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		a.printf("Lessons:   %s\n", a.cfg.LessonsDir)
		a.printf("Data:      %s\n", a.cfg.DataDir)
		a.printf("Sandboxes: %s\n", a.cfg.SandboxDir())
		a.printf("Command:   %s\n", a.cfg.Command)
		a.printf("Timeout:   %s\n", a.cfg.DefaultTimeout)
		if a.cfg.ForceUnlock {
			a.println(a.styles.Hint.Render("Force unlock is on."))
		}

		if all, err := a.eng.Catalog(); err != nil {
			a.println(a.styles.Fail.Render("✗ lessons:"), err)
		} else {
			a.printf("%s %s found\n", a.styles.Pass.Render("✓"), pluralize(len(all), "exercise"))
		}

		tc, err := sandbox.CheckToolchain(cmd.Context(), a.cfg.MinToolchain)
		if err != nil {
			a.println(a.styles.Fail.Render("✗ cargo:"), err)
			a.println(a.styles.Hint.Render("Install Rust from https://rustup.rs"))
			return errToolchain
		}
		if !tc.OK {
			a.printf("%s %s is older than %s\n", a.styles.Fail.Render("✗"), tc.Raw, a.cfg.MinToolchain)
			a.println(a.styles.Hint.Render("Run `rustup update` to upgrade."))
			return errToolchain
		}
		a.printf("%s %s\n", a.styles.Pass.Render("✓"), tc.Raw)
		return nil
	}),
}
