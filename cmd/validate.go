package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/abhisek/rustdojo/internal/catalog"
)

var errValidationFailed = errors.New("lesson validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check lesson metadata and files",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		issues, n, err := a.eng.Validate()
		if err != nil {
			return err
		}
		for _, is := range issues {
			style := a.styles.Subtitle
			if is.Severity == catalog.SeverityError {
				style = a.styles.Fail
			}
			a.println(style.Render(is.String()))
		}
		if catalog.HasErrors(issues) {
			return errValidationFailed
		}
		a.printf("All lesson metadata OK (%s)\n", pluralize(n, "lesson"))
		return nil
	}),
}
