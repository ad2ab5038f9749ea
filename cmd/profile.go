package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/rustdojo/internal/engine"
	"github.com/abhisek/rustdojo/internal/ui/theme"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change your display name, avatar, theme and text scale",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		flags := cmd.Flags()
		var u engine.ProfileUpdate
		if flags.Changed("name") {
			v, _ := flags.GetString("name")
			u.DisplayName = &v
		}
		if flags.Changed("avatar") {
			v, _ := flags.GetString("avatar")
			u.Avatar = &v
		}
		if flags.Changed("theme") {
			v, _ := flags.GetString("theme")
			if !theme.Valid(v) {
				return fmt.Errorf("unknown theme %q (choose from %v)", v, theme.Names)
			}
			v = theme.Canonical(v)
			u.Theme = &v
		}
		if flags.Changed("text-scale") {
			v, _ := flags.GetFloat32("text-scale")
			u.TextScale = &v
		}

		ctx := cmd.Context()
		p, err := a.eng.Progress(ctx)
		if err != nil {
			return err
		}
		if u != (engine.ProfileUpdate{}) {
			if p, err = a.eng.UpdateProfile(ctx, u); err != nil {
				return err
			}
			a.println(a.styles.Pass.Render("Profile updated."))
		}

		a.printf("Name:       %s\n", p.Name())
		a.printf("Avatar:     %s\n", deref(p.Avatar, "-"))
		a.printf("Theme:      %s\n", deref(p.Theme, "-"))
		if p.TextScale != nil {
			a.printf("Text scale: %g\n", *p.TextScale)
		}
		if p.CurrentUsername != nil {
			a.printf("Logged in:  %s\n", *p.CurrentUsername)
		}
		return nil
	}),
}

func init() {
	f := profileCmd.Flags()
	f.String("name", "", "Display name shown on the leaderboard")
	f.String("avatar", "", "Avatar, usually an emoji")
	f.String("theme", "", "Color theme: Dark or Light")
	f.Float32("text-scale", 1, "Text scale, greater than 0 and at most 4")
}

func deref(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
