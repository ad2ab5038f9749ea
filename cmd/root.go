package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/abhisek/rustdojo/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "rustdojo",
	Short:         "Learn Rust by solving real exercises",
	Long:          "rustdojo walks you through Rust exercises in order, grades your code with cargo and keeps score.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(checkAllCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(solutionCmd)
	rootCmd.AddCommand(clearAllCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

// addGlobalFlags registers the configuration overrides every command accepts.
func addGlobalFlags(f *pflag.FlagSet) {
	f.String("config", "", "Path to a YAML config file (overrides "+config.EnvPrefix+"CONFIG)")
	f.String("env-file", ".env", "Load KEY=value pairs from this file before reading the environment")
	f.String("lessons", "", "Lessons directory (overrides "+config.EnvPrefix+"LESSONS_DIR)")
	f.String("data-dir", "", "Data directory for progress, working copies and sandboxes")
	f.String("order-file", "", "YAML file replacing the built-in exercise order")
	f.Bool("force", false, "Unlock every exercise")
	f.String("command", "", "Sandbox build-and-test command")
	f.Int("parallelism", 0, "Exercises graded at once by check-all")
	f.String("log-level", "", "Log level: debug, info, warn or error")
	f.String("log-format", "", "Log format: console or json")
	f.String("log-file", "", "Write logs to this file instead of stderr")
}

// resolveConfig layers flags over the file and environment configuration.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	envFile, _ := flags.GetString("env-file")
	if envFile != "" {
		if err := config.LoadDotEnv(envFile); err != nil {
			return config.Config{}, err
		}
	}

	path, _ := flags.GetString("config")
	cfg, err := config.Load(path, os.Getenv)
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("lessons") {
		cfg.LessonsDir, _ = flags.GetString("lessons")
	}
	if flags.Changed("data-dir") {
		cfg.DataDir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("order-file") {
		cfg.OrderFile, _ = flags.GetString("order-file")
	}
	if flags.Changed("force") {
		cfg.ForceUnlock, _ = flags.GetBool("force")
	}
	if flags.Changed("command") {
		cfg.Command, _ = flags.GetString("command")
	}
	if flags.Changed("parallelism") {
		cfg.Parallelism, _ = flags.GetInt("parallelism")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if flags.Changed("log-file") {
		cfg.Log.File, _ = flags.GetString("log-file")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
