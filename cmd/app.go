package cmd

import (
	"errors"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/rustdojo/internal/config"
	"github.com/abhisek/rustdojo/internal/engine"
	"github.com/abhisek/rustdojo/internal/logging"
	"github.com/abhisek/rustdojo/internal/sandbox"
	"github.com/abhisek/rustdojo/internal/store"
	"github.com/abhisek/rustdojo/internal/ui/theme"
	"github.com/abhisek/rustdojo/internal/unlock"
)

// app is the per-invocation wiring shared by every subcommand.
type app struct {
	cfg    config.Config
	log    *zap.Logger
	eng    *engine.Engine
	styles theme.Styles
	out    io.Writer

	closers []func() error
}

// setup resolves configuration and builds the engine. Callers must Close
// the returned app.
func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log, out: cmd.OutOrStdout()}
	a.closers = append(a.closers, closeLog, func() error {
		_ = log.Sync()
		return nil
	})

	order := unlock.DefaultOrder()
	if cfg.OrderFile != "" {
		order, err = unlock.LoadOrder(cfg.OrderFile)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	grader, err := sandbox.New(sandbox.Options{
		Root:           cfg.SandboxDir(),
		Command:        cfg.Command,
		DefaultTimeout: cfg.DefaultTimeout,
		Logger:         log.Named("sandbox"),
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	opts := engine.Options{
		LessonsDir:     cfg.LessonsDir,
		WorkDir:        cfg.WorkDir(),
		Store:          store.NewFileStore(cfg.DataDir),
		Grader:         grader,
		Resolver:       unlock.NewResolver(order, cfg.ForceUnlock),
		DefaultTimeout: cfg.DefaultTimeout,
		Parallelism:    cfg.Parallelism,
		Logger:         log.Named("engine"),
	}

	// Accounts are optional; without the database the user commands report
	// ErrNoAccounts and grading still works.
	if db, err := openAccounts(cfg); err != nil {
		log.Warn("attempt history unavailable", zap.String("path", cfg.DBPath()), zap.Error(err))
	} else {
		opts.Accounts = db.Accounts()
		a.closers = append(a.closers, db.Close)
	}

	a.eng, err = engine.New(opts)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.styles = theme.ForName(store.DefaultTheme)
	if p, err := a.eng.Progress(cmd.Context()); err == nil && p.Theme != nil {
		a.styles = theme.ForName(*p.Theme)
	}
	return a, nil
}

func openAccounts(cfg config.Config) (*store.Store, error) {
	path := cfg.DBPath()
	if err := store.EnsureDir(path); err != nil {
		return nil, err
	}
	return store.Open(path)
}

// Close releases the database and log file, newest first.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// println writes to the command's output, downsampling colors to what the
// terminal supports.
func (a *app) println(v ...any) {
	lipgloss.Fprintln(a.out, v...)
}

func (a *app) printf(format string, v ...any) {
	lipgloss.Fprintf(a.out, format, v...)
}

// withApp adapts a handler that needs the wired app into a cobra RunE.
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, args, a)
	}
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
