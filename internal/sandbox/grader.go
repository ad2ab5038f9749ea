package sandbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/shlex"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/rustdojo/internal/catalog"
)

// DefaultCommand runs the exercise test suite.
const DefaultCommand = "cargo test --quiet"

// DefaultTimeout applies when neither the caller nor the exercise sets one.
const DefaultTimeout = 15 * time.Second

// Options configures a Grader.
type Options struct {
	// Root holds one directory per exercise, usually <data>/sandboxes.
	Root string

	// Command is split with shell quoting rules. Empty means DefaultCommand.
	Command string

	// DefaultTimeout is the global fallback. Zero means DefaultTimeout.
	DefaultTimeout time.Duration

	Logger *zap.Logger
}

// Grader runs exercise test suites in persistent per-exercise sandboxes.
// Runs for the same exercise are serialized; different exercises run
// independently.
type Grader struct {
	root           string
	argv           []string
	defaultTimeout time.Duration
	log            *zap.Logger

	locks sync.Map // exercise id -> *sync.Mutex
}

// New creates a Grader.
func New(opts Options) (*Grader, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("sandbox root is required")
	}
	command := opts.Command
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand
	}
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse sandbox command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("sandbox command is empty")
	}
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Grader{
		root:           opts.Root,
		argv:           argv,
		defaultTimeout: opts.DefaultTimeout,
		log:            opts.Logger,
	}, nil
}

// ResolveTimeout picks the grading deadline: an explicit caller value wins,
// then the exercise's timeout_secs, then fallback, then DefaultTimeout.
func ResolveTimeout(override time.Duration, ex catalog.Exercise, fallback time.Duration) time.Duration {
	switch {
	case override > 0:
		return override
	case ex.TimeoutSecs > 0:
		return time.Duration(ex.TimeoutSecs) * time.Second
	case fallback > 0:
		return fallback
	default:
		return DefaultTimeout
	}
}

// Dir returns the sandbox directory for an exercise id.
func (g *Grader) Dir(id string) string {
	return filepath.Join(g.root, catalog.DirName(id))
}

// Grade copies learnerSrc and the exercise's tests into the sandbox and runs
// the test command. A zero timeout resolves through ResolveTimeout. Test
// failures and timeouts are reported in the Outcome; the error is reserved
// for setup failures and cancellation of ctx.
func (g *Grader) Grade(ctx context.Context, ex catalog.Exercise, learnerSrc string, timeout time.Duration) (Outcome, error) {
	mu := g.lockFor(ex.ID)
	mu.Lock()
	defer mu.Unlock()

	timeout = ResolveTimeout(timeout, ex, g.defaultTimeout)
	dir := g.Dir(ex.ID)
	log := g.log.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("exercise", ex.ID),
	)

	if err := g.prepare(dir, ex, learnerSrc); err != nil {
		log.Error("sandbox setup failed", zap.Error(err))
		return Outcome{}, err
	}

	log.Debug("running tests", zap.Strings("argv", g.argv), zap.Duration("timeout", timeout))
	out, err := run(ctx, dir, g.argv, timeout)
	if err != nil {
		log.Warn("grading run failed", zap.Error(err))
		return Outcome{}, err
	}
	log.Info("graded",
		zap.Bool("passed", out.Passed),
		zap.Bool("timed_out", out.TimedOut),
		zap.Duration("elapsed", out.Elapsed),
	)
	return out, nil
}

// prepare provisions the sandbox on first use and refreshes its sources.
func (g *Grader) prepare(dir string, ex catalog.Exercise, learnerSrc string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &SetupError{Stage: StageCreateDir, Err: err}
	}

	manifest := filepath.Join(dir, ManifestFile)
	if _, err := os.Stat(manifest); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(manifest, []byte(Manifest), 0o644); err != nil {
			return &SetupError{Stage: StageManifest, Err: err}
		}
	} else if err != nil {
		return &SetupError{Stage: StageManifest, Err: err}
	}

	src, err := os.ReadFile(learnerSrc)
	if err != nil {
		return &SetupError{Stage: StageCopy, Err: fmt.Errorf("read learner source: %w", err)}
	}
	tests, err := os.ReadFile(ex.TestsPath)
	if err != nil {
		return &SetupError{Stage: StageCopy, Err: fmt.Errorf("read tests: %w", err)}
	}

	if err := writeFile(filepath.Join(dir, SourceFile), src); err != nil {
		return &SetupError{Stage: StageCopy, Err: err}
	}
	if err := writeFile(filepath.Join(dir, TestFile), []byte(RewriteTests(string(tests)))); err != nil {
		return &SetupError{Stage: StageCopy, Err: err}
	}
	return nil
}

// Reset removes the sandbox for id. A missing sandbox is not an error.
func (g *Grader) Reset(id string) error {
	mu := g.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	if err := os.RemoveAll(g.Dir(id)); err != nil {
		return fmt.Errorf("remove sandbox %s: %w", id, err)
	}
	return nil
}

// ResetAll removes every sandbox.
func (g *Grader) ResetAll() error {
	if err := os.RemoveAll(g.root); err != nil {
		return fmt.Errorf("remove sandboxes: %w", err)
	}
	return nil
}

func (g *Grader) lockFor(id string) *sync.Mutex {
	mu, _ := g.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
