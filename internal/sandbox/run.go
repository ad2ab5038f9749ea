package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync/atomic"
	"time"
)

// waitDelay bounds how long Wait keeps draining pipes after the process
// group has been killed.
const waitDelay = 2 * time.Second

// run executes argv in dir with stdin closed. It returns a timed-out outcome
// when timeout elapses first, and an error when the parent context is
// cancelled or the process cannot be started.
func run(ctx context.Context, dir string, argv []string, timeout time.Duration) (Outcome, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "CARGO_TERM_COLOR=never")
	setProcessGroup(cmd)
	// killed decides the timeout, not runCtx.Err: the deadline may pass
	// between a normal exit and the return of Wait.
	var killed atomic.Bool
	cmd.Cancel = func() error {
		killed.Store(true)
		return killProcessGroup(cmd)
	}
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		if ctx.Err() != nil {
			return Outcome{}, fmt.Errorf("grading cancelled: %w", ctx.Err())
		}
		return Outcome{}, &SetupError{Stage: StageSpawn, Err: err}
	}
	waitErr := cmd.Wait()
	elapsed := time.Since(start)

	if ctx.Err() != nil {
		return Outcome{}, fmt.Errorf("grading cancelled: %w", ctx.Err())
	}
	return outcomeFor(result{
		killed:  killed.Load(),
		waitErr: waitErr,
		state:   cmd.ProcessState,
		stdout:  stdout.Bytes(),
		stderr:  stderr.Bytes(),
		timeout: timeout,
		elapsed: elapsed,
	})
}

// result is what run observed about a finished command.
type result struct {
	killed  bool
	waitErr error
	state   *os.ProcessState
	stdout  []byte
	stderr  []byte
	timeout time.Duration
	elapsed time.Duration
}

// outcomeFor turns a finished run into an Outcome. A run counts as timed out
// only when its process group was killed.
func outcomeFor(r result) (Outcome, error) {
	if r.killed {
		return Outcome{
			Passed:   false,
			TimedOut: true,
			Stderr:   "Timed out after " + r.timeout.String(),
			Elapsed:  r.elapsed,
		}, nil
	}

	out := Outcome{
		Passed:  r.waitErr == nil,
		Stdout:  decodeOutput(r.stdout),
		Stderr:  decodeOutput(r.stderr),
		Elapsed: r.elapsed,
	}
	if r.waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(r.waitErr, &exitErr) && !errors.Is(r.waitErr, exec.ErrWaitDelay) {
			return Outcome{}, fmt.Errorf("wait for command: %w", r.waitErr)
		}
		// ErrWaitDelay means the command succeeded but a leftover child
		// kept the output pipes open.
		out.Passed = exitErr == nil && r.state != nil && r.state.Success()
	}
	return out, nil
}
