// Package sandbox builds and tests learner code against an exercise's fixed
// test suite inside a persistent per-exercise cargo project.
package sandbox

import (
	"fmt"
	"time"
)

// Outcome is the verdict of one grading run.
type Outcome struct {
	Passed   bool
	Stdout   string
	Stderr   string
	TimedOut bool
	Elapsed  time.Duration
}

// Setup stages reported by SetupError.
const (
	StageCreateDir = "create sandbox dir"
	StageManifest  = "write manifest"
	StageCopy      = "copy sources"
	StageSpawn     = "spawn command"
)

// SetupError reports a failure to prepare or launch the sandbox. A failing
// test run is never a SetupError.
type SetupError struct {
	Stage string
	Err   error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("sandbox %s: %v", e.Stage, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}
