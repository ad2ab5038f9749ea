package sandbox

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/rustdojo/internal/catalog"
)

const addTests = `#[test] fn ok() { assert_eq!(crate::add(1, 2), 3); }
`

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func newTestGrader(t *testing.T, command string) *Grader {
	t.Helper()
	g, err := New(Options{Root: filepath.Join(t.TempDir(), "sandboxes"), Command: command})
	require.NoError(t, err)
	return g
}

func newExercise(t *testing.T, id, tests string) catalog.Exercise {
	t.Helper()
	root := filepath.Join(t.TempDir(), "lessons", filepath.FromSlash(id))
	require.NoError(t, os.MkdirAll(root, 0o755))
	testsPath := filepath.Join(root, catalog.TestsFile)
	require.NoError(t, os.WriteFile(testsPath, []byte(tests), 0o644))
	return catalog.Exercise{
		ID:         id,
		Title:      "Add",
		Difficulty: catalog.Beginner,
		Root:       root,
		TestsPath:  testsPath,
	}
}

func writeLearner(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lib.rs")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestGradePassAndFail(t *testing.T) {
	requireShell(t)
	g := newTestGrader(t, `sh -c 'grep -q "a + b" src/lib.rs'`)
	ex := newExercise(t, "intro/add", addTests)

	out, err := g.Grade(context.Background(), ex, writeLearner(t, "pub fn add(a: i32, b: i32) -> i32 { a + b }\n"), 5*time.Second)
	require.NoError(t, err)
	assert.True(t, out.Passed)
	assert.False(t, out.TimedOut)

	out, err = g.Grade(context.Background(), ex, writeLearner(t, "pub fn add(a: i32, b: i32) -> i32 { 41 }\n"), 5*time.Second)
	require.NoError(t, err)
	assert.False(t, out.Passed)
	assert.False(t, out.TimedOut)
}

func TestGradeCopiesAndRewritesSources(t *testing.T) {
	requireShell(t)
	g := newTestGrader(t, `sh -c 'grep -q "exercise_sandbox::add" tests/exercise.rs'`)
	ex := newExercise(t, "intro/add", addTests)
	learner := "pub fn add(a: i32, b: i32) -> i32 { a + b }\n"

	out, err := g.Grade(context.Background(), ex, writeLearner(t, learner), 5*time.Second)
	require.NoError(t, err)
	assert.True(t, out.Passed, out.Stderr)

	dir := g.Dir(ex.ID)
	assert.Equal(t, "intro_add", filepath.Base(dir))

	lib, err := os.ReadFile(filepath.Join(dir, SourceFile))
	require.NoError(t, err)
	assert.Equal(t, learner, string(lib))

	tests, err := os.ReadFile(filepath.Join(dir, TestFile))
	require.NoError(t, err)
	assert.Equal(t, "#[test] fn ok() { assert_eq!(exercise_sandbox::add(1, 2), 3); }\n", string(tests))
}

func TestGradeProvisionsManifestOnce(t *testing.T) {
	requireShell(t)
	g := newTestGrader(t, "true")
	ex := newExercise(t, "intro/add", addTests)
	src := writeLearner(t, "pub fn add() {}\n")

	_, err := g.Grade(context.Background(), ex, src, 5*time.Second)
	require.NoError(t, err)

	manifest := filepath.Join(g.Dir(ex.ID), ManifestFile)
	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	assert.Equal(t, Manifest, string(data))

	require.NoError(t, os.WriteFile(manifest, []byte("# edited\n"), 0o644))
	_, err = g.Grade(context.Background(), ex, src, 5*time.Second)
	require.NoError(t, err)

	data, err = os.ReadFile(manifest)
	require.NoError(t, err)
	assert.Equal(t, "# edited\n", string(data), "existing sandbox must not be re-provisioned")
}

func TestGradeCapturesOutput(t *testing.T) {
	requireShell(t)
	g := newTestGrader(t, `sh -c 'echo out; echo err >&2; exit 3'`)
	ex := newExercise(t, "intro/add", addTests)

	out, err := g.Grade(context.Background(), ex, writeLearner(t, ""), 5*time.Second)
	require.NoError(t, err)
	assert.False(t, out.Passed)
	assert.Equal(t, "out\n", out.Stdout)
	assert.Equal(t, "err\n", out.Stderr)
}

func TestGradeSpawnError(t *testing.T) {
	g := newTestGrader(t, "/nonexistent/rustdojo-test-runner")
	ex := newExercise(t, "intro/add", addTests)

	_, err := g.Grade(context.Background(), ex, writeLearner(t, ""), 5*time.Second)
	var setupErr *SetupError
	require.ErrorAs(t, err, &setupErr)
	assert.Equal(t, StageSpawn, setupErr.Stage)
}

func TestGradeMissingLearnerSource(t *testing.T) {
	g := newTestGrader(t, "true")
	ex := newExercise(t, "intro/add", addTests)

	_, err := g.Grade(context.Background(), ex, filepath.Join(t.TempDir(), "missing.rs"), 5*time.Second)
	var setupErr *SetupError
	require.ErrorAs(t, err, &setupErr)
	assert.Equal(t, StageCopy, setupErr.Stage)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGradeCancelledContext(t *testing.T) {
	requireShell(t)
	g := newTestGrader(t, "true")
	ex := newExercise(t, "intro/add", addTests)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Grade(ctx, ex, writeLearner(t, ""), 5*time.Second)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGradeSerializesSameExercise(t *testing.T) {
	requireShell(t)
	// Fails if another run for the same sandbox is in flight.
	g := newTestGrader(t, `sh -c 'if [ -e busy ]; then exit 1; fi; touch busy; sleep 0.2; rm busy'`)
	ex := newExercise(t, "intro/add", addTests)
	src := writeLearner(t, "")

	var wg sync.WaitGroup
	results := make([]Outcome, 3)
	errs := make([]error, 3)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = g.Grade(context.Background(), ex, src, 5*time.Second)
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.True(t, results[i].Passed, "run %d overlapped another", i)
	}
}

func TestReset(t *testing.T) {
	requireShell(t)
	g := newTestGrader(t, "true")
	a := newExercise(t, "intro/a", addTests)
	b := newExercise(t, "intro/b", addTests)
	src := writeLearner(t, "")

	for _, ex := range []catalog.Exercise{a, b} {
		_, err := g.Grade(context.Background(), ex, src, 5*time.Second)
		require.NoError(t, err)
	}

	require.NoError(t, g.Reset(a.ID))
	assert.NoDirExists(t, g.Dir(a.ID))
	assert.DirExists(t, g.Dir(b.ID))
	require.NoError(t, g.Reset(a.ID), "resetting a missing sandbox is fine")

	require.NoError(t, g.ResetAll())
	assert.NoDirExists(t, g.Dir(b.ID))
}

func TestNewRejectsBadCommand(t *testing.T) {
	_, err := New(Options{Root: t.TempDir(), Command: `cargo "test`})
	require.Error(t, err)

	_, err = New(Options{})
	require.Error(t, err)

	g, err := New(Options{Root: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, []string{"cargo", "test", "--quiet"}, g.argv)
	assert.Equal(t, DefaultTimeout, g.defaultTimeout)
}

func TestResolveTimeout(t *testing.T) {
	withTimeout := catalog.Exercise{TimeoutSecs: 30}
	without := catalog.Exercise{}

	tests := []struct {
		name     string
		override time.Duration
		ex       catalog.Exercise
		fallback time.Duration
		want     time.Duration
	}{
		{"caller wins", 5 * time.Second, withTimeout, 20 * time.Second, 5 * time.Second},
		{"exercise value", 0, withTimeout, 20 * time.Second, 30 * time.Second},
		{"configured default", 0, without, 20 * time.Second, 20 * time.Second},
		{"global default", 0, without, 0, 15 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTimeout(tt.override, tt.ex, tt.fallback))
		})
	}
}

func TestSetupErrorUnwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := error(&SetupError{Stage: StageCopy, Err: inner})
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "sandbox copy sources: disk full", err.Error())
}

func TestOutcomeForUsesKillNotDeadline(t *testing.T) {
	// Exited cleanly but Wait returned after the deadline.
	out, err := outcomeFor(result{
		stdout:  []byte("test result: ok\n"),
		timeout: 100 * time.Millisecond,
		elapsed: 150 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.True(t, out.Passed)
	assert.False(t, out.TimedOut)
	assert.Equal(t, "test result: ok\n", out.Stdout)

	out, err = outcomeFor(result{
		killed:  true,
		stdout:  []byte("partial"),
		timeout: 100 * time.Millisecond,
		elapsed: 100 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.False(t, out.Passed)
	assert.True(t, out.TimedOut)
	assert.Empty(t, out.Stdout)
	assert.Equal(t, "Timed out after 100ms", out.Stderr)

	_, err = outcomeFor(result{waitErr: errors.New("broken pipe"), timeout: time.Second})
	require.Error(t, err)
}
