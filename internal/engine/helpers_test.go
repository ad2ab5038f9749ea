package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/rustdojo/internal/catalog"
	"github.com/abhisek/rustdojo/internal/sandbox"
	"github.com/abhisek/rustdojo/internal/store"
	"github.com/abhisek/rustdojo/internal/unlock"
)

// fakeGrader passes any source containing "solved" unless verdict is set.
type fakeGrader struct {
	root string

	mu      sync.Mutex
	calls   []string
	verdict func(ex catalog.Exercise, src string) (sandbox.Outcome, error)
}

func (g *fakeGrader) Grade(_ context.Context, ex catalog.Exercise, src string, timeout time.Duration) (sandbox.Outcome, error) {
	g.mu.Lock()
	g.calls = append(g.calls, ex.ID)
	verdict := g.verdict
	g.mu.Unlock()

	if err := os.MkdirAll(g.Dir(ex.ID), 0o755); err != nil {
		return sandbox.Outcome{}, err
	}
	if verdict != nil {
		return verdict(ex, src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return sandbox.Outcome{}, &sandbox.SetupError{Stage: sandbox.StageCopy, Err: err}
	}
	if strings.Contains(string(data), "solved") {
		return sandbox.Outcome{Passed: true, Stdout: "test result: ok"}, nil
	}
	return sandbox.Outcome{Passed: false, Stderr: "error[E0308]: mismatched types"}, nil
}

func (g *fakeGrader) Dir(id string) string { return filepath.Join(g.root, catalog.DirName(id)) }

func (g *fakeGrader) Reset(id string) error { return os.RemoveAll(g.Dir(id)) }

func (g *fakeGrader) ResetAll() error { return os.RemoveAll(g.root) }

// testClock is a settable time source.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type testEnv struct {
	eng     *Engine
	store   *store.FileStore
	grader  *fakeGrader
	clock   *testClock
	lessons string
	data    string
}

func newTestEnv(t *testing.T, configure ...func(*Options)) *testEnv {
	t.Helper()
	base := t.TempDir()
	env := &testEnv{
		lessons: filepath.Join(base, "lessons"),
		data:    filepath.Join(base, "data"),
		clock:   &testClock{now: time.Unix(1_700_000_000, 0)},
	}
	require.NoError(t, os.MkdirAll(env.lessons, 0o755))
	env.store = store.NewFileStore(env.data)
	env.grader = &fakeGrader{root: filepath.Join(env.data, "sandboxes")}

	opts := Options{
		LessonsDir: env.lessons,
		WorkDir:    filepath.Join(env.data, "work"),
		Store:      env.store,
		Grader:     env.grader,
		Resolver:   unlock.NewResolver(unlock.DefaultOrder(), false),
		Now:        env.clock.Now,
	}
	for _, fn := range configure {
		fn(&opts)
	}
	eng, err := New(opts)
	require.NoError(t, err)
	env.eng = eng
	return env
}

// addLesson writes an exercise definition with starter and tests.
func (env *testEnv) addLesson(t *testing.T, id string, d catalog.Difficulty) string {
	t.Helper()
	dir := filepath.Join(env.lessons, filepath.FromSlash(id))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	def := fmt.Sprintf("title = %q\ndifficulty = %q\n", catalog.Slug(id), d)
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalog.DefinitionTOML), []byte(def), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalog.StarterFile), []byte("pub fn todo() {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalog.TestsFile), []byte("#[test] fn t() { crate::todo(); }\n"), 0o644))
	return dir
}

// solve overwrites the working copy with source the fake grader passes.
func (env *testEnv) solve(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, os.WriteFile(env.eng.WorkingFile(id), []byte("// solved\n"), 0o644))
}

func (env *testEnv) progress(t *testing.T) *store.Progress {
	t.Helper()
	p, err := env.store.Load(context.Background())
	require.NoError(t, err)
	return p
}

func (env *testEnv) leaderboard(t *testing.T) []store.LeaderboardEntry {
	t.Helper()
	entries, err := env.store.LoadLeaderboard(context.Background())
	require.NoError(t, err)
	return entries
}
