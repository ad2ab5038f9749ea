//go:build unix

package sandbox

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestGradeTimeoutKillsProcess(t *testing.T) {
	requireShell(t)
	g := newTestGrader(t, `sh -c 'echo started; echo $$ > pid; exec sleep 30'`)
	ex := newExercise(t, "intro/slow", addTests)

	start := time.Now()
	out, err := g.Grade(context.Background(), ex, writeLearner(t, ""), 500*time.Millisecond)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 10*time.Second)
	assert.False(t, out.Passed)
	assert.True(t, out.TimedOut)
	assert.Empty(t, out.Stdout, "partial output is discarded")
	assert.Equal(t, "Timed out after 500ms", out.Stderr)

	data, err := os.ReadFile(filepath.Join(g.Dir(ex.ID), "pid"))
	require.NoError(t, err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	require.NoError(t, err)

	err = unix.Kill(pid, 0)
	assert.ErrorIs(t, err, unix.ESRCH, "process %d still running", pid)
}

func TestGradeTimeoutKillsChildren(t *testing.T) {
	requireShell(t)
	if _, err := os.Stat("/proc/self/status"); err != nil {
		t.Skip("process state needs /proc")
	}
	g := newTestGrader(t, `sh -c 'sleep 30 & echo $! > child; wait'`)
	ex := newExercise(t, "intro/forking", addTests)

	out, err := g.Grade(context.Background(), ex, writeLearner(t, ""), 500*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, out.TimedOut)

	data, err := os.ReadFile(filepath.Join(g.Dir(ex.ID), "child"))
	require.NoError(t, err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	require.NoError(t, err)

	// The orphaned child may linger as a zombie until init reaps it.
	assert.Eventually(t, func() bool { return !processRunning(pid) }, 5*time.Second, 50*time.Millisecond,
		"background child %d survived the timeout", pid)
}

// processRunning reports whether pid exists and is not a zombie.
func processRunning(pid int) bool {
	if err := unix.Kill(pid, 0); err != nil {
		return false
	}
	status, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "status"))
	if err != nil {
		return !os.IsNotExist(err)
	}
	for _, line := range strings.Split(string(status), "\n") {
		if state, ok := strings.CutPrefix(line, "State:"); ok {
			return !strings.HasPrefix(strings.TrimSpace(state), "Z")
		}
	}
	return true
}

func TestGradeUsesExerciseTimeout(t *testing.T) {
	requireShell(t)
	g, err := New(Options{
		Root:           filepath.Join(t.TempDir(), "sandboxes"),
		Command:        "sleep 30",
		DefaultTimeout: time.Hour,
	})
	require.NoError(t, err)
	ex := newExercise(t, "intro/slow", addTests)
	ex.TimeoutSecs = 1

	out, err := g.Grade(context.Background(), ex, writeLearner(t, ""), 0)
	require.NoError(t, err)
	assert.True(t, out.TimedOut)
	assert.Equal(t, "Timed out after 1s", out.Stderr)
}
