package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/rustdojo/internal/catalog"
)

const sampleQuiz = `title = "Ownership"

[[questions]]
prompt = "Who owns a moved value?"
options = ["the caller", "the callee"]
answer_index = 1

[[questions]]
prompt = "Can you use a value after move?"
options = ["yes", "no"]
answer_index = 1
`

func TestSolutionPreview(t *testing.T) {
	env := newTestEnv(t)
	dir := env.addLesson(t, "intro/variables", catalog.Beginner)
	env.addLesson(t, "intro/functions", catalog.Beginner)

	var lines []string
	for i := 1; i <= 45; i++ {
		lines = append(lines, fmt.Sprintf("// line %d", i))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalog.SolutionFile), []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	sol, err := env.eng.Solution("intro/variables")
	require.NoError(t, err)
	assert.True(t, sol.Truncated)
	assert.Equal(t, strings.Join(lines[:SolutionPreviewLines], "\n"), sol.Preview)

	_, err = env.eng.Solution("intro/functions")
	require.ErrorIs(t, err, ErrNoSolution)
}

func TestSolutionShortFileIsWhole(t *testing.T) {
	env := newTestEnv(t)
	dir := env.addLesson(t, "intro/variables", catalog.Beginner)
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalog.SolutionFile), []byte("fn main() {}\n"), 0o644))

	sol, err := env.eng.Solution("intro/variables")
	require.NoError(t, err)
	assert.False(t, sol.Truncated)
	assert.Equal(t, "fn main() {}", sol.Preview)
}

func TestValidateWarnsAboutUnorderedSlugs(t *testing.T) {
	env := newTestEnv(t)
	dir := env.addLesson(t, "intro/variables", catalog.Beginner)
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalog.SolutionFile), []byte("fn main() {}\n"), 0o644))
	env.addLesson(t, "extra/zigzag", catalog.Beginner)

	issues, n, err := env.eng.Validate()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, catalog.HasErrors(issues))

	var msgs []string
	for _, is := range issues {
		if is.ID == "extra/zigzag" {
			msgs = append(msgs, is.Message)
		} else {
			t.Errorf("unexpected issue %s", is)
		}
	}
	assert.Contains(t, msgs, "no reference "+catalog.SolutionFile)
	assert.Contains(t, msgs, `"zigzag" is not in the beginner order; it unlocks last`)
}

func TestQuiz(t *testing.T) {
	env := newTestEnv(t)
	dir := env.addLesson(t, "intro/ownership", catalog.Beginner)
	env.addLesson(t, "intro/variables", catalog.Beginner)
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalog.QuizFile), []byte(sampleQuiz), 0o644))
	ctx := context.Background()

	q, err := env.eng.Quiz("intro/ownership")
	require.NoError(t, err)
	assert.Equal(t, "Ownership", q.Title)
	assert.Len(t, q.Questions, 2)

	res, err := env.eng.SubmitQuiz(ctx, "intro/ownership", []int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Correct)
	assert.False(t, res.Passed())
	_, touched := env.progress(t).Exercises["intro/ownership"]
	assert.False(t, touched)

	res, err = env.eng.SubmitQuiz(ctx, "intro/ownership", []int{1, 1})
	require.NoError(t, err)
	assert.True(t, res.Passed())
	assert.True(t, env.progress(t).Exercises["intro/ownership"].QuizCompleted)
	assert.False(t, env.progress(t).Exercises["intro/ownership"].Completed, "quiz does not complete the exercise")

	_, err = env.eng.Quiz("intro/variables")
	require.ErrorIs(t, err, ErrNoQuiz)
}
