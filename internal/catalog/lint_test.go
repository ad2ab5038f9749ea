package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintFlagsBlankTitleAndMissingSolution(t *testing.T) {
	root := t.TempDir()
	writeExercise(t, root, "intro/blank", DefinitionTOML, "title = \"   \"\ndifficulty = \"beginner\"\n")
	good := writeExercise(t, root, "intro/good", DefinitionTOML, varsDef)
	require.NoError(t, os.WriteFile(filepath.Join(good, SolutionFile), []byte("x"), 0o644))

	xs, err := LoadAll(root)
	require.NoError(t, err)

	issues := Lint(xs)
	require.Len(t, issues, 2)
	assert.Equal(t, Issue{ID: "intro/blank", Severity: SeverityError, Message: "empty title"}, issues[0])
	assert.Equal(t, SeverityWarning, issues[1].Severity)
	assert.Equal(t, "intro/blank", issues[1].ID)
	assert.True(t, HasErrors(issues))
}

func TestLintCleanCatalog(t *testing.T) {
	root := t.TempDir()
	dir := writeExercise(t, root, "intro/good", DefinitionTOML, varsDef)
	require.NoError(t, os.WriteFile(filepath.Join(dir, SolutionFile), []byte("x"), 0o644))

	xs, err := LoadAll(root)
	require.NoError(t, err)
	assert.Empty(t, Lint(xs))
}

func TestLoadQuiz(t *testing.T) {
	dir := t.TempDir()

	q, err := LoadQuiz(dir)
	require.NoError(t, err)
	assert.Nil(t, q, "no quiz file means no quiz")

	content := `
title = "Ownership"

[[questions]]
prompt = "Who owns a moved value?"
options = ["the caller", "the callee"]
answer_index = 1

[[questions]]
prompt = "Can you use a value after move?"
options = ["yes", "no"]
answer_index = 1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, QuizFile), []byte(content), 0o644))

	q, err = LoadQuiz(dir)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "Ownership", q.Title)
	require.Len(t, q.Questions, 2)

	assert.Equal(t, 2, q.Score([]int{1, 1}))
	assert.Equal(t, 1, q.Score([]int{0, 1}))
	assert.Equal(t, 0, q.Score(nil))
}

func TestLoadQuizAnswerOutOfRange(t *testing.T) {
	dir := t.TempDir()
	content := "title = \"x\"\n[[questions]]\nprompt = \"p\"\noptions = [\"a\"]\nanswer_index = 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, QuizFile), []byte(content), 0o644))

	_, err := LoadQuiz(dir)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}
