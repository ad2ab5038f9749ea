package engine

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/rustdojo/internal/catalog"
)

// SolutionPreviewLines is how much of a reference solution Solution returns.
const SolutionPreviewLines = 40

// Solution is a preview of an exercise's reference solution.
type Solution struct {
	Path      string
	Preview   string
	Truncated bool
}

// Solution returns the first SolutionPreviewLines lines of id's reference
// solution, or ErrNoSolution.
func (e *Engine) Solution(id string) (Solution, error) {
	ex, err := e.Exercise(id)
	if err != nil {
		return Solution{}, err
	}
	if !ex.HasSolution() {
		return Solution{}, fmt.Errorf("%w: %s", ErrNoSolution, id)
	}

	f, err := os.Open(ex.SolutionPath)
	if err != nil {
		return Solution{}, fmt.Errorf("open solution: %w", err)
	}
	defer f.Close()

	var lines []string
	sol := Solution{Path: ex.SolutionPath}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if len(lines) == SolutionPreviewLines {
			sol.Truncated = true
			break
		}
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Solution{}, fmt.Errorf("read solution: %w", err)
	}
	sol.Preview = strings.Join(lines, "\n")
	return sol, nil
}

// Validate lints the catalog and warns about exercises that are missing from
// the canonical order and therefore sort last in their tier.
func (e *Engine) Validate() ([]catalog.Issue, int, error) {
	all, err := e.Catalog()
	if err != nil {
		return nil, 0, err
	}
	issues := catalog.Lint(all)
	for _, ex := range all {
		if ex.Difficulty.Valid() && !e.resolver.Order.Contains(ex.Difficulty, ex.Slug()) {
			issues = append(issues, catalog.Issue{
				ID:       ex.ID,
				Severity: catalog.SeverityWarning,
				Message:  fmt.Sprintf("%q is not in the %s order; it unlocks last", ex.Slug(), ex.Difficulty),
			})
		}
	}
	return issues, len(all), nil
}

// QuizResult is the score of one quiz submission.
type QuizResult struct {
	Quiz    *catalog.Quiz
	Correct int
	Total   int
}

// Passed reports whether every question was answered correctly.
func (r QuizResult) Passed() bool {
	return r.Total > 0 && r.Correct == r.Total
}

// Quiz loads the quiz for id, or ErrNoQuiz.
func (e *Engine) Quiz(id string) (*catalog.Quiz, error) {
	ex, err := e.Exercise(id)
	if err != nil {
		return nil, err
	}
	q, err := catalog.LoadQuiz(ex.Root)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoQuiz, id)
	}
	return q, nil
}

// SubmitQuiz scores answers for id's quiz. A perfect score marks the quiz
// completed in progress.
func (e *Engine) SubmitQuiz(ctx context.Context, id string, answers []int) (QuizResult, error) {
	q, err := e.Quiz(id)
	if err != nil {
		return QuizResult{}, err
	}
	res := QuizResult{Quiz: q, Correct: q.Score(answers), Total: len(q.Questions)}
	if !res.Passed() {
		return res, nil
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	p, err := e.store.Load(ctx)
	if err != nil {
		return QuizResult{}, err
	}
	p.Entry(id).QuizCompleted = true
	if err := e.store.Save(ctx, p); err != nil {
		return QuizResult{}, err
	}
	return res, nil
}
