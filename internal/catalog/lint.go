package catalog

import (
	"fmt"
	"strings"
)

// Severity classifies a lint issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single problem found while linting the catalog.
type Issue struct {
	ID       string
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.ID, i.Message)
}

// Lint inspects loaded exercises for content problems that the loader
// tolerates, such as whitespace-only titles or a missing reference solution.
func Lint(all []Exercise) []Issue {
	var issues []Issue
	for _, ex := range all {
		if !fileExists(ex.StarterPath) {
			issues = append(issues, Issue{ID: ex.ID, Severity: SeverityError, Message: "missing " + StarterFile})
		}
		if !fileExists(ex.TestsPath) {
			issues = append(issues, Issue{ID: ex.ID, Severity: SeverityError, Message: "missing " + TestsFile})
		}
		if strings.TrimSpace(ex.Title) == "" {
			issues = append(issues, Issue{ID: ex.ID, Severity: SeverityError, Message: "empty title"})
		}
		if !ex.Difficulty.Valid() {
			issues = append(issues, Issue{ID: ex.ID, Severity: SeverityError, Message: fmt.Sprintf("invalid difficulty %q", ex.Difficulty)})
		}
		if !ex.HasSolution() {
			issues = append(issues, Issue{ID: ex.ID, Severity: SeverityWarning, Message: "no reference " + SolutionFile})
		}
	}
	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
