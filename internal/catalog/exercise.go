// Package catalog discovers exercises on disk and validates their metadata.
package catalog

import "strings"

// Difficulty identifies the tier an exercise belongs to.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// AllDifficulties returns all tiers in display order.
func AllDifficulties() []Difficulty {
	return []Difficulty{Beginner, Intermediate, Advanced}
}

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	default:
		return false
	}
}

// DisplayName returns a human-readable label for the tier.
func (d Difficulty) DisplayName() string {
	switch d {
	case Beginner:
		return "Beginner"
	case Intermediate:
		return "Intermediate"
	case Advanced:
		return "Advanced"
	default:
		return string(d)
	}
}

// Exercise describes one exercise directory. Values are built fresh on every
// LoadAll call and never mutated afterwards.
type Exercise struct {
	ID          string
	Title       string
	Difficulty  Difficulty
	Hint        string
	TimeoutSecs int // 0 = not set

	Root            string
	StarterPath     string
	TestsPath       string
	SolutionPath    string // empty when the exercise ships no solution
	ExplanationPath string // empty when the exercise ships no explanation
}

// Slug returns the final segment of the exercise id.
func (e Exercise) Slug() string {
	return Slug(e.ID)
}

// HasHint reports whether the exercise defines a hint.
func (e Exercise) HasHint() bool {
	return strings.TrimSpace(e.Hint) != ""
}

// HasSolution reports whether a reference solution exists.
func (e Exercise) HasSolution() bool {
	return e.SolutionPath != ""
}

// Slug returns the final slash-separated segment of id.
func Slug(id string) string {
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		return id[i+1:]
	}
	return id
}

// DirName flattens id into a single path segment for per-exercise
// directories ("intro/vars" becomes "intro_vars").
func DirName(id string) string {
	return strings.ReplaceAll(id, "/", "_")
}
