package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoWorkingCopy is returned when an operation needs the learner's
	// working copy before `start` has created it.
	ErrNoWorkingCopy = errors.New("working copy not found")

	ErrNoSolution  = errors.New("exercise has no reference solution")
	ErrNoQuiz      = errors.New("exercise has no quiz")
	ErrNotLoggedIn = errors.New("no user is logged in")
	ErrNoAccounts  = errors.New("account store is not configured")
)

// LockedError is returned when starting an exercise whose predecessor in the
// same tier has not been completed.
type LockedError struct {
	ID          string
	Predecessor string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("exercise %q is locked: complete %q first (or pass --force / set RUSTDOJO_FORCE=1)",
		e.ID, e.Predecessor)
}
