package store

import (
	"context"
	"time"
)

// ProgressStore persists the progress document and the leaderboard.
// Implementations are safe for a single writer only; callers serialize
// read-modify-write cycles themselves.
type ProgressStore interface {
	// Load returns the stored progress, or a fresh document if none exists.
	Load(ctx context.Context) (*Progress, error)

	// Save replaces the stored progress.
	Save(ctx context.Context, p *Progress) error

	// LoadLeaderboard returns all entries in insertion order.
	LoadLeaderboard(ctx context.Context) ([]LeaderboardEntry, error)

	// AppendLeaderboard inserts one entry, evicting the oldest beyond the cap.
	AppendLeaderboard(ctx context.Context, e LeaderboardEntry) error

	// Clear removes the progress document and the leaderboard.
	Clear(ctx context.Context) error
}

// AttemptData captures one graded attempt for the history store.
type AttemptData struct {
	LessonID     string
	Passed       bool
	DurationSecs *uint64
	Timestamp    time.Time
}

// AttemptRecorder stores per-user attempt history. It is optional: the
// engine works without one when no user is logged in.
type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, userID int64, data AttemptData) error
	ClearAttempts(ctx context.Context, userID int64) error
}
