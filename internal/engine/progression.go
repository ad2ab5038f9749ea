package engine

import (
	"time"

	"github.com/abhisek/rustdojo/internal/catalog"
	"github.com/abhisek/rustdojo/internal/rewards"
	"github.com/abhisek/rustdojo/internal/store"
)

// Award describes what a graded attempt earned. Points, Badges and
// Leaderboard are only set on the first completion of an exercise.
type Award struct {
	Passed       bool
	Points       uint32
	Badges       []rewards.Badge
	DurationSecs *uint64
	Leaderboard  *store.LeaderboardEntry
}

// Fresh reports whether this attempt was the exercise's first completion.
func (a Award) Fresh() bool {
	return a.Points > 0
}

// ApplyAttempt folds one verdict into p. Every call counts as an attempt.
// A pass marks the exercise completed and records its duration since the
// last start; points, badges and a leaderboard entry are granted only the
// first time the exercise is passed.
func ApplyAttempt(p *store.Progress, ex catalog.Exercise, passed bool, now time.Time) Award {
	entry := p.Entry(ex.ID)
	if entry.Attempts < ^uint32(0) {
		entry.Attempts++
	}
	if !passed {
		return Award{}
	}

	ts := now.Unix()
	entry.Completed = true
	entry.CompletedAt = &ts

	award := Award{Passed: true}
	if entry.LastStartedAt != nil {
		secs := uint64(max(ts-*entry.LastStartedAt, 0))
		entry.LastDurationSecs = ptr(secs)
		if entry.BestDurationSecs == nil || secs < *entry.BestDurationSecs {
			entry.BestDurationSecs = ptr(secs)
		}
		award.DurationSecs = ptr(secs)
	}

	if entry.PointsEarned != 0 {
		return award
	}

	points := rewards.PointsFor(ex.Difficulty)
	entry.PointsEarned = points
	p.AddPoints(points)
	award.Points = points

	state := rewards.State{
		AwardedPoints:  points,
		CompletedCount: p.CompletedCount(),
		TotalPoints:    p.TotalPoints,
	}
	for _, b := range rewards.Evaluate(rewards.DefaultRules, state, p.Badges) {
		p.AddBadge(string(b))
		award.Badges = append(award.Badges, b)
	}

	lb := store.LeaderboardEntry{
		Name:      p.Name(),
		LessonID:  ex.ID,
		Points:    points,
		Timestamp: ts,
	}
	if p.Avatar != nil {
		lb.Avatar = ptr(*p.Avatar)
	}
	if award.DurationSecs != nil {
		lb.DurationSecs = ptr(*award.DurationSecs)
	}
	award.Leaderboard = &lb
	return award
}

// ApplyStart stamps a start time on id's record.
func ApplyStart(p *store.Progress, id string, now time.Time) {
	entry := p.Entry(id)
	ts := now.Unix()
	if entry.FirstStartedAt == nil {
		entry.FirstStartedAt = ptr(ts)
	}
	entry.LastStartedAt = ptr(ts)
}

func ptr[T any](v T) *T {
	return &v
}
