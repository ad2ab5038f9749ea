package store

// Profile defaults for a fresh progress document.
const (
	DefaultDisplayName = "Player"
	DefaultAvatar      = "🦀"
	DefaultTheme       = "Dark"
	DefaultTextScale   = 1.0
)

// Progress is the learner's aggregate state, persisted as one JSON document.
type Progress struct {
	Exercises   map[string]*ExerciseProgress `json:"exercises"`
	TotalPoints uint32                       `json:"total_points"`
	Badges      []string                     `json:"badges"`

	DisplayName *string  `json:"display_name"`
	Avatar      *string  `json:"avatar"`
	Theme       *string  `json:"theme"`
	TextScale   *float32 `json:"text_scale"`

	CurrentUserID   *int64  `json:"current_user_id"`
	CurrentUsername *string `json:"current_username"`
}

// ExerciseProgress tracks one exercise. Timestamps are unix seconds.
type ExerciseProgress struct {
	Attempts         uint32  `json:"attempts"`
	Completed        bool    `json:"completed"`
	QuizCompleted    bool    `json:"quiz_completed"`
	FirstStartedAt   *int64  `json:"first_started_at"`
	LastStartedAt    *int64  `json:"last_started_at"`
	CompletedAt      *int64  `json:"completed_at"`
	BestDurationSecs *uint64 `json:"best_duration_secs"`
	LastDurationSecs *uint64 `json:"last_duration_secs"`
	PointsEarned     uint32  `json:"points_earned"`
	FeedbackHelpful  *bool   `json:"feedback_helpful"`
}

// NewProgress returns an empty progress document with profile defaults.
func NewProgress() *Progress {
	name := DefaultDisplayName
	avatar := DefaultAvatar
	theme := DefaultTheme
	scale := float32(DefaultTextScale)
	return &Progress{
		Exercises:   make(map[string]*ExerciseProgress),
		DisplayName: &name,
		Avatar:      &avatar,
		Theme:       &theme,
		TextScale:   &scale,
	}
}

// Entry returns the progress record for id, creating it when absent.
func (p *Progress) Entry(id string) *ExerciseProgress {
	if p.Exercises == nil {
		p.Exercises = make(map[string]*ExerciseProgress)
	}
	e, ok := p.Exercises[id]
	if !ok || e == nil {
		e = &ExerciseProgress{}
		p.Exercises[id] = e
	}
	return e
}

// IsCompleted reports whether id has been passed. Safe on a nil receiver.
func (p *Progress) IsCompleted(id string) bool {
	if p == nil {
		return false
	}
	e, ok := p.Exercises[id]
	return ok && e != nil && e.Completed
}

// CompletedCount returns the number of completed exercises.
func (p *Progress) CompletedCount() int {
	n := 0
	for _, e := range p.Exercises {
		if e != nil && e.Completed {
			n++
		}
	}
	return n
}

// HasBadge reports whether the badge was already earned.
func (p *Progress) HasBadge(name string) bool {
	for _, b := range p.Badges {
		if b == name {
			return true
		}
	}
	return false
}

// AddBadge appends name unless already present. It reports whether the
// badge was newly added.
func (p *Progress) AddBadge(name string) bool {
	if p.HasBadge(name) {
		return false
	}
	p.Badges = append(p.Badges, name)
	return true
}

// AddPoints adds n to TotalPoints, saturating at the uint32 maximum.
func (p *Progress) AddPoints(n uint32) {
	if sum := p.TotalPoints + n; sum >= p.TotalPoints {
		p.TotalPoints = sum
		return
	}
	p.TotalPoints = ^uint32(0)
}

// Name returns the display name, falling back to the default.
func (p *Progress) Name() string {
	if p.DisplayName != nil && *p.DisplayName != "" {
		return *p.DisplayName
	}
	return DefaultDisplayName
}

// normalize repairs fields a hand-edited or older document may leave nil.
func (p *Progress) normalize() {
	if p.Exercises == nil {
		p.Exercises = make(map[string]*ExerciseProgress)
	}
	for id, e := range p.Exercises {
		if e == nil {
			p.Exercises[id] = &ExerciseProgress{}
		}
	}
}
