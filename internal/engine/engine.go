// Package engine ties the catalog, unlock resolver, sandbox grader and
// progress store together into the learner-facing operations.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/rustdojo/internal/catalog"
	"github.com/abhisek/rustdojo/internal/sandbox"
	"github.com/abhisek/rustdojo/internal/store"
	"github.com/abhisek/rustdojo/internal/unlock"
)

// WorkingFile is the name of the learner's working copy.
const WorkingFile = "lib.rs"

// Grader runs an exercise's tests against learner code.
type Grader interface {
	Grade(ctx context.Context, ex catalog.Exercise, learnerSrc string, timeout time.Duration) (sandbox.Outcome, error)
	Dir(id string) string
	Reset(id string) error
	ResetAll() error
}

// AccountStore manages registered users and their attempt history.
type AccountStore interface {
	store.AttemptRecorder
	Register(ctx context.Context, username, password string) (*store.User, error)
	Authenticate(ctx context.Context, username, password string) (*store.User, error)
	UpdateProfile(ctx context.Context, userID int64, displayName, avatar *string) error
	AttemptsForUser(ctx context.Context, userID int64) ([]store.Attempt, error)
}

// Options configures an Engine.
type Options struct {
	LessonsDir string
	WorkDir    string

	Store    store.ProgressStore
	Grader   Grader
	Resolver unlock.Resolver

	// Accounts is optional. Without it attempt history and the user
	// commands are unavailable.
	Accounts AccountStore

	// DefaultTimeout is passed to the grader when the caller gives none.
	DefaultTimeout time.Duration

	// Parallelism bounds concurrent grading in CheckAll. Default: 1.
	Parallelism int

	Logger *zap.Logger
	Now    func() time.Time
}

// Engine serializes progress updates so concurrent callers in one process
// never interleave read-modify-write cycles on the store.
type Engine struct {
	lessonsDir     string
	workDir        string
	store          store.ProgressStore
	grader         Grader
	resolver       unlock.Resolver
	accounts       AccountStore
	defaultTimeout time.Duration
	parallelism    int
	log            *zap.Logger
	now            func() time.Time

	writeMu sync.Mutex
}

// New creates an Engine.
func New(opts Options) (*Engine, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("progress store is required")
	}
	if opts.Grader == nil {
		return nil, fmt.Errorf("grader is required")
	}
	if opts.WorkDir == "" {
		return nil, fmt.Errorf("work dir is required")
	}
	if opts.Resolver.Order == nil {
		opts.Resolver.Order = unlock.DefaultOrder()
	}
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		lessonsDir:     opts.LessonsDir,
		workDir:        opts.WorkDir,
		store:          opts.Store,
		grader:         opts.Grader,
		resolver:       opts.Resolver,
		accounts:       opts.Accounts,
		defaultTimeout: opts.DefaultTimeout,
		parallelism:    opts.Parallelism,
		log:            opts.Logger,
		now:            opts.Now,
	}, nil
}

// Catalog rescans the lessons directory.
func (e *Engine) Catalog() ([]catalog.Exercise, error) {
	return catalog.LoadAll(e.lessonsDir)
}

// Exercise loads the catalog and returns the exercise with id.
func (e *Engine) Exercise(id string) (catalog.Exercise, error) {
	all, err := e.Catalog()
	if err != nil {
		return catalog.Exercise{}, err
	}
	return catalog.Find(all, id)
}

// Progress returns the stored progress document.
func (e *Engine) Progress(ctx context.Context) (*store.Progress, error) {
	return e.store.Load(ctx)
}

// Status is one catalog row with its unlock state and progress.
type Status struct {
	Exercise catalog.Exercise
	Unlocked bool
	Progress store.ExerciseProgress
}

// Overview returns every exercise in catalog order with its status.
func (e *Engine) Overview(ctx context.Context) ([]Status, error) {
	all, err := e.Catalog()
	if err != nil {
		return nil, err
	}
	p, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(all))
	for _, ex := range all {
		st := Status{Exercise: ex, Unlocked: e.resolver.IsUnlocked(all, p, ex.ID)}
		if ep := p.Exercises[ex.ID]; ep != nil {
			st.Progress = *ep
		}
		out = append(out, st)
	}
	return out, nil
}

// Tier is one difficulty level's exercises in unlock order.
type Tier struct {
	Difficulty catalog.Difficulty
	Exercises  []Status
}

// Tiers groups the overview by difficulty, each tier in unlock order.
// Empty tiers are omitted.
func (e *Engine) Tiers(ctx context.Context) ([]Tier, error) {
	statuses, err := e.Overview(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]Status, len(statuses))
	all := make([]catalog.Exercise, 0, len(statuses))
	for _, st := range statuses {
		byID[st.Exercise.ID] = st
		all = append(all, st.Exercise)
	}

	var tiers []Tier
	for _, d := range catalog.AllDifficulties() {
		seq := e.resolver.Sequence(all, d)
		if len(seq) == 0 {
			continue
		}
		t := Tier{Difficulty: d, Exercises: make([]Status, 0, len(seq))}
		for _, ex := range seq {
			t.Exercises = append(t.Exercises, byID[ex.ID])
		}
		tiers = append(tiers, t)
	}
	return tiers, nil
}

// WorkingFile returns where the learner's copy of id lives.
func (e *Engine) WorkingFile(id string) string {
	return filepath.Join(e.workDir, catalog.DirName(id), WorkingFile)
}

// WorkingCopy returns the working copy path, or ErrNoWorkingCopy when
// start has not created it yet.
func (e *Engine) WorkingCopy(id string) (string, error) {
	path := e.WorkingFile(id)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s (run `rustdojo start %s` first)", ErrNoWorkingCopy, path, id)
		}
		return "", fmt.Errorf("stat working copy: %w", err)
	}
	return path, nil
}

// StartResult reports what Start did.
type StartResult struct {
	Exercise    catalog.Exercise
	WorkingFile string
	Created     bool // false when an existing working copy was kept
}

// Start checks that id is unlocked, creates the working copy from the
// starter file if needed and records the start time.
func (e *Engine) Start(ctx context.Context, id string) (StartResult, error) {
	all, err := e.Catalog()
	if err != nil {
		return StartResult{}, err
	}
	ex, err := catalog.Find(all, id)
	if err != nil {
		return StartResult{}, err
	}

	p, err := e.store.Load(ctx)
	if err != nil {
		return StartResult{}, err
	}
	if !e.resolver.IsUnlocked(all, p, id) {
		prev, _ := e.resolver.Predecessor(all, id)
		return StartResult{}, &LockedError{ID: id, Predecessor: prev.ID}
	}

	res := StartResult{Exercise: ex, WorkingFile: e.WorkingFile(id)}
	if _, err := os.Stat(res.WorkingFile); errors.Is(err, os.ErrNotExist) {
		if err := copyFile(ex.StarterPath, res.WorkingFile); err != nil {
			return StartResult{}, fmt.Errorf("create working copy: %w", err)
		}
		res.Created = true
	} else if err != nil {
		return StartResult{}, fmt.Errorf("stat working copy: %w", err)
	}

	if err := e.RecordStart(ctx, id); err != nil {
		return StartResult{}, err
	}
	return res, nil
}

// RecordStart stamps the start time for id and saves progress.
func (e *Engine) RecordStart(ctx context.Context, id string) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	p, err := e.store.Load(ctx)
	if err != nil {
		return err
	}
	ApplyStart(p, id, e.now())
	return e.store.Save(ctx, p)
}

// CheckResult is the outcome of grading the working copy.
type CheckResult struct {
	Exercise catalog.Exercise
	Outcome  sandbox.Outcome
	Award    Award
	Progress *store.Progress
}

// Check grades the working copy of id and records the attempt. A zero
// timeout falls back to the exercise's own, then the configured default.
func (e *Engine) Check(ctx context.Context, id string, timeout time.Duration) (CheckResult, error) {
	ex, err := e.Exercise(id)
	if err != nil {
		return CheckResult{}, err
	}
	src, err := e.WorkingCopy(id)
	if err != nil {
		return CheckResult{}, err
	}

	outcome, err := e.grader.Grade(ctx, ex, src, sandbox.ResolveTimeout(timeout, ex, e.defaultTimeout))
	if err != nil {
		return CheckResult{}, err
	}

	p, award, err := e.RecordAttempt(ctx, ex, outcome, e.now())
	if err != nil {
		return CheckResult{}, err
	}
	return CheckResult{Exercise: ex, Outcome: outcome, Award: award, Progress: p}, nil
}

// RecordAttempt applies a verdict to stored progress. Saving progress is
// fatal; the leaderboard append and attempt history are best-effort.
func (e *Engine) RecordAttempt(ctx context.Context, ex catalog.Exercise, outcome sandbox.Outcome, now time.Time) (*store.Progress, Award, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	p, err := e.store.Load(ctx)
	if err != nil {
		return nil, Award{}, err
	}
	award := ApplyAttempt(p, ex, outcome.Passed, now)
	if err := e.store.Save(ctx, p); err != nil {
		return nil, Award{}, err
	}

	log := e.log.With(zap.String("exercise", ex.ID))
	if award.Leaderboard != nil {
		if err := e.store.AppendLeaderboard(ctx, *award.Leaderboard); err != nil {
			log.Warn("leaderboard append failed", zap.Error(err))
		}
	}
	if p.CurrentUserID != nil && e.accounts != nil {
		data := store.AttemptData{
			LessonID:     ex.ID,
			Passed:       outcome.Passed,
			DurationSecs: award.DurationSecs,
			Timestamp:    now,
		}
		if err := e.accounts.RecordAttempt(ctx, *p.CurrentUserID, data); err != nil {
			log.Warn("attempt history write failed", zap.Int64("user_id", *p.CurrentUserID), zap.Error(err))
		}
	}
	return p, award, nil
}

// ResetReport says which directories ResetExercise removed.
type ResetReport struct {
	WorkDir        string
	WorkRemoved    bool
	SandboxDir     string
	SandboxRemoved bool
}

// ResetExercise removes the working copy and sandbox for id. Progress is
// left untouched. Ids missing from the catalog return catalog.ErrNotFound.
func (e *Engine) ResetExercise(id string) (ResetReport, error) {
	switch catalog.DirName(id) {
	case "", ".", "..":
		return ResetReport{}, fmt.Errorf("%w: %q", catalog.ErrNotFound, id)
	}
	if _, err := e.Exercise(id); err != nil {
		return ResetReport{}, err
	}

	rep := ResetReport{
		WorkDir:    filepath.Dir(e.WorkingFile(id)),
		SandboxDir: e.grader.Dir(id),
	}

	rep.WorkRemoved = exists(rep.WorkDir)
	if err := os.RemoveAll(rep.WorkDir); err != nil {
		return rep, fmt.Errorf("remove working dir: %w", err)
	}
	rep.SandboxRemoved = exists(rep.SandboxDir)
	if err := e.grader.Reset(id); err != nil {
		return rep, err
	}
	return rep, nil
}

// ClearAll removes progress, the leaderboard, every working copy and
// sandbox, and the logged-in user's attempt history. Every step is tried;
// the returned error joins the failures.
func (e *Engine) ClearAll(ctx context.Context) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	var uid *int64
	if p, err := e.store.Load(ctx); err != nil {
		e.log.Warn("could not read progress before clearing", zap.Error(err))
	} else {
		uid = p.CurrentUserID
	}

	var errs []error
	if err := e.store.Clear(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := os.RemoveAll(e.workDir); err != nil {
		errs = append(errs, fmt.Errorf("remove working copies: %w", err))
	}
	if err := e.grader.ResetAll(); err != nil {
		errs = append(errs, err)
	}
	if uid != nil && e.accounts != nil {
		if err := e.accounts.ClearAttempts(ctx, *uid); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Leaderboard returns up to n of the most recent entries, newest first.
func (e *Engine) Leaderboard(ctx context.Context, n int) ([]store.LeaderboardEntry, error) {
	entries, err := e.store.LoadLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	return store.Recent(entries, n), nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
