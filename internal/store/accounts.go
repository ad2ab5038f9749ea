package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// User is a registered learner account.
type User struct {
	ID           int64          `db:"id"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"`
	DisplayName  sql.NullString `db:"display_name"`
	Avatar       sql.NullString `db:"avatar"`
}

// Attempt is one row of attempt history.
type Attempt struct {
	ID           int64         `db:"id"`
	UserID       int64         `db:"user_id"`
	LessonID     string        `db:"lesson_id"`
	Passed       bool          `db:"passed"`
	DurationSecs sql.NullInt64 `db:"duration_secs"`
	Timestamp    int64         `db:"timestamp"`
}

// Accounts manages users and their attempt history.
type Accounts struct {
	db *sqlx.DB
}

// Register creates a user with a bcrypt-hashed password.
func (a *Accounts) Register(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("register: username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("register: password is required")
	}

	var exists int
	if err := a.db.GetContext(ctx, &exists, `SELECT COUNT(*) FROM users WHERE username = ?`, username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	res, err := a.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)`, username, string(hash))
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &User{ID: id, Username: username}, nil
}

// Authenticate verifies credentials. The returned user has its password
// hash cleared.
func (a *Accounts) Authenticate(ctx context.Context, username, password string) (*User, error) {
	var u User
	err := a.db.GetContext(ctx, &u,
		`SELECT id, username, password_hash, display_name, avatar FROM users WHERE username = ?`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	u.PasswordHash = ""
	return &u, nil
}

// UpdateProfile stores the cosmetic profile fields for a user.
func (a *Accounts) UpdateProfile(ctx context.Context, userID int64, displayName, avatar *string) error {
	_, err := a.db.ExecContext(ctx,
		`UPDATE users SET display_name = ?, avatar = ? WHERE id = ?`, displayName, avatar, userID)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (a *Accounts) RecordAttempt(ctx context.Context, userID int64, data AttemptData) error {
	var dur any
	if data.DurationSecs != nil {
		dur = int64(*data.DurationSecs)
	}
	passed := 0
	if data.Passed {
		passed = 1
	}
	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO attempts (user_id, lesson_id, passed, duration_secs, timestamp) VALUES (?, ?, ?, ?, ?)`,
		userID, data.LessonID, passed, dur, ts.Unix())
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// AttemptsForUser returns the user's history, newest first.
func (a *Accounts) AttemptsForUser(ctx context.Context, userID int64) ([]Attempt, error) {
	var out []Attempt
	err := a.db.SelectContext(ctx, &out,
		`SELECT id, user_id, lesson_id, passed, duration_secs, timestamp
		 FROM attempts WHERE user_id = ? ORDER BY timestamp DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	return out, nil
}

func (a *Accounts) ClearAttempts(ctx context.Context, userID int64) error {
	if _, err := a.db.ExecContext(ctx, `DELETE FROM attempts WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear attempts: %w", err)
	}
	return nil
}
