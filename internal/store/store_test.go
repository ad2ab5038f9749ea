package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), DBFile))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.db

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	acc := openTestStore(t).Accounts()
	ctx := context.Background()

	u, err := acc.Register(ctx, "ferris", "s3cret")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "ferris", u.Username)

	_, err = acc.Register(ctx, "ferris", "other")
	require.ErrorIs(t, err, ErrUsernameTaken)

	got, err := acc.Authenticate(ctx, "ferris", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Empty(t, got.PasswordHash, "hash must not leak to callers")

	_, err = acc.Authenticate(ctx, "ferris", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = acc.Authenticate(ctx, "nobody", "s3cret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidatesInput(t *testing.T) {
	acc := openTestStore(t).Accounts()
	ctx := context.Background()

	_, err := acc.Register(ctx, "  ", "pw")
	require.Error(t, err)
	_, err = acc.Register(ctx, "ferris", "")
	require.Error(t, err)
}

func TestUpdateProfile(t *testing.T) {
	acc := openTestStore(t).Accounts()
	ctx := context.Background()

	u, err := acc.Register(ctx, "ferris", "pw")
	require.NoError(t, err)

	name := "Ferris the Crab"
	require.NoError(t, acc.UpdateProfile(ctx, u.ID, &name, nil))

	got, err := acc.Authenticate(ctx, "ferris", "pw")
	require.NoError(t, err)
	assert.Equal(t, name, got.DisplayName.String)
	assert.False(t, got.Avatar.Valid)
}

func TestAttemptHistory(t *testing.T) {
	acc := openTestStore(t).Accounts()
	ctx := context.Background()

	u, err := acc.Register(ctx, "ferris", "pw")
	require.NoError(t, err)

	base := time.Unix(1_700_000_000, 0)
	dur := uint64(42)
	require.NoError(t, acc.RecordAttempt(ctx, u.ID, AttemptData{LessonID: "intro/vars", Passed: false, Timestamp: base}))
	require.NoError(t, acc.RecordAttempt(ctx, u.ID, AttemptData{LessonID: "intro/vars", Passed: true, DurationSecs: &dur, Timestamp: base.Add(time.Minute)}))

	attempts, err := acc.AttemptsForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	assert.True(t, attempts[0].Passed, "newest first")
	assert.Equal(t, int64(42), attempts[0].DurationSecs.Int64)
	assert.Equal(t, base.Add(time.Minute).Unix(), attempts[0].Timestamp)
	assert.False(t, attempts[1].Passed)
	assert.False(t, attempts[1].DurationSecs.Valid)

	require.NoError(t, acc.ClearAttempts(ctx, u.ID))
	attempts, err = acc.AttemptsForUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, attempts)
}
