package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/rustdojo/internal/store"
)

// ProfileUpdate carries the cosmetic fields to change. Nil fields are left
// as they are.
type ProfileUpdate struct {
	DisplayName *string
	Avatar      *string
	Theme       *string
	TextScale   *float32
}

// UpdateProfile applies u to progress. When a user is logged in the display
// name and avatar are mirrored to their account on a best-effort basis.
func (e *Engine) UpdateProfile(ctx context.Context, u ProfileUpdate) (*store.Progress, error) {
	if u.TextScale != nil && (*u.TextScale <= 0 || *u.TextScale > 4) {
		return nil, fmt.Errorf("text scale must be in (0, 4], got %g", *u.TextScale)
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	p, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if u.DisplayName != nil {
		p.DisplayName = ptr(strings.TrimSpace(*u.DisplayName))
	}
	if u.Avatar != nil {
		p.Avatar = ptr(*u.Avatar)
	}
	if u.Theme != nil {
		p.Theme = ptr(*u.Theme)
	}
	if u.TextScale != nil {
		p.TextScale = ptr(*u.TextScale)
	}
	if err := e.store.Save(ctx, p); err != nil {
		return nil, err
	}

	if p.CurrentUserID != nil && e.accounts != nil && (u.DisplayName != nil || u.Avatar != nil) {
		if err := e.accounts.UpdateProfile(ctx, *p.CurrentUserID, p.DisplayName, p.Avatar); err != nil {
			e.log.Warn("account profile update failed", zap.Int64("user_id", *p.CurrentUserID), zap.Error(err))
		}
	}
	return p, nil
}

// Register creates an account. It does not log the user in.
func (e *Engine) Register(ctx context.Context, username, password string) (*store.User, error) {
	if e.accounts == nil {
		return nil, ErrNoAccounts
	}
	return e.accounts.Register(ctx, username, password)
}

// Login authenticates and records the user in progress. The account's
// display name and avatar, when set, replace the local ones; otherwise the
// username becomes the display name.
func (e *Engine) Login(ctx context.Context, username, password string) (*store.User, error) {
	if e.accounts == nil {
		return nil, ErrNoAccounts
	}
	u, err := e.accounts.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	p, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	p.CurrentUserID = ptr(u.ID)
	p.CurrentUsername = ptr(u.Username)
	if u.DisplayName.Valid && u.DisplayName.String != "" {
		p.DisplayName = ptr(u.DisplayName.String)
	} else {
		p.DisplayName = ptr(u.Username)
	}
	if u.Avatar.Valid && u.Avatar.String != "" {
		p.Avatar = ptr(u.Avatar.String)
	}
	if err := e.store.Save(ctx, p); err != nil {
		return nil, err
	}
	return u, nil
}

// Logout forgets the logged-in user. Progress itself is kept.
func (e *Engine) Logout(ctx context.Context) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	p, err := e.store.Load(ctx)
	if err != nil {
		return err
	}
	if p.CurrentUserID == nil {
		return ErrNotLoggedIn
	}
	p.CurrentUserID = nil
	p.CurrentUsername = nil
	return e.store.Save(ctx, p)
}

// History returns the logged-in user's attempts, newest first.
func (e *Engine) History(ctx context.Context) ([]store.Attempt, error) {
	if e.accounts == nil {
		return nil, ErrNoAccounts
	}
	p, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if p.CurrentUserID == nil {
		return nil, ErrNotLoggedIn
	}
	return e.accounts.AttemptsForUser(ctx, *p.CurrentUserID)
}
