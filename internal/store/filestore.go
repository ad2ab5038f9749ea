package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File names inside the data directory.
const (
	ProgressFile    = "progress.json"
	LeaderboardFile = "leaderboard.json"
)

// FileStore keeps progress and leaderboard as pretty-printed JSON files.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// ProgressPath returns the progress document location.
func (s *FileStore) ProgressPath() string {
	return filepath.Join(s.dir, ProgressFile)
}

// LeaderboardPath returns the leaderboard document location.
func (s *FileStore) LeaderboardPath() string {
	return filepath.Join(s.dir, LeaderboardFile)
}

func (s *FileStore) Load(_ context.Context) (*Progress, error) {
	data, err := os.ReadFile(s.ProgressPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewProgress(), nil
		}
		return nil, fmt.Errorf("read progress: %w", err)
	}

	p := NewProgress()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse progress: %w", err)
	}
	p.normalize()
	return p, nil
}

func (s *FileStore) Save(_ context.Context, p *Progress) error {
	if err := writeJSONAtomic(s.ProgressPath(), p); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (s *FileStore) LoadLeaderboard(_ context.Context) ([]LeaderboardEntry, error) {
	data, err := os.ReadFile(s.LeaderboardPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}

	var entries []LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse leaderboard: %w", err)
	}
	return entries, nil
}

func (s *FileStore) AppendLeaderboard(ctx context.Context, e LeaderboardEntry) error {
	entries, err := s.LoadLeaderboard(ctx)
	if err != nil {
		return err
	}
	entries = AppendCapped(entries, e)
	if err := writeJSONAtomic(s.LeaderboardPath(), entries); err != nil {
		return fmt.Errorf("save leaderboard: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	for _, p := range []string{s.ProgressPath(), s.LeaderboardPath()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", filepath.Base(p), err)
		}
	}
	return nil
}

// writeJSONAtomic writes v to a temp file beside path and renames it into
// place, so readers never observe a half-written document.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := EnsureDir(path); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
