package store

// LeaderboardCap is the maximum number of retained leaderboard entries.
const LeaderboardCap = 2000

// LeaderboardEntry records one first-time completion.
type LeaderboardEntry struct {
	Name         string  `json:"name"`
	Avatar       *string `json:"avatar"`
	LessonID     string  `json:"lesson_id"`
	Points       uint32  `json:"points"`
	DurationSecs *uint64 `json:"duration_secs"`
	Timestamp    int64   `json:"timestamp"`
}

// AppendCapped appends e and drops the oldest entries (by insertion order)
// beyond LeaderboardCap.
func AppendCapped(entries []LeaderboardEntry, e LeaderboardEntry) []LeaderboardEntry {
	entries = append(entries, e)
	if over := len(entries) - LeaderboardCap; over > 0 {
		entries = append(entries[:0:0], entries[over:]...)
	}
	return entries
}

// Recent returns up to n of the most recently inserted entries, newest first.
func Recent(entries []LeaderboardEntry, n int) []LeaderboardEntry {
	if n <= 0 || n > len(entries) {
		n = len(entries)
	}
	out := make([]LeaderboardEntry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, entries[i])
	}
	return out
}
