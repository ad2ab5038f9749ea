package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/rustdojo/internal/catalog"
	"github.com/abhisek/rustdojo/internal/store"
)

func TestWriteFile(t *testing.T) {
	p := store.NewProgress()
	e := p.Entry("intro/variables")
	e.Attempts = 2
	e.Completed = true
	e.PointsEarned = 10
	best := uint64(30)
	done := int64(1_700_000_000)
	e.BestDurationSecs = &best
	e.CompletedAt = &done
	p.TotalPoints = 10
	p.Badges = []string{"Century"}
	p.Entry("gone/old").Attempts = 1

	crab := "🦀"
	wb := Workbook{
		Exercises: []catalog.Exercise{
			{ID: "intro/functions", Title: "Functions", Difficulty: catalog.Beginner},
			{ID: "intro/variables", Title: "Variables", Difficulty: catalog.Beginner},
		},
		Progress: p,
		Leaderboard: []store.LeaderboardEntry{
			{Name: "Player", Avatar: &crab, LessonID: "intro/variables", Points: 10, Timestamp: done},
			{Name: "Ferris", LessonID: "intro/functions", Points: 10, DurationSecs: &best, Timestamp: done + 60},
		},
	}

	path := filepath.Join(t.TempDir(), "progress.xlsx")
	require.NoError(t, WriteFile(path, wb))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, ProgressSheet, LeaderboardSheet}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Total points", "10"}, summary[1])
	assert.Equal(t, []string{"Completed", "1/2"}, summary[2])
	assert.Equal(t, []string{"Badges", "Century"}, summary[3])

	rows, err := f.GetRows(ProgressSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Exercise", rows[0][0])
	assert.Equal(t, "intro/functions", rows[1][0])
	assert.Equal(t, "no", rows[1][4])
	assert.Equal(t, []string{"intro/variables", "Variables", "beginner", "2", "yes", "no", "10", "30", "", "2023-11-14T22:13:20Z"}, rows[2])
	assert.Equal(t, "gone/old", rows[3][0])

	lb, err := f.GetRows(LeaderboardSheet)
	require.NoError(t, err)
	require.Len(t, lb, 3)
	assert.Equal(t, "Ferris", lb[1][1], "newest first")
	assert.Equal(t, "🦀", lb[2][2])
}

func TestBuildWithoutProgress(t *testing.T) {
	f, err := Build(Workbook{})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Player"}, rows[0])
}
