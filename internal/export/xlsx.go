// Package export writes learner progress to a spreadsheet.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/rustdojo/internal/catalog"
	"github.com/abhisek/rustdojo/internal/store"
)

// Sheet names in the exported workbook.
const (
	SummarySheet     = "Summary"
	ProgressSheet    = "Progress"
	LeaderboardSheet = "Leaderboard"
)

var (
	progressHeader    = []any{"Exercise", "Title", "Difficulty", "Attempts", "Completed", "Quiz", "Points", "Best (s)", "Last (s)", "Completed At"}
	leaderboardHeader = []any{"Time", "Name", "Avatar", "Exercise", "Points", "Duration (s)"}
)

// Workbook is everything one export contains.
type Workbook struct {
	Exercises   []catalog.Exercise
	Progress    *store.Progress
	Leaderboard []store.LeaderboardEntry
}

// WriteFile saves wb as an xlsx file at path.
func WriteFile(path string, wb Workbook) error {
	f, err := Build(wb)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// Build lays out the workbook in memory. The caller must Close it.
func Build(wb Workbook) (*excelize.File, error) {
	p := wb.Progress
	if p == nil {
		p = store.NewProgress()
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{ProgressSheet, LeaderboardSheet} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("add sheet %s: %w", name, err)
		}
	}

	if err := writeSummary(f, wb.Exercises, p); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeProgress(f, wb.Exercises, p); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeLeaderboard(f, wb.Leaderboard); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeSummary(f *excelize.File, all []catalog.Exercise, p *store.Progress) error {
	rows := [][]any{
		{"Name", p.Name()},
		{"Total points", p.TotalPoints},
		{"Completed", fmt.Sprintf("%d/%d", p.CompletedCount(), len(all))},
		{"Badges", strings.Join(p.Badges, ", ")},
	}
	if p.CurrentUsername != nil {
		rows = append(rows, []any{"Logged in as", *p.CurrentUsername})
	}
	return writeRows(f, SummarySheet, rows)
}

func writeProgress(f *excelize.File, all []catalog.Exercise, p *store.Progress) error {
	rows := [][]any{progressHeader}
	seen := make(map[string]bool, len(all))
	for _, ex := range all {
		seen[ex.ID] = true
		rows = append(rows, progressRow(ex.ID, ex.Title, string(ex.Difficulty), p.Exercises[ex.ID]))
	}

	// Progress for exercises no longer in the catalog is still exported.
	var orphans []string
	for id := range p.Exercises {
		if !seen[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		rows = append(rows, progressRow(id, "", "", p.Exercises[id]))
	}
	return writeRows(f, ProgressSheet, rows)
}

func progressRow(id, title, difficulty string, e *store.ExerciseProgress) []any {
	if e == nil {
		e = &store.ExerciseProgress{}
	}
	return []any{
		id, title, difficulty,
		e.Attempts, yesNo(e.Completed), yesNo(e.QuizCompleted), e.PointsEarned,
		optUint(e.BestDurationSecs), optUint(e.LastDurationSecs), optTime(e.CompletedAt),
	}
}

func writeLeaderboard(f *excelize.File, entries []store.LeaderboardEntry) error {
	rows := [][]any{leaderboardHeader}
	for _, e := range store.Recent(entries, len(entries)) {
		avatar := ""
		if e.Avatar != nil {
			avatar = *e.Avatar
		}
		rows = append(rows, []any{optTime(&e.Timestamp), e.Name, avatar, e.LessonID, e.Points, optUint(e.DurationSecs)})
	}
	return writeRows(f, LeaderboardSheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func optUint(v *uint64) any {
	if v == nil {
		return ""
	}
	return *v
}

func optTime(ts *int64) string {
	if ts == nil {
		return ""
	}
	return time.Unix(*ts, 0).UTC().Format(time.RFC3339)
}
