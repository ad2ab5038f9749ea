package components

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/rustdojo/internal/ui/theme"
)

func TestProgressBarPercent(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{0, 4, 0},
		{3, 4, 0.75},
		{4, 4, 1},
		{9, 4, 1},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, NewProgressBar("", tc.done, tc.total, 40).Percent(), 1e-9)
	}
}

func TestProgressBarView(t *testing.T) {
	s := theme.ForName("Dark")
	out := NewProgressBar("Beginner", 3, 4, 60).View(s)
	assert.Contains(t, out, "Beginner")
	assert.Contains(t, out, "3/4 (75%)")
	assert.Equal(t, 60, lipgloss.Width(out))
}

func TestTableAndCard(t *testing.T) {
	s := theme.ForName("Light")
	out := Table(s, []string{"ID", "Status"}, [][]string{{"intro/variables", "done"}})
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "intro/variables")
	assert.Contains(t, out, "done")

	card := Card(s, "Hint", "Look at the borrow.", 60)
	assert.Contains(t, card, "Hint")
	assert.Contains(t, card, "Look at the borrow.")
}

func TestContentWidth(t *testing.T) {
	assert.Equal(t, 40, ContentWidth(10))
	assert.Equal(t, 76, ContentWidth(80))
	assert.Equal(t, 100, ContentWidth(300))
}
