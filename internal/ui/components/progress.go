package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/rustdojo/internal/ui/theme"
)

// ProgressBar displays a horizontal completion bar.
type ProgressBar struct {
	Label       string
	Done        int
	Total       int
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a bar for done out of total.
func NewProgressBar(label string, done, total int, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Done:        done,
		Total:       total,
		ShowPercent: true,
		Width:       width,
	}
}

// Percent returns the completed fraction in [0, 1].
func (p ProgressBar) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Done) / float64(p.Total)
	return min(max(f, 0), 1)
}

// View renders the progress bar.
func (p ProgressBar) View(s theme.Styles) string {
	var result string

	if p.Label != "" {
		result += s.Body.Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	suffix := fmt.Sprintf("  %d/%d", p.Done, p.Total)
	if p.ShowPercent {
		suffix += fmt.Sprintf(" (%d%%)", int(p.Percent()*100))
	}

	barWidth := max(p.Width-labelWidth-lipgloss.Width(suffix), 4)
	filled := int(float64(barWidth) * p.Percent())
	empty := barWidth - filled

	result += s.ProgressFilled.Render(strings.Repeat(" ", filled))
	result += s.ProgressEmpty.Render(strings.Repeat(" ", empty))
	result += s.Subtitle.Render(suffix)
	return result
}
