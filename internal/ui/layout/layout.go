package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/rustdojo/internal/ui/theme"
)

const (
	DefaultWidth = 80
	MinWidth     = 40
)

// KeyHint is a command suggestion shown under command output.
type KeyHint struct {
	Key         string
	Description string
}

// Width picks the render width from a reported terminal width, falling back
// to DefaultWidth when the size is unknown.
func Width(reported int) int {
	if reported <= 0 {
		return DefaultWidth
	}
	return max(reported, MinWidth)
}

// RenderHeader renders the learner banner: app name on the left, the
// profile name centered and points on the right.
func RenderHeader(s theme.Styles, name, avatar string, points uint32, width int) string {
	left := s.Title.Render("rustdojo")
	center := s.Body.Render(strings.TrimSpace(avatar + " " + name))
	right := s.Badge.Render(fmt.Sprintf("◆ %d pts", points))

	inner := max(width-4, 0)
	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	leftGap := max((inner-centerLen)/2-leftLen, 1)
	rightGap := max(inner-leftLen-leftGap-centerLen-rightLen, 1)

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
	return s.Card.Width(width).Render(content)
}

// RenderFooter renders follow-up command hints.
func RenderFooter(s theme.Styles, hints []KeyHint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, s.Body.Bold(true).Render(h.Key)+" "+s.Subtitle.Render(h.Description))
	}
	return "  " + strings.Join(parts, "   ")
}
