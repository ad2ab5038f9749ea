package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/rustdojo/internal/ui/theme"
)

// ContentWidth clamps a terminal width to the width used for cards.
func ContentWidth(termWidth int) int {
	w := termWidth - 4
	if w > 100 {
		w = 100
	}
	if w < 40 {
		w = 40
	}
	return w
}

// Card wraps content in a rounded border with an optional title line.
func Card(s theme.Styles, title, content string, width int) string {
	body := strings.TrimRight(content, "\n")
	if title != "" {
		body = s.Title.Render(title) + "\n\n" + body
	}
	return s.Card.Width(width).Render(body)
}

// Table renders rows under headers with the theme's table styles.
func Table(s theme.Styles, headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.TableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			return s.TableCell
		})
	return t.Render()
}
