package theme

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Palette is the set of colors a theme is built from.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Border    color.Color
}

// Dark is the default palette, tuned for dark terminals.
var Dark = Palette{
	Primary:   lipgloss.Color("#F97316"), // Rust orange
	Secondary: lipgloss.Color("#14B8A6"), // Teal
	Accent:    lipgloss.Color("#8B5CF6"), // Purple
	Success:   lipgloss.Color("#22C55E"),
	Error:     lipgloss.Color("#F43F5E"),
	Text:      lipgloss.Color("#F8FAFC"),
	TextDim:   lipgloss.Color("#94A3B8"),
	Border:    lipgloss.Color("#334155"),
}

// Light is for light terminal backgrounds.
var Light = Palette{
	Primary:   lipgloss.Color("#C2410C"),
	Secondary: lipgloss.Color("#0F766E"),
	Accent:    lipgloss.Color("#6D28D9"),
	Success:   lipgloss.Color("#15803D"),
	Error:     lipgloss.Color("#BE123C"),
	Text:      lipgloss.Color("#0F172A"),
	TextDim:   lipgloss.Color("#64748B"),
	Border:    lipgloss.Color("#CBD5E1"),
}

// Names lists the selectable theme names.
var Names = []string{"Dark", "Light"}

// Styles holds the rendered styles for one palette.
type Styles struct {
	Palette Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style

	Pass   lipgloss.Style
	Fail   lipgloss.Style
	Locked lipgloss.Style
	Badge  lipgloss.Style

	Card lipgloss.Style

	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style

	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	TableBorder lipgloss.Style
}

// New builds the styles for p.
func New(p Palette) Styles {
	return Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		Subtitle: lipgloss.NewStyle().
			Foreground(p.TextDim),

		Body: lipgloss.NewStyle().
			Foreground(p.Text),

		Hint: lipgloss.NewStyle().
			Foreground(p.TextDim).
			Italic(true),

		Pass: lipgloss.NewStyle().
			Foreground(p.Success).
			Bold(true),

		Fail: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),

		Locked: lipgloss.NewStyle().
			Foreground(p.TextDim),

		Badge: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),

		ProgressFilled: lipgloss.NewStyle().
			Background(p.Secondary),

		ProgressEmpty: lipgloss.NewStyle().
			Background(p.Border),

		TableHeader: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			Padding(0, 1),

		TableCell: lipgloss.NewStyle().
			Foreground(p.Text).
			Padding(0, 1),

		TableBorder: lipgloss.NewStyle().
			Foreground(p.Border),
	}
}

// ForName returns the styles for a stored theme name. Unknown names get
// the dark theme.
func ForName(name string) Styles {
	if strings.EqualFold(strings.TrimSpace(name), "light") {
		return New(Light)
	}
	return New(Dark)
}

// Valid reports whether name is a selectable theme.
func Valid(name string) bool {
	for _, n := range Names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// Canonical returns the stored spelling of a theme name.
func Canonical(name string) string {
	for _, n := range Names {
		if strings.EqualFold(n, name) {
			return n
		}
	}
	return name
}
