package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/psytests/psytests/internal/ui/theme"
)

// ScoreBar is a labeled bar with a right-aligned value, e.g.
//
//	Мотивация                     5/5
//	████████████████████████████████
type ScoreBar struct {
	Label    string
	Value    string
	Fraction float64
	Color    color.Color
	Width    int
}

func (s ScoreBar) View() string {
	width := max(s.Width, 10)
	label := lipgloss.NewStyle().Foreground(theme.Text).Render(s.Label)
	value := lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.Value)
	gap := max(width-lipgloss.Width(label)-lipgloss.Width(value), 1)

	head := label + lipgloss.NewStyle().Width(gap).Render("") + value
	return head + "\n" + Bar(s.Fraction, width, s.Color)
}

// InlineBar is a single-line variant: fixed-width label, bar, value.
func InlineBar(label string, labelWidth int, fraction float64, barWidth int, fill color.Color, value string) string {
	l := lipgloss.NewStyle().Width(labelWidth).Foreground(theme.TextDim).Render(label)
	v := lipgloss.NewStyle().Foreground(theme.TextDim).Render(" " + value)
	return l + Bar(fraction, barWidth, fill) + v
}
