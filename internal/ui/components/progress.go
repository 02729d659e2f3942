package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/psytests/psytests/internal/ui/theme"
)

// ProgressBar is a horizontal bar. Percent is a fraction in [0, 1]; values
// outside are clamped when drawn.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	Color       color.Color
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Color:       theme.Primary,
	}
}

func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6
	}
	barWidth := max(p.Width-lipgloss.Width(result)-percentWidth, 4)

	result += Bar(p.Percent, barWidth, p.Color)

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %3d%%", int(clamp01(p.Percent)*100+0.5)))
	}
	return result
}

// Bar draws a filled/empty cell strip of the given width.
func Bar(fraction float64, width int, fill color.Color) string {
	if fill == nil {
		fill = theme.Primary
	}
	filled := int(float64(width)*clamp01(fraction) + 0.5)
	filled = min(max(filled, 0), width)

	return lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", width-filled))
}

func clamp01(f float64) float64 {
	return min(max(f, 0), 1)
}
