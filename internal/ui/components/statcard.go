package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/psytests/psytests/internal/ui/theme"
)

// StatCard is a bordered box with a big value over a caption.
type StatCard struct {
	Value   string
	Caption string
	Color   color.Color
}

func (c StatCard) View(width int) string {
	fg := c.Color
	if fg == nil {
		fg = theme.Primary
	}
	value := lipgloss.NewStyle().Foreground(fg).Bold(true).Render(c.Value)
	caption := lipgloss.NewStyle().Foreground(theme.TextDim).Render(c.Caption)

	return lipgloss.NewStyle().
		Width(max(width, 8)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fg).
		Render(value + "\n" + caption)
}

// StatRow lays cards side by side across width, or stacks them when the
// row would be too narrow.
func StatRow(cards []StatCard, width int) string {
	if len(cards) == 0 {
		return ""
	}
	each := (width - 2*(len(cards)-1)) / len(cards)
	if each < 18 {
		rows := make([]string, len(cards))
		for i, c := range cards {
			rows[i] = c.View(width - 2)
		}
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	parts := make([]string, 0, 2*len(cards)-1)
	for i, c := range cards {
		if i > 0 {
			parts = append(parts, "  ")
		}
		parts = append(parts, c.View(each-2))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
