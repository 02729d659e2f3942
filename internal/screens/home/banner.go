package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/psytests/psytests/internal/ui/theme"
)

const bannerFull = `╔═╗╔═╗╦ ╦╔╦╗╔═╗╔═╗╔╦╗╔═╗
╠═╝╚═╗╚╦╝ ║ ║╣ ╚═╗ ║ ╚═╗
╩  ╚═╝ ╩  ╩ ╚═╝╚═╝ ╩ ╚═╝`

const bannerCompact = "P s y T e s t s"

const menuWidth = 26

func renderBanner(cw int, compact bool) string {
	art := bannerFull
	if compact {
		art = bannerCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(art)
}

// renderStats is the one-line summary of stored attempts.
func renderStats(count int, last *float64, cw int) string {
	accent := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	text := accent.Render(fmt.Sprintf("%d", count)) + dim.Render(" attempts")
	if last != nil {
		text += dim.Render("   last average ") + accent.Render(fmt.Sprintf("%.0f%%", *last))
	}
	return lipgloss.NewStyle().
		Width(cw-2).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(text)
}

// renderMenu draws each entry as a fixed-width button.
func renderMenu(labels []string, selected, cw int) string {
	base := lipgloss.NewStyle().
		Width(menuWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	buttons := make([]string, len(labels))
	for i, label := range labels {
		if i == selected {
			buttons[i] = base.
				Bold(true).
				Foreground(theme.Text).
				Background(theme.Primary).
				BorderForeground(theme.Primary).
				Render("▸ " + label)
			continue
		}
		buttons[i] = base.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, buttons...))
}

func renderUpdateNote(version string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("New version %s available", version))
}
