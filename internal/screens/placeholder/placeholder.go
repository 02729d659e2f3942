// Package placeholder renders a screen for features that are not
// configured in this run.
package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/psytests/psytests/internal/screen"
	"github.com/psytests/psytests/internal/ui/theme"
)

type PlaceholderScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a placeholder titled title that shows message.
func New(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.TextDim).
		Render("╌╌ " + p.title + " ╌╌\n\n" + p.message + "\n\nPress Esc to go back.")
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
