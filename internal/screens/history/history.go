// Package history lists stored attempts.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/psytests/psytests/internal/questionnaire"
	"github.com/psytests/psytests/internal/screen"
	"github.com/psytests/psytests/internal/store"
	"github.com/psytests/psytests/internal/ui/components"
	"github.com/psytests/psytests/internal/ui/layout"
	"github.com/psytests/psytests/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Attempts []store.AttemptRecord
	Err      error
}

// HistoryScreen shows past attempts, newest first. Enter expands the
// per-category scores of the selected attempt.
type HistoryScreen struct {
	repo     store.AttemptRepo
	bank     *questionnaire.Bank
	attempts []store.AttemptRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the screen. bank supplies category colors and may be nil.
func New(repo store.AttemptRepo, bank *questionnaire.Bank) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		bank:     bank,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		attempts, err := repo.ListAttempts(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Attempts: attempts, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter", "space":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\nLoading history...")
	case len(s.attempts) == 0:
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\nNo attempts yet. Take the test first!")
	}

	cw := max(min(width-8, 72), 30)
	var lines []string
	for i, a := range s.attempts {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%s  %s  avg %3.0f%%  better than %d%%",
			prefix,
			a.Timestamp.Local().Format("2006-01-02 15:04"),
			formatDuration(a.DurationSecs),
			a.Average,
			a.BetterThan,
		)))

		if s.expanded[i] {
			lines = append(lines, s.renderCategories(a, cw-4)...)
		}
	}

	// Keep the selected row on screen.
	start := 0
	if len(lines) > height {
		start = min(s.selectedLine(), len(lines)-height)
	}
	end := min(start+height, len(lines))

	block := strings.Join(lines[start:end], "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(block))
}

func (s *HistoryScreen) renderCategories(a store.AttemptRecord, width int) []string {
	labelWidth := 0
	for _, c := range a.Categories {
		labelWidth = max(labelWidth, lipgloss.Width(c.Label))
	}
	labelWidth += 2
	barWidth := max(width-labelWidth-8, 6)

	out := make([]string, 0, len(a.Categories)+1)
	for _, c := range a.Categories {
		frac := 0.0
		if c.MaxScore > 0 {
			frac = float64(c.Score) / float64(c.MaxScore)
		}
		out = append(out, "    "+components.InlineBar(c.Label, labelWidth, frac, barWidth,
			s.categoryColor(c.CategoryID), fmt.Sprintf("%d/%d", c.Score, c.MaxScore)))
	}
	return append(out, "")
}

func (s *HistoryScreen) categoryColor(id string) color.Color {
	if s.bank != nil {
		if c, ok := s.bank.Category(id); ok {
			return theme.CategoryColor(c.Color)
		}
	}
	return theme.Primary
}

// selectedLine is the index of the selected attempt's row in the rendered
// line list.
func (s *HistoryScreen) selectedLine() int {
	line := 0
	for i := 0; i < s.selected; i++ {
		line++
		if s.expanded[i] {
			line += len(s.attempts[i].Categories) + 1
		}
	}
	return line
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
