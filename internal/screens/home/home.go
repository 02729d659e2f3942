// Package home is the start screen.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/psytests/psytests/internal/questionnaire"
	"github.com/psytests/psytests/internal/router"
	"github.com/psytests/psytests/internal/screen"
	"github.com/psytests/psytests/internal/screens/history"
	"github.com/psytests/psytests/internal/screens/placeholder"
	qscreen "github.com/psytests/psytests/internal/screens/questionnaire"
	"github.com/psytests/psytests/internal/store"
	"github.com/psytests/psytests/internal/ui/components"
	"github.com/psytests/psytests/internal/ui/layout"
	"github.com/psytests/psytests/internal/ui/theme"
)

// Deps configures the home screen. Test carries everything the
// questionnaire screen needs; Test.Attempts doubles as the history source.
type Deps struct {
	Test qscreen.Deps

	// CheckUpdate, when set, runs once in the background and returns the
	// newer version to advertise, or "" when up to date.
	CheckUpdate func(ctx context.Context) (string, error)
}

type statsLoadedMsg struct {
	Count int
	Last  *float64
}

type updateCheckedMsg struct {
	Version string
}

// HomeScreen shows the banner, attempt stats and the main menu.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string

	attempts    int
	lastAverage *float64
	newVersion  string
}

var _ screen.Screen = (*HomeScreen)(nil)

func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	t := textsFor(deps)
	h.menuLabels = []string{t.StartTest, t.History, t.Exit}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: h.menuLabels[0], Action: h.startTest},
		{Label: h.menuLabels[1], Action: h.openHistory},
		{Label: h.menuLabels[2], Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	var cmds []tea.Cmd
	if repo := h.deps.Test.Attempts; repo != nil {
		cmds = append(cmds, loadStats(repo))
	}
	if check := h.deps.CheckUpdate; check != nil {
		cmds = append(cmds, func() tea.Msg {
			v, err := check(context.Background())
			if err != nil {
				return nil
			}
			return updateCheckedMsg{Version: v}
		})
	}
	return tea.Batch(cmds...)
}

func loadStats(repo store.AttemptRepo) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		n, err := repo.CountAttempts(ctx)
		if err != nil {
			return nil
		}
		msg := statsLoadedMsg{Count: n}
		if latest, err := repo.ListAttempts(ctx, store.QueryOpts{Limit: 1}); err == nil && len(latest) > 0 {
			avg := latest[0].Average
			msg.Last = &avg
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.attempts, h.lastAverage = msg.Count, msg.Last
		return h, nil
	case updateCheckedMsg:
		h.newVersion = msg.Version
		return h, nil
	case router.ScreenResumedMsg:
		// Refresh stats after returning from a test or the history list.
		if repo := h.deps.Test.Attempts; repo != nil {
			return h, loadStats(repo)
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+6) || layout.IsCompactWidth(width)
	cw := max(min(width-6, 60), 20)

	sections := []string{renderBanner(cw, compact)}
	if sub := h.subtitle(); sub != "" {
		sections = append(sections, theme.Subtitle.Width(cw).Render(sub))
	}
	if h.deps.Test.Attempts != nil {
		sections = append(sections, renderStats(h.attempts, h.lastAverage, cw))
	}
	sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))
	if h.newVersion != "" {
		sections = append(sections, renderUpdateNote(h.newVersion, cw))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, sep))
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) subtitle() string {
	if h.deps.Test.Bank == nil {
		return ""
	}
	return h.deps.Test.Bank.Subtitle
}

func (h *HomeScreen) startTest() tea.Cmd {
	if h.deps.Test.Bank == nil {
		return push(placeholder.New("Test", "No question bank loaded."))
	}
	s, err := qscreen.New(h.deps.Test)
	if err != nil {
		return push(placeholder.New("Test", err.Error()))
	}
	return push(s)
}

func (h *HomeScreen) openHistory() tea.Cmd {
	if h.deps.Test.Attempts == nil {
		return push(placeholder.New("History", "History is unavailable: no database configured."))
	}
	return push(history.New(h.deps.Test.Attempts, h.deps.Test.Bank))
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func textsFor(deps Deps) questionnaire.Texts {
	if deps.Test.Bank == nil {
		return questionnaire.TextsFor("")
	}
	return questionnaire.TextsFor(deps.Test.Bank.Locale)
}
