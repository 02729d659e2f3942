// Package welcome is the splash shown before the home screen.
package welcome

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/psytests/psytests/internal/router"
	"github.com/psytests/psytests/internal/screen"
	"github.com/psytests/psytests/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	logoAt       = 400 * time.Millisecond
	taglineAt    = 1200 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

// pulse frames expand outward from the center dot.
var pulseFrames = []string{
	"·",
	"∘ · ∘",
	"○ ∘ · ∘ ○",
	"◯ ○ ∘ · ∘ ○ ◯",
}

const logo = "P s y T e s t s"

type tickMsg time.Time

// WelcomeScreen plays a short pulse animation and then replaces itself
// with the screen built by next. Any key skips the animation.
type WelcomeScreen struct {
	next         func() screen.Screen
	tagline      string
	elapsed      time.Duration
	frame        int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a splash with the given tagline.
func New(tagline string, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next, tagline: tagline}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		w.frame++
		if w.elapsed >= totalDur {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	pulse := pulseFrames[min(w.frame, len(pulseFrames)-1)]
	if w.elapsed >= logoAt {
		// Keep breathing once fully expanded.
		pulse = pulseFrames[len(pulseFrames)-2+w.frame%2]
	}
	sections := []string{lipgloss.NewStyle().Foreground(theme.Secondary).Render(pulse)}

	if w.elapsed >= logoAt {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(logo))
	}
	if w.elapsed >= taglineAt && w.tagline != "" {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Text).Render(w.tagline),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
