// Package app hosts the root Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/psytests/psytests/internal/router"
	"github.com/psytests/psytests/internal/screen"
	"github.com/psytests/psytests/internal/screens/home"
	"github.com/psytests/psytests/internal/screens/welcome"
	"github.com/psytests/psytests/internal/ui/layout"
)

// Options holds what the TUI needs from the command layer.
type Options struct {
	Home home.Deps

	// Splash shows the animated welcome screen before home.
	Splash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	subtitle string
	width    int
	height   int
}

func newAppModel(opts Options) AppModel {
	newHome := func() screen.Screen { return home.New(opts.Home) }

	subtitle := ""
	if bank := opts.Home.Test.Bank; bank != nil {
		subtitle = bank.Subtitle
	}

	var first screen.Screen
	if opts.Splash {
		first = welcome.New(subtitle, newHome)
	} else {
		first = newHome()
	}
	return AppModel{router: router.New(first), subtitle: subtitle}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame, or the min-size notice on tiny terminals.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.subtitle, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)
	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// footerHints prefers the active screen's own hints.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
		if m.router.Depth() > 1 {
			hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
		}
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
