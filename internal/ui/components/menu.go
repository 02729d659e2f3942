package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/psytests/psytests/internal/ui/theme"
)

// MenuItem is a single entry of a Menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list navigated with ↑↓ / j k and activated with Enter.
// Disabled items are skipped.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{Items: items, Selected: selected}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

func (m Menu) View() string {
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			lines[i] = theme.Disabled.Render("    " + item.Label)
		case i == m.Selected:
			lines[i] = theme.Selected.Render("  ▸ " + item.Label)
		default:
			lines[i] = theme.Unselected.Render("    " + item.Label)
		}
	}
	return strings.Join(lines, "\n")
}
