package components

import (
	"charm.land/lipgloss/v2"

	"github.com/psytests/psytests/internal/ui/theme"
)

// Tabs is a horizontal tab strip. Disabled tabs cannot become active.
type Tabs struct {
	Labels   []string
	Active   int
	Disabled []bool
}

func NewTabs(labels ...string) Tabs {
	return Tabs{Labels: labels, Disabled: make([]bool, len(labels))}
}

// SetDisabled toggles a tab. Disabling the active tab moves focus to the
// first enabled one.
func (t Tabs) SetDisabled(i int, disabled bool) Tabs {
	if i < 0 || i >= len(t.Labels) {
		return t
	}
	t.Disabled = append([]bool(nil), t.Disabled...)
	t.Disabled[i] = disabled
	if disabled && t.Active == i {
		for j := range t.Labels {
			if !t.Disabled[j] {
				t.Active = j
				break
			}
		}
	}
	return t
}

// Select activates tab i if it exists and is enabled.
func (t Tabs) Select(i int) Tabs {
	if i >= 0 && i < len(t.Labels) && !t.Disabled[i] {
		t.Active = i
	}
	return t
}

// Next cycles to the next enabled tab.
func (t Tabs) Next() Tabs {
	for step := 1; step < len(t.Labels); step++ {
		j := (t.Active + step) % len(t.Labels)
		if !t.Disabled[j] {
			t.Active = j
			break
		}
	}
	return t
}

func (t Tabs) View() string {
	parts := make([]string, len(t.Labels))
	for i, label := range t.Labels {
		switch {
		case i == t.Active:
			parts[i] = theme.TabActive.Render(label)
		case t.Disabled[i]:
			parts[i] = theme.TabInactive.Foreground(theme.Border).Render(label)
		default:
			parts[i] = theme.TabInactive.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
