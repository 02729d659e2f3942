package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/psytests/psytests/internal/ui/theme"
)

// Button is a focusable button. A disabled button ignores input and is
// drawn dimmed.
type Button struct {
	Label    string
	Active   bool
	Disabled bool
	OnPress  func() tea.Cmd
}

func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update presses the button on Enter while it has focus.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active || b.Disabled {
		return b, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}
	return b, nil
}

func (b Button) View() string {
	switch {
	case b.Disabled:
		return theme.ButtonDisabled.Render(b.Label)
	case b.Active:
		return theme.ButtonActive.Render("▸ " + b.Label)
	default:
		return theme.ButtonInactive.Render(b.Label)
	}
}
