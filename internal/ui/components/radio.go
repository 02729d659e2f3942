package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/psytests/psytests/internal/ui/theme"
)

// RadioGroup is a single-choice option list. Cursor is the highlighted row;
// Chosen is the committed option or -1.
type RadioGroup struct {
	Options []string
	Cursor  int
	Chosen  int
}

func NewRadioGroup(options []string, chosen int) RadioGroup {
	if chosen < -1 || chosen >= len(options) {
		chosen = -1
	}
	return RadioGroup{Options: options, Cursor: max(chosen, 0), Chosen: chosen}
}

// Update moves the cursor with ↑↓ / j k and commits with Enter or Space.
// Digits 1..9 jump to and commit that option. The second return value is
// true when a choice was committed by this message.
func (r RadioGroup) Update(msg tea.Msg) (RadioGroup, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(r.Options) == 0 {
		return r, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if r.Cursor > 0 {
			r.Cursor--
		}
	case "down", "j":
		if r.Cursor < len(r.Options)-1 {
			r.Cursor++
		}
	case "enter", "space", " ":
		r.Chosen = r.Cursor
		return r, true
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= min(len(r.Options), 9) {
			r.Cursor = n - 1
			r.Chosen = n - 1
			return r, true
		}
	}
	return r, false
}

func (r RadioGroup) View() string {
	lines := make([]string, len(r.Options))
	for i, opt := range r.Options {
		mark := "( )"
		if i == r.Chosen {
			mark = "(●)"
		}
		prefix := "  "
		if i == r.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %d. %s", prefix, mark, i+1, opt)

		switch {
		case i == r.Cursor:
			lines[i] = theme.Selected.Render(line)
		case i == r.Chosen:
			lines[i] = theme.Body.Bold(true).Render(line)
		default:
			lines[i] = theme.Unselected.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
