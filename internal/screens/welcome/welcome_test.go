package welcome

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psytests/psytests/internal/router"
	"github.com/psytests/psytests/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	w := New("Проверь свои личностные качества", func() screen.Screen {
		calls++
		return &stubScreen{}
	})
	return w, &calls
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestPhases(t *testing.T) {
	w, _ := newTestWelcome()
	assert.NotContains(t, w.View(80, 24), logo)

	sendTicks(w, 4)
	view := w.View(80, 24)
	assert.Contains(t, view, logo)
	assert.NotContains(t, view, "личностные")

	sendTicks(w, 8)
	assert.Contains(t, w.View(80, 24), "личностные")
}

func TestAutoTransition(t *testing.T) {
	w, calls := newTestWelcome()

	cmd := sendTicks(w, int(totalDur/tickInterval))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.NotNil(t, msg.Screen)
	assert.Equal(t, 1, *calls)

	// Late ticks stop the loop.
	assert.Nil(t, sendTicks(w, 1))
}

func TestKeypressSkips(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	require.NotNil(t, cmd)
	assert.IsType(t, router.ReplaceScreenMsg{}, cmd())

	_, cmd = w.Update(tea.KeyPressMsg{Code: 'b'})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, *calls)
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome()
	assert.Empty(t, w.Title())
}
