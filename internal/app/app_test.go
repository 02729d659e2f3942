package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psytests/psytests/internal/questionnaire"
	"github.com/psytests/psytests/internal/router"
	"github.com/psytests/psytests/internal/screens/home"
	qscreen "github.com/psytests/psytests/internal/screens/questionnaire"
	"github.com/psytests/psytests/internal/screens/welcome"
)

func newTestModel(t *testing.T, splash bool) AppModel {
	t.Helper()
	bank, err := questionnaire.Default("ru")
	require.NoError(t, err)
	return newAppModel(Options{Home: home.Deps{Test: qscreen.Deps{Bank: bank}}, Splash: splash})
}

func TestStartsOnHome(t *testing.T) {
	m := newTestModel(t, false)
	_, ok := m.router.Active().(*home.HomeScreen)
	assert.True(t, ok)
}

func TestSplashFirst(t *testing.T) {
	m := newTestModel(t, true)
	_, ok := m.router.Active().(*welcome.WelcomeScreen)
	assert.True(t, ok)
	assert.NotNil(t, m.Init())
}

func TestEscPopsOnlyAboveHome(t *testing.T) {
	m := newTestModel(t, false)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)

	m.router.Push(&home.HomeScreen{})
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t, false)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewFrame(t *testing.T) {
	m := newTestModel(t, false)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	am := next.(AppModel)

	assert.True(t, am.View().AltScreen)
	frame := am.render()
	assert.Contains(t, frame, "PsyTests")
	assert.Contains(t, frame, "Ctrl+C")
}

func TestViewTooSmall(t *testing.T) {
	m := newTestModel(t, false)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	frame := next.(AppModel).render()
	assert.NotEmpty(t, frame)
	assert.NotContains(t, frame, "Ctrl+C")
}

func TestViewBeforeFirstResize(t *testing.T) {
	m := newTestModel(t, false)
	assert.True(t, m.View().AltScreen)
	assert.Empty(t, m.render())
}

func TestQuestionnaireHintsReachFooter(t *testing.T) {
	m := newTestModel(t, false)
	s, err := qscreen.New(qscreen.Deps{Bank: mustBank(t)})
	require.NoError(t, err)
	m.router.Push(s)

	hints := m.footerHints(s)
	assert.Equal(t, s.KeyHints(), hints[:len(s.KeyHints())])
	assert.Len(t, hints, len(s.KeyHints())+1)
	assert.Equal(t, "Ctrl+C", hints[len(hints)-1].Key)
}

func mustBank(t *testing.T) *questionnaire.Bank {
	t.Helper()
	bank, err := questionnaire.Default("ru")
	require.NoError(t, err)
	return bank
}
