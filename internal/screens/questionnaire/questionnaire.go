// Package questionnaire is the main screen: the question flow on the first
// tab and the scored results on the second.
package questionnaire

import (
	"context"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/psytests/psytests/internal/flow"
	"github.com/psytests/psytests/internal/insight"
	qbank "github.com/psytests/psytests/internal/questionnaire"
	"github.com/psytests/psytests/internal/screen"
	"github.com/psytests/psytests/internal/scoring"
	"github.com/psytests/psytests/internal/store"
	"github.com/psytests/psytests/internal/ui/components"
	"github.com/psytests/psytests/internal/ui/layout"
	"github.com/psytests/psytests/internal/ui/theme"
)

const (
	tabTests = iota
	tabResults
)

const (
	focusViewResults = iota
	focusRestart
)

// Deps are the collaborators of the screen. Attempts and Insight may be nil.
type Deps struct {
	Bank     *qbank.Bank
	Attempts store.AttemptRepo
	Insight  *insight.Service
	Sampler  *scoring.ReferenceSampler
	Now      func() time.Time
}

// QuestionnaireScreen runs one attempt at a time over the bank.
type QuestionnaireScreen struct {
	deps  Deps
	texts qbank.Texts
	ctrl  *flow.Controller

	tabs      components.Tabs
	radio     components.RadioGroup
	cardFocus int
	results   viewport.Model

	attempt   int
	startedAt time.Time
	saved     *store.AttemptRecord
	saveErr   error

	spinner        spinner.Model
	insightPending bool
	insight        *insight.Insight
	insightErr     error
}

var _ screen.Screen = (*QuestionnaireScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionnaireScreen)(nil)

// New creates the screen positioned on the first question.
func New(deps Deps) (*QuestionnaireScreen, error) {
	ctrl, err := flow.New(deps.Bank.Questions)
	if err != nil {
		return nil, err
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Sampler == nil {
		deps.Sampler = scoring.NewReferenceSampler()
	}

	texts := qbank.TextsFor(deps.Bank.Locale)
	s := &QuestionnaireScreen{
		deps:    deps,
		texts:   texts,
		ctrl:    ctrl,
		tabs:    components.NewTabs(texts.TestsTab, texts.ResultsTab).SetDisabled(tabResults, true),
		results: viewport.New(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
	s.syncRadio()
	return s, nil
}

func (s *QuestionnaireScreen) Init() tea.Cmd {
	s.startedAt = s.deps.Now()
	return nil
}

func (s *QuestionnaireScreen) Title() string {
	return s.texts.TestTitle
}

// Phase exposes the controller phase.
func (s *QuestionnaireScreen) Phase() flow.Phase {
	return s.ctrl.Phase()
}

func (s *QuestionnaireScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Switch tab"}}
	switch {
	case s.tabs.Active == tabResults:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Scroll"},
			layout.KeyHint{Key: "R", Description: s.texts.RestartAgain})
	case s.ctrl.Phase().Done():
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Choose"},
			layout.KeyHint{Key: "Enter", Description: "Select"})
	default:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Option"},
			layout.KeyHint{Key: "Enter", Description: "Answer"},
			layout.KeyHint{Key: "←→", Description: s.texts.Back + " / " + s.texts.Next})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *QuestionnaireScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptSavedMsg:
		if msg.attempt == s.attempt {
			s.saved, s.saveErr = msg.Record, msg.Err
		}
		return s, nil

	case insightMsg:
		if msg.attempt == s.attempt {
			s.insightPending = false
			s.insight, s.insightErr = msg.Insight, msg.Err
		}
		return s, nil

	case spinner.TickMsg:
		if !s.insightPending {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuestionnaireScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		s.tabs = s.tabs.Next()
		return s, nil
	}

	switch {
	case s.tabs.Active == tabResults:
		return s.handleResultsKey(msg)
	case s.ctrl.Phase().Done():
		return s.handleCompletionKey(msg)
	default:
		return s.handleQuestionKey(msg)
	}
}

func (s *QuestionnaireScreen) handleQuestionKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "left", "h", "backspace":
		if s.ctrl.CanRetreat() {
			s.ctrl.Retreat()
			s.syncRadio()
		}
		return s, nil
	case "right", "l", "n":
		return s, s.next()
	}

	var chose bool
	s.radio, chose = s.radio.Update(msg)
	if chose {
		q := s.ctrl.Current()
		s.ctrl.RecordAnswer(q.ID, q.Options[s.radio.Chosen].Value)
	}
	return s, nil
}

func (s *QuestionnaireScreen) handleCompletionKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "left":
		s.cardFocus = focusViewResults
	case "down", "j", "right":
		s.cardFocus = focusRestart
	case "v":
		s.viewResults()
	case "r":
		s.restart()
	case "enter", "space":
		if s.cardFocus == focusViewResults {
			s.viewResults()
		} else {
			s.restart()
		}
	}
	return s, nil
}

func (s *QuestionnaireScreen) handleResultsKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "r", "enter":
		s.restart()
		return s, nil
	}
	var cmd tea.Cmd
	s.results, cmd = s.results.Update(msg)
	return s, cmd
}

// next advances when the current question is answered. Leaving the last
// question completes the attempt and starts persistence and the insight
// request.
func (s *QuestionnaireScreen) next() tea.Cmd {
	if !s.ctrl.CanAdvance() {
		return nil
	}
	s.ctrl.Advance()
	if s.ctrl.Phase() != flow.PhaseCompleted {
		s.syncRadio()
		return nil
	}

	s.cardFocus = focusViewResults
	report := scoring.Build(s.deps.Bank, s.ctrl.Answers(), nil)
	var cmds []tea.Cmd
	if s.deps.Attempts != nil {
		cmds = append(cmds, s.persist(report))
	}
	if s.deps.Insight != nil {
		cmds = append(cmds, s.requestInsight(report))
	}
	return tea.Batch(cmds...)
}

func (s *QuestionnaireScreen) viewResults() {
	if !s.ctrl.ViewResults() {
		return
	}
	s.tabs = s.tabs.SetDisabled(tabResults, false).Select(tabResults)
	s.results.GotoTop()
}

func (s *QuestionnaireScreen) restart() {
	s.ctrl.Restart()
	s.attempt++
	s.startedAt = s.deps.Now()
	s.cardFocus = focusViewResults
	s.tabs = s.tabs.SetDisabled(tabResults, true).Select(tabTests)
	s.saved, s.saveErr = nil, nil
	s.insightPending, s.insight, s.insightErr = false, nil, nil
	s.syncRadio()
}

// syncRadio rebuilds the option list for the current question, restoring
// a previously recorded answer.
func (s *QuestionnaireScreen) syncRadio() {
	q := s.ctrl.Current()
	labels := make([]string, len(q.Options))
	chosen := -1
	answer, answered := s.ctrl.Answer(q.ID)
	for i, o := range q.Options {
		labels[i] = o.Label
		if answered && o.Value == answer {
			chosen = i
		}
	}
	s.radio = components.NewRadioGroup(labels, chosen)
}

func (s *QuestionnaireScreen) persist(report scoring.Report) tea.Cmd {
	repo := s.deps.Attempts
	rec := report.Record(s.deps.Bank.Locale, s.ctrl.Answers(), s.deps.Now().Sub(s.startedAt))
	attempt := s.attempt
	return func() tea.Msg {
		saved, err := repo.SaveAttempt(context.Background(), rec)
		return attemptSavedMsg{attempt: attempt, Record: saved, Err: err}
	}
}

func (s *QuestionnaireScreen) requestInsight(report scoring.Report) tea.Cmd {
	svc := s.deps.Insight
	in := insight.Input{
		Locale:     s.deps.Bank.Locale,
		Results:    report.Results,
		Comparison: report.Comparison,
	}
	attempt := s.attempt
	s.insightPending = true
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		ins, err := svc.Explain(context.Background(), in)
		return insightMsg{attempt: attempt, Insight: ins, Err: err}
	})
}
