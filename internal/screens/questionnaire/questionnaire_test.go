package questionnaire

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psytests/psytests/internal/flow"
	"github.com/psytests/psytests/internal/insight"
	"github.com/psytests/psytests/internal/llm"
	qbank "github.com/psytests/psytests/internal/questionnaire"
	"github.com/psytests/psytests/internal/scoring"
	"github.com/psytests/psytests/internal/store"
)

type fakeAttempts struct {
	mu    sync.Mutex
	saved []store.AttemptRecord
	err   error
}

func (f *fakeAttempts) SaveAttempt(_ context.Context, rec store.AttemptRecord) (*store.AttemptRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	rec.ID = "attempt-1"
	f.saved = append(f.saved, rec)
	return &rec, nil
}

func (f *fakeAttempts) ListAttempts(context.Context, store.QueryOpts) ([]store.AttemptRecord, error) {
	return f.saved, nil
}

func (f *fakeAttempts) GetAttempt(context.Context, string) (*store.AttemptRecord, error) {
	return nil, store.ErrNotFound
}

func (f *fakeAttempts) DeleteAll(context.Context) (int, error) { return 0, nil }
func (f *fakeAttempts) CountAttempts(context.Context) (int, error) {
	return len(f.saved), nil
}

func press(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

// send feeds keys in order and returns the command of the last one.
func send(s *QuestionnaireScreen, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = s.Update(press(k))
	}
	return cmd
}

// run executes cmd and delivers its messages, flattening batches. Follow-up
// commands (spinner ticks) are not run.
func run(s *QuestionnaireScreen, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			run(s, c)
		}
		return
	}
	s.Update(msg)
}

func newScreen(t *testing.T, deps Deps) *QuestionnaireScreen {
	t.Helper()
	if deps.Bank == nil {
		bank, err := qbank.Default("ru")
		require.NoError(t, err)
		deps.Bank = bank
	}
	if deps.Sampler == nil {
		deps.Sampler = scoring.NewSeededReferenceSampler(1, 2)
	}
	s, err := New(deps)
	require.NoError(t, err)
	s.Init()
	return s
}

// answerAll picks options by digit: "1" is the first option (value 5).
func answerAll(s *QuestionnaireScreen, digits ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, d := range digits {
		send(s, d)
		cmd = send(s, "right")
	}
	return cmd
}

func TestQuestionView(t *testing.T) {
	s := newScreen(t, Deps{})
	view := s.View(100, 40)

	assert.Contains(t, view, "Вопрос 1 из 5")
	assert.Contains(t, view, "Как часто вы чувствуете мотивацию")
	assert.Contains(t, view, "Всегда")
	assert.Contains(t, view, "Далее")
	assert.Contains(t, view, "0%")
}

func TestNextGatedOnAnswer(t *testing.T) {
	s := newScreen(t, Deps{})

	send(s, "right")
	assert.Equal(t, 0, s.ctrl.Index())

	send(s, "down", "enter", "right")
	assert.Equal(t, 1, s.ctrl.Index())
	got, _ := s.ctrl.Answer(1)
	assert.Equal(t, "4", got)
}

func TestBackRestoresSelection(t *testing.T) {
	s := newScreen(t, Deps{})
	send(s, "3", "right")
	assert.Equal(t, 1, s.ctrl.Index())

	send(s, "left")
	assert.Equal(t, 0, s.ctrl.Index())
	assert.Equal(t, 2, s.radio.Chosen)

	send(s, "left")
	assert.Equal(t, 0, s.ctrl.Index(), "back on the first question is a no-op")
}

func TestProgressShownAfterAnswers(t *testing.T) {
	s := newScreen(t, Deps{})
	send(s, "1", "right", "right", "1", "right")
	assert.Contains(t, s.View(100, 40), "40%")
	assert.Contains(t, s.View(100, 40), "Вопрос 3 из 5")
}

func TestFinishLabelOnLastQuestion(t *testing.T) {
	s := newScreen(t, Deps{})
	answerAll(s, "1", "1", "1", "1")
	assert.True(t, s.ctrl.IsLast())
	assert.Contains(t, s.View(100, 40), "Завершить")
}

func TestCompletionAndResults(t *testing.T) {
	s := newScreen(t, Deps{})
	// 5,3,4,2,5
	answerAll(s, "1", "3", "2", "4", "1")

	assert.Equal(t, flow.PhaseCompleted, s.Phase())
	view := s.View(100, 40)
	assert.Contains(t, view, "Тест завершён!")
	assert.Contains(t, view, "Вы ответили на все 5 вопросов")

	// Results tab stays locked until "View results".
	send(s, "tab")
	assert.Equal(t, tabTests, s.tabs.Active)

	send(s, "enter")
	assert.Equal(t, flow.PhaseViewingResults, s.Phase())
	assert.Equal(t, tabResults, s.tabs.Active)

	view = s.View(100, 200)
	for _, want := range []string{"Мотивация", "5/5", "3/5", "2/5", "76%", "68%", "91%", "Сравнительный анализ"} {
		assert.Contains(t, view, want)
	}

	// Tabs switch freely once results are unlocked.
	send(s, "tab")
	assert.Equal(t, tabTests, s.tabs.Active)
	assert.Contains(t, s.View(100, 40), "Тест завершён!")
	send(s, "tab")
	assert.Equal(t, tabResults, s.tabs.Active)
}

func TestRestartFromCompletionCard(t *testing.T) {
	s := newScreen(t, Deps{})
	answerAll(s, "1", "1", "1", "1", "1")

	send(s, "down", "enter")
	assert.Equal(t, flow.PhaseInProgress, s.Phase())
	assert.Equal(t, 0, s.ctrl.Index())
	assert.Empty(t, s.ctrl.Answers())
	assert.Equal(t, -1, s.radio.Chosen)
}

func TestRestartFromResults(t *testing.T) {
	s := newScreen(t, Deps{})
	answerAll(s, "1", "1", "1", "1", "1")
	send(s, "v")
	require.Equal(t, tabResults, s.tabs.Active)

	send(s, "r")
	assert.Equal(t, flow.PhaseInProgress, s.Phase())
	assert.Equal(t, tabTests, s.tabs.Active)
	assert.True(t, s.tabs.Disabled[tabResults])
}

func TestAttemptPersisted(t *testing.T) {
	repo := &fakeAttempts{}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s := newScreen(t, Deps{Attempts: repo, Now: clock})

	now = now.Add(42 * time.Second)
	cmd := answerAll(s, "1", "3", "2", "4", "1")
	require.NotNil(t, cmd)
	run(s, cmd)

	require.Len(t, repo.saved, 1)
	rec := repo.saved[0]
	assert.Equal(t, "ru", rec.BankLocale)
	assert.Equal(t, 42, rec.DurationSecs)
	assert.Equal(t, 91, rec.BetterThan)
	assert.Equal(t, "3", rec.Answers[2])
	require.NotNil(t, s.saved)
	assert.Equal(t, "attempt-1", s.saved.ID)
}

func TestPersistFailureShownOnCard(t *testing.T) {
	repo := &fakeAttempts{err: errors.New("disk full")}
	s := newScreen(t, Deps{Attempts: repo})
	run(s, answerAll(s, "1", "1", "1", "1", "1"))

	assert.Contains(t, s.View(100, 40), "disk full")
}

func TestInsightShownOnResults(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
		`{"headline":"Хороший баланс","summary":"Всё ровно.","suggestions":["Спите достаточно"]}`)})
	svc := insight.NewService(mock, insight.DefaultConfig())
	s := newScreen(t, Deps{Insight: svc})

	cmd := answerAll(s, "1", "1", "1", "1", "1")
	assert.True(t, s.insightPending)
	send(s, "v")
	assert.Contains(t, s.View(100, 200), "Готовим комментарий")

	run(s, cmd)
	assert.False(t, s.insightPending)
	view := s.View(100, 200)
	assert.Contains(t, view, "Хороший баланс")
	assert.Contains(t, view, "• Спите достаточно")
	assert.Equal(t, 1, mock.CallCount())
}

func TestStaleInsightDroppedAfterRestart(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	svc := insight.NewService(mock, insight.DefaultConfig())
	s := newScreen(t, Deps{Insight: svc})

	cmd := answerAll(s, "1", "1", "1", "1", "1")
	send(s, "r")
	run(s, cmd)

	assert.Nil(t, s.insightErr)
	assert.False(t, s.insightPending)
}

func TestReferenceResampledEachRender(t *testing.T) {
	s := newScreen(t, Deps{})
	answerAll(s, "1", "1", "1", "1", "1")
	send(s, "v")

	first := s.View(100, 200)
	second := s.View(100, 200)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.Contains(first, "Средний"))
}

func TestEnglishBank(t *testing.T) {
	bank, err := qbank.Default("en")
	require.NoError(t, err)
	s := newScreen(t, Deps{Bank: bank})

	assert.Contains(t, s.View(100, 40), "Question 1 of 5")
	assert.Equal(t, "Psychological test", s.Title())
}
