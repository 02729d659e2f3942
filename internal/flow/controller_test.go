package flow

import (
	"errors"
	"testing"

	"github.com/psytests/psytests/internal/questionnaire"
)

func testQuestions(t *testing.T) []questionnaire.Question {
	t.Helper()
	b, err := questionnaire.Default("ru")
	if err != nil {
		t.Fatalf("default bank: %v", err)
	}
	return b.Questions
}

func newTestController(t *testing.T) *Controller {
	t.Helper()
	c, err := New(testQuestions(t))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c
}

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestInitialState(t *testing.T) {
	c := newTestController(t)
	if c.Phase() != PhaseInProgress {
		t.Errorf("phase = %v, want in_progress", c.Phase())
	}
	if c.Index() != 0 {
		t.Errorf("index = %d, want 0", c.Index())
	}
	if c.Progress() != 0 {
		t.Errorf("progress = %v, want 0", c.Progress())
	}
	if c.CanAdvance() {
		t.Error("expected CanAdvance false before answering")
	}
	if c.CanRetreat() {
		t.Error("expected CanRetreat false on first question")
	}
}

func TestRetreatAtZeroIsNoop(t *testing.T) {
	c := newTestController(t)
	c.Retreat()
	if c.Index() != 0 {
		t.Errorf("index = %d, want 0", c.Index())
	}
}

func TestAdvanceAndRetreat(t *testing.T) {
	c := newTestController(t)
	c.RecordAnswer(1, "4")
	if !c.CanAdvance() {
		t.Fatal("expected CanAdvance after answering")
	}
	c.Advance()
	if c.Index() != 1 {
		t.Fatalf("index = %d, want 1", c.Index())
	}
	if c.Current().ID != 2 {
		t.Errorf("current id = %d, want 2", c.Current().ID)
	}
	if c.CanAdvance() {
		t.Error("question 2 is unanswered, expected CanAdvance false")
	}
	c.Retreat()
	if c.Index() != 0 {
		t.Errorf("index = %d, want 0", c.Index())
	}
	if v, ok := c.Answer(1); !ok || v != "4" {
		t.Errorf("answer kept across navigation: got (%q, %v)", v, ok)
	}
}

func TestAdvanceFromLastCompletes(t *testing.T) {
	c := newTestController(t)
	for i := 0; i < c.Len()-1; i++ {
		c.Advance()
	}
	if !c.IsLast() {
		t.Fatalf("expected to be on last question, index %d", c.Index())
	}
	c.Advance()
	if c.Phase() != PhaseCompleted {
		t.Fatalf("phase = %v, want completed", c.Phase())
	}
	if c.Index() != c.Len()-1 {
		t.Errorf("index = %d, want %d (never out of range)", c.Index(), c.Len()-1)
	}

	// Further navigation is ignored once completed.
	c.Advance()
	c.Retreat()
	if c.Phase() != PhaseCompleted || c.Index() != c.Len()-1 {
		t.Errorf("state changed after completion: phase %v index %d", c.Phase(), c.Index())
	}
}

func TestViewResultsRequiresCompletion(t *testing.T) {
	c := newTestController(t)
	if c.ViewResults() {
		t.Fatal("ViewResults should fail while in progress")
	}
	if c.ResultsUnlocked() {
		t.Fatal("results must stay locked while in progress")
	}

	for i := 0; i < c.Len(); i++ {
		c.Advance()
	}
	if !c.ViewResults() {
		t.Fatal("ViewResults should succeed once completed")
	}
	if c.Phase() != PhaseViewingResults || !c.ResultsUnlocked() {
		t.Errorf("phase = %v, want viewing_results", c.Phase())
	}
}

func TestRestartFromEveryPhase(t *testing.T) {
	phases := []func(c *Controller){
		func(c *Controller) { c.RecordAnswer(1, "5"); c.Advance() },
		func(c *Controller) {
			for i := 0; i < c.Len(); i++ {
				c.RecordAnswer(i+1, "3")
				c.Advance()
			}
		},
		func(c *Controller) {
			for i := 0; i < c.Len(); i++ {
				c.RecordAnswer(i+1, "3")
				c.Advance()
			}
			c.ViewResults()
		},
	}
	for i, setup := range phases {
		c := newTestController(t)
		setup(c)
		c.Restart()

		if c.Phase() != PhaseInProgress {
			t.Errorf("case %d: phase = %v, want in_progress", i, c.Phase())
		}
		if c.Index() != 0 {
			t.Errorf("case %d: index = %d, want 0", i, c.Index())
		}
		if len(c.Answers()) != 0 {
			t.Errorf("case %d: answers = %v, want empty", i, c.Answers())
		}
	}
}

func TestProgressCountsAnswers(t *testing.T) {
	c := newTestController(t)
	c.RecordAnswer(1, "5")
	c.RecordAnswer(3, "2")
	if c.Progress() != 0.4 {
		t.Errorf("progress = %v, want 0.4", c.Progress())
	}
	if c.ProgressPercent() != 40 {
		t.Errorf("progress percent = %d, want 40", c.ProgressPercent())
	}

	// Overwriting does not grow the answer set.
	c.RecordAnswer(1, "1")
	if c.ProgressPercent() != 40 {
		t.Errorf("progress after overwrite = %d, want 40", c.ProgressPercent())
	}

	for id := 1; id <= 5; id++ {
		c.RecordAnswer(id, "3")
	}
	if c.ProgressPercent() != 100 {
		t.Errorf("progress = %d, want 100", c.ProgressPercent())
	}

	// Foreign IDs are part of the answer set too.
	c.RecordAnswer(99, "3")
	if c.Progress() != 1.2 {
		t.Errorf("progress with foreign answer = %v, want 1.2", c.Progress())
	}
}

func TestRecordAnswerAcceptsAnyToken(t *testing.T) {
	c := newTestController(t)
	c.RecordAnswer(1, "not-an-option")
	if v, _ := c.Answer(1); v != "not-an-option" {
		t.Errorf("answer = %q, want raw token", v)
	}
	if !c.CanAdvance() {
		t.Error("any non-empty token should satisfy the advance gate")
	}
}

func TestEmptyAnswerDoesNotSatisfyGate(t *testing.T) {
	c := newTestController(t)
	c.RecordAnswer(1, "")
	if c.CanAdvance() {
		t.Error("empty token should not enable advance")
	}
}

func TestAnswersReturnsCopy(t *testing.T) {
	c := newTestController(t)
	c.RecordAnswer(1, "5")
	a := c.Answers()
	a[2] = "1"
	if _, ok := c.Answer(2); ok {
		t.Error("mutating the returned map must not affect the controller")
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseViewingResults.String() != "viewing_results" {
		t.Errorf("got %q", PhaseViewingResults.String())
	}
	if PhaseInProgress.Done() {
		t.Error("in progress is not done")
	}
	if !PhaseCompleted.Done() {
		t.Error("completed is done")
	}
}
