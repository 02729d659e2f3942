package flow

import (
	"errors"
	"maps"

	"github.com/psytests/psytests/internal/questionnaire"
)

// ErrNoQuestions is returned when a controller is built over an empty sequence.
var ErrNoQuestions = errors.New("flow: no questions")

// Answers maps question ID to the selected option's value token.
type Answers map[int]string

// Controller tracks one attempt: the current question, the recorded
// answers and the lifecycle phase. It is not safe for concurrent use; the
// UI drives it from a single goroutine.
type Controller struct {
	questions []questionnaire.Question
	index     int
	answers   Answers
	phase     Phase
}

// New creates a controller positioned on the first question.
func New(questions []questionnaire.Question) (*Controller, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Controller{
		questions: questions,
		answers:   make(Answers),
		phase:     PhaseInProgress,
	}, nil
}

// RecordAnswer stores value for questionID, replacing any earlier answer.
// The value is not checked against the question's options.
func (c *Controller) RecordAnswer(questionID int, value string) {
	c.answers[questionID] = value
}

// Advance moves to the next question, or completes the attempt when on the
// last one. It does not check that the current question is answered; the
// caller gates on CanAdvance.
func (c *Controller) Advance() {
	if c.phase != PhaseInProgress {
		return
	}
	if c.index < len(c.questions)-1 {
		c.index++
		return
	}
	c.phase = PhaseCompleted
}

// Retreat moves to the previous question. No-op on the first question.
func (c *Controller) Retreat() {
	if c.phase != PhaseInProgress || c.index == 0 {
		return
	}
	c.index--
}

// ViewResults unlocks the results view. Only valid once completed.
func (c *Controller) ViewResults() bool {
	if !c.phase.Done() {
		return false
	}
	c.phase = PhaseViewingResults
	return true
}

// Restart discards all answers and returns to the first question.
func (c *Controller) Restart() {
	c.index = 0
	c.answers = make(Answers)
	c.phase = PhaseInProgress
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// Index returns the zero-based position of the current question.
func (c *Controller) Index() int { return c.index }

// Len returns the number of questions.
func (c *Controller) Len() int { return len(c.questions) }

// Questions returns the question sequence.
func (c *Controller) Questions() []questionnaire.Question { return c.questions }

// Current returns the question at the current index.
func (c *Controller) Current() questionnaire.Question { return c.questions[c.index] }

// IsLast reports whether the current question is the last one.
func (c *Controller) IsLast() bool { return c.index == len(c.questions)-1 }

// Answer returns the recorded token for a question.
func (c *Controller) Answer(questionID int) (string, bool) {
	v, ok := c.answers[questionID]
	return v, ok
}

// Answers returns a copy of the answer set.
func (c *Controller) Answers() Answers {
	return maps.Clone(c.answers)
}

// CanAdvance reports whether the current question has an answer.
func (c *Controller) CanAdvance() bool {
	if c.phase != PhaseInProgress {
		return false
	}
	v, ok := c.answers[c.Current().ID]
	return ok && v != ""
}

// CanRetreat reports whether there is a previous question to go back to.
func (c *Controller) CanRetreat() bool {
	return c.phase == PhaseInProgress && c.index > 0
}

// ResultsUnlocked reports whether the results view may be shown.
func (c *Controller) ResultsUnlocked() bool {
	return c.phase == PhaseViewingResults
}

// Progress is len(answers)/len(questions). Answers recorded for IDs
// outside the sequence still count, so it can exceed 1; views clamp.
func (c *Controller) Progress() float64 {
	return float64(len(c.answers)) / float64(len(c.questions))
}

// ProgressPercent is Progress as a whole percentage.
func (c *Controller) ProgressPercent() int {
	return int(c.Progress()*100 + 0.5)
}
