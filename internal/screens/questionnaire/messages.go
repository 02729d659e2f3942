package questionnaire

import (
	"github.com/psytests/psytests/internal/insight"
	"github.com/psytests/psytests/internal/store"
)

// Async results carry the attempt number they were started for; anything
// arriving after a restart is dropped.

type attemptSavedMsg struct {
	attempt int
	Record  *store.AttemptRecord
	Err     error
}

type insightMsg struct {
	attempt int
	Insight *insight.Insight
	Err     error
}
