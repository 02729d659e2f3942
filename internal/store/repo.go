package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup by ID matches nothing.
var ErrNotFound = errors.New("not found")

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// CategoryScore is the persisted per-category outcome of an attempt.
type CategoryScore struct {
	CategoryID string `json:"category_id"`
	Label      string `json:"label"`
	Score      int    `json:"score"`
	MaxScore   int    `json:"max_score"`
}

// AttemptRecord is one completed pass through the questionnaire.
type AttemptRecord struct {
	ID           string
	Sequence     int64
	Timestamp    time.Time
	BankLocale   string
	Answers      map[int]string
	Categories   []CategoryScore
	Average      float64
	BetterThan   int
	DurationSecs int
}

// AttemptRepo persists completed attempts.
type AttemptRepo interface {
	// SaveAttempt stores rec. Missing ID and Timestamp are filled in and the
	// stored record is returned.
	SaveAttempt(ctx context.Context, rec AttemptRecord) (*AttemptRecord, error)

	// ListAttempts returns attempts newest first.
	ListAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error)

	// GetAttempt returns one attempt, or ErrNotFound.
	GetAttempt(ctx context.Context, id string) (*AttemptRecord, error)

	// DeleteAll removes every attempt and reports how many were deleted.
	DeleteAll(ctx context.Context) (int, error)

	// CountAttempts returns the number of stored attempts.
	CountAttempts(ctx context.Context) (int, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
