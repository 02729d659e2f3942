package insight

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psytests/psytests/internal/flow"
	"github.com/psytests/psytests/internal/llm"
	"github.com/psytests/psytests/internal/questionnaire"
	"github.com/psytests/psytests/internal/scoring"
)

func validInsightJSON() json.RawMessage {
	return json.RawMessage(`{
		"headline": "Сильная мотивация, есть над чем поработать",
		"summary": "Мотивация и эмоциональность на высоком уровне. Уверенность ниже остальных категорий.",
		"suggestions": ["Отмечайте небольшие успехи каждый день"]
	}`)
}

func testInput(t *testing.T, locale string) Input {
	t.Helper()
	bank, err := questionnaire.Default(locale)
	require.NoError(t, err)
	r := scoring.Build(bank, flow.Answers{1: "5", 2: "3", 3: "4", 4: "2", 5: "5"}, nil)
	return Input{Locale: locale, Results: r.Results, Comparison: r.Comparison}
}

func TestExplain(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validInsightJSON()})
	svc := NewService(mock, DefaultConfig())

	ins, err := svc.Explain(context.Background(), testInput(t, "ru"))
	require.NoError(t, err)
	assert.Contains(t, ins.Headline, "мотивация")
	assert.Len(t, ins.Suggestions, 1)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls()[0]
	assert.Equal(t, Schema, req.Schema)
	assert.Equal(t, systemPrompt, req.System)
	msg := req.Messages[0].Content
	assert.Contains(t, msg, "Мотивация: 5 / 5 (100%)")
	assert.Contains(t, msg, "Уверенность: 2 / 5 (40%)")
	assert.Contains(t, msg, "Average: 76%")
	assert.Contains(t, msg, "Reference average of other participants: 68%")
	assert.Contains(t, msg, "in Russian")
}

func TestExplainEnglishPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validInsightJSON()})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Explain(context.Background(), testInput(t, "en_US.UTF-8"))
	require.NoError(t, err)
	assert.Contains(t, mock.Calls()[0].Messages[0].Content, "in English")
}

func TestExplainCachesSuccess(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validInsightJSON()})
	svc := NewService(mock, DefaultConfig())
	in := testInput(t, "ru")

	first, err := svc.Explain(context.Background(), in)
	require.NoError(t, err)
	second, err := svc.Explain(context.Background(), in)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, mock.CallCount())
}

func TestExplainDoesNotCacheFailure(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
		llm.MockResponse{Content: validInsightJSON()},
	)
	svc := NewService(mock, DefaultConfig())
	in := testInput(t, "ru")

	_, err := svc.Explain(context.Background(), in)
	var unavail *llm.ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)

	ins, err := svc.Explain(context.Background(), in)
	require.NoError(t, err)
	assert.NotEmpty(t, ins.Summary)
	assert.Equal(t, 2, mock.CallCount())
}

func TestExplainCollapsesConcurrentCalls(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validInsightJSON(), Delay: 50 * time.Millisecond})
	svc := NewService(mock, DefaultConfig())
	in := testInput(t, "ru")

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Explain(context.Background(), in)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, mock.CallCount())
}

func TestExplainRejectsOffSchemaOutput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"headline":"x"}`)})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Explain(context.Background(), testInput(t, "ru"))
	var inv *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestExplainTimeout(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validInsightJSON(), Delay: time.Second})
	cfg := DefaultConfig()
	cfg.Timeout = 10 * time.Millisecond
	svc := NewService(mock, cfg)

	_, err := svc.Explain(context.Background(), testInput(t, "ru"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCacheKeyIgnoresLabels(t *testing.T) {
	ru := testInput(t, "ru")
	relabeled := ru
	relabeled.Results = append([]scoring.CategoryResult(nil), ru.Results...)
	relabeled.Results[0].Label = "Other"

	assert.Equal(t, cacheKey(ru), cacheKey(relabeled))
	assert.NotEqual(t, cacheKey(ru), cacheKey(testInput(t, "en")))
	assert.True(t, strings.HasPrefix(cacheKey(ru), "Russian|motivation=5/5"))
}
