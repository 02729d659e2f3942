package scoring

import (
	"github.com/psytests/psytests/internal/flow"
	"github.com/psytests/psytests/internal/questionnaire"
)

// CategoryResult is the derived score for one category. It is never
// stored; callers recompute it from the answer set.
type CategoryResult struct {
	CategoryID string
	Label      string
	Score      int
	MaxScore   int
	Color      string
}

// Percent is Score/MaxScore as a percentage. A category with no scorable
// questions is 0%.
func (r CategoryResult) Percent() float64 {
	if r.MaxScore <= 0 {
		return 0
	}
	return float64(r.Score) / float64(r.MaxScore) * 100
}

// ComputeCategoryResults scores every category of the bank, in declaration
// order. A category's score is the sum of its questions' answer tokens;
// unanswered questions and non-numeric tokens contribute 0.
func ComputeCategoryResults(bank *questionnaire.Bank, answers flow.Answers) []CategoryResult {
	results := make([]CategoryResult, 0, len(bank.Categories))
	for _, c := range bank.Categories {
		r := CategoryResult{
			CategoryID: c.ID,
			Label:      c.Label,
			Color:      c.Color,
		}
		for _, q := range bank.QuestionsIn(c.ID) {
			r.MaxScore += q.MaxValue()
			if v, ok := answers[q.ID]; ok {
				r.Score += questionnaire.TokenValue(v)
			}
		}
		results = append(results, r)
	}
	return results
}

// Average is the unweighted mean of the per-category percentages.
func Average(results []CategoryResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Percent()
	}
	return sum / float64(len(results))
}
