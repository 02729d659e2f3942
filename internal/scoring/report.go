package scoring

import (
	"maps"
	"time"

	"github.com/psytests/psytests/internal/flow"
	"github.com/psytests/psytests/internal/questionnaire"
	"github.com/psytests/psytests/internal/store"
)

// Report bundles everything the results view shows for one render pass.
type Report struct {
	Results    []CategoryResult
	Average    float64
	Comparison Comparison
	// Reference holds one decorative reference percentage per result.
	Reference []float64
}

// Build computes a report from the current answers. A nil sampler leaves
// Reference empty.
func Build(bank *questionnaire.Bank, answers flow.Answers, sampler *ReferenceSampler) Report {
	results := ComputeCategoryResults(bank, answers)
	avg := Average(results)
	r := Report{
		Results:    results,
		Average:    avg,
		Comparison: ComputeComparison(avg),
	}
	if sampler != nil {
		r.Reference = sampler.Sample(len(results))
	}
	return r
}

// Record converts the report into a storable attempt. ID, sequence and
// timestamp are assigned by the store.
func (r Report) Record(locale string, answers flow.Answers, duration time.Duration) store.AttemptRecord {
	cats := make([]store.CategoryScore, len(r.Results))
	for i, res := range r.Results {
		cats[i] = store.CategoryScore{
			CategoryID: res.CategoryID,
			Label:      res.Label,
			Score:      res.Score,
			MaxScore:   res.MaxScore,
		}
	}
	return store.AttemptRecord{
		BankLocale:   locale,
		Answers:      maps.Clone(map[int]string(answers)),
		Categories:   cats,
		Average:      r.Average,
		BetterThan:   r.Comparison.BetterThan,
		DurationSecs: int(duration.Round(time.Second) / time.Second),
	}
}
