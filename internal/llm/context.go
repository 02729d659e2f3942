package llm

import "context"

type purposeKey struct{}

// PurposeInsight labels requests made for result commentary.
const PurposeInsight = "insight"

// WithPurpose tags ctx with what a request is for. The label ends up in
// stored events, metrics and spans.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose attached by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
