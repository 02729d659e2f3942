package llm

import (
	"context"

	"golang.org/x/time/rate"
)

type rateLimitedProvider struct {
	next    Provider
	limiter *rate.Limiter
}

// WithRateLimit paces requests with a token bucket shared by every provider
// the middleware wraps. A non-positive rate disables pacing.
func WithRateLimit(cfg RateLimitConfig) Middleware {
	if cfg.PerSecond <= 0 {
		return nil
	}
	burst := max(cfg.Burst, 1)
	limiter := rate.NewLimiter(rate.Limit(cfg.PerSecond), burst)

	return func(next Provider) Provider {
		return &rateLimitedProvider{next: next, limiter: limiter}
	}
}

// Generate blocks until a token is available or ctx ends.
func (r *rateLimitedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &ErrRateLimit{Err: err}
	}
	return r.next.Generate(ctx, req)
}

func (r *rateLimitedProvider) ModelID() string { return r.next.ModelID() }
