package llm

import (
	"context"
	"fmt"

	"github.com/psytests/psytests/internal/store"
)

// Options carries the optional collaborators of NewProvider.
type Options struct {
	Events  store.EventRepo
	Metrics *Metrics
}

// NewProvider builds the configured backend wrapped in the standard chain:
//
//	caller → rate limit → retry → tracing → metrics → event log → backend
//
// The mock provider is returned bare.
func NewProvider(ctx context.Context, cfg Config, opts Options) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderMock:
		return NewMockProvider(), nil
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return Chain(base,
		WithRateLimit(cfg.RateLimit),
		WithRetry(cfg.Retry),
		WithTracing(),
		opts.Metrics.Middleware(),
		WithEventLog(opts.Events, cfg.Provider),
	), nil
}
