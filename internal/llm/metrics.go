package llm

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the LLM request collectors. They live in their own
// registry so tests and multiple instances don't collide on the global one.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	tokens   *prometheus.CounterVec
}

// NewMetrics creates the collectors in a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "psytests_llm_requests_total",
				Help: "LLM requests by provider model and outcome.",
			},
			[]string{"provider", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "psytests_llm_request_duration_seconds",
				Help:    "Latency of LLM requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		tokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "psytests_llm_tokens_total",
				Help: "Tokens consumed by LLM requests.",
			},
			[]string{"provider", "direction"},
		),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records one observation per Generate call. A nil Metrics
// yields a nil middleware, which Chain skips.
func (m *Metrics) Middleware() Middleware {
	if m == nil {
		return nil
	}
	return func(next Provider) Provider {
		return &meteredProvider{next: next, m: m}
	}
}

type meteredProvider struct {
	next Provider
	m    *Metrics
}

func (p *meteredProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	provider := p.next.ModelID()
	start := time.Now()

	resp, err := p.next.Generate(ctx, req)

	p.m.duration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	p.m.requests.WithLabelValues(provider, errorStatus(err)).Inc()
	if resp != nil {
		p.m.tokens.WithLabelValues(provider, "input").Add(float64(resp.Usage.InputTokens))
		p.m.tokens.WithLabelValues(provider, "output").Add(float64(resp.Usage.OutputTokens))
	}
	return resp, err
}

func (p *meteredProvider) ModelID() string { return p.next.ModelID() }
