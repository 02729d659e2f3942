package llm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/psytests/psytests/internal/llm"

type tracedProvider struct {
	next   Provider
	tracer trace.Tracer
}

// WithTracing opens a span per Generate call on the global tracer
// provider. Without an installed SDK the spans are no-ops.
func WithTracing() Middleware {
	return func(next Provider) Provider {
		return &tracedProvider{next: next, tracer: otel.Tracer(tracerName)}
	}
}

func (t *tracedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, span := t.tracer.Start(ctx, "llm.Generate", trace.WithAttributes(
		attribute.String("llm.model", t.next.ModelID()),
		attribute.String("llm.purpose", PurposeFrom(ctx)),
		attribute.Bool("llm.structured", req.Schema != nil),
		attribute.Int("llm.max_tokens", req.MaxTokens),
	))
	defer span.End()

	resp, err := t.next.Generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, errorStatus(err))
		return nil, err
	}

	span.SetAttributes(
		attribute.String("llm.response_model", resp.Model),
		attribute.Int("llm.input_tokens", resp.Usage.InputTokens),
		attribute.Int("llm.output_tokens", resp.Usage.OutputTokens),
		attribute.String("llm.stop_reason", resp.StopReason),
	)
	span.SetStatus(codes.Ok, "")
	return resp, nil
}

func (t *tracedProvider) ModelID() string { return t.next.ModelID() }
