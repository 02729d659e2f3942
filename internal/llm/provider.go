// Package llm talks to hosted language models for optional result
// commentary. Every backend implements Provider; cross-cutting behavior
// (pacing, retries, tracing, metrics, event logging) is layered on with
// Middleware.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a single response for a request.
type Provider interface {
	// Generate sends req to the model. When req.Schema is set the returned
	// Content is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier the provider is configured with.
	ModelID() string
}

// Middleware decorates a Provider.
type Middleware func(Provider) Provider

// Chain wraps p so that the first middleware is the outermost layer.
func Chain(p Provider, mws ...Middleware) Provider {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			p = mws[i](p)
		}
	}
	return p
}

// Request describes what to send to the model.
type Request struct {
	System   string
	Messages []Message

	// Schema requests structured JSON output. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature in 0..1. Zero leaves the provider default.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema the response must satisfy.
type Schema struct {
	// Name is kebab-case; it doubles as the OpenAI schema name and the
	// validator cache key.
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish validates content against the request schema and assembles the
// response. Shared by every real backend.
func finish(req Request, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if stop == "max_tokens" && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}
