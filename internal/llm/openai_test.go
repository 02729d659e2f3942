package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider(BackendConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var got map[string]any
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"name":"Bob","age":8}`, "stop"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "sys",
		Messages:  []Message{{Role: RoleUser, Content: "hello"}},
		Schema:    testSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q, want end", resp.StopReason)
	}

	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("sent %d messages, want system + user", len(msgs))
	}
	if rf, _ := got["response_format"].(map[string]any); rf["type"] != "json_schema" {
		t.Errorf("response_format = %v, want json_schema", got["response_format"])
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body := chatCompletion("", "stop")
		body["choices"] = []any{}
		json.NewEncoder(w).Encode(body)
	})
	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusInternalServerError} {
		p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"type": "x", "message": "failure"},
			})
		})
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})

		var rl *ErrRateLimit
		var unavail *ErrProviderUnavailable
		switch status {
		case http.StatusTooManyRequests:
			if !errors.As(err, &rl) {
				t.Errorf("429: expected ErrRateLimit, got %T (%v)", err, err)
			}
		default:
			if !errors.As(err, &unavail) {
				t.Errorf("%d: expected ErrProviderUnavailable, got %T (%v)", status, err, err)
			}
		}
	}
}

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("model passes through", func(t *testing.T) {
		p, err := NewOpenRouterProvider(BackendConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "anthropic/claude-3-haiku" {
			t.Errorf("model = %q", p.ModelID())
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(BackendConfig{Model: "x"}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("friendly names are OpenAI only", func(t *testing.T) {
		p, err := NewOpenRouterProvider(BackendConfig{APIKey: "k", Model: "gpt-mini"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "gpt-mini" {
			t.Errorf("model = %q, want unmapped gpt-mini", p.ModelID())
		}
	})
}

func TestOpenAIModelMapping(t *testing.T) {
	p, err := NewOpenAIProvider(BackendConfig{APIKey: "k", Model: "gpt-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4.1-mini" {
		t.Errorf("model = %q, want gpt-4.1-mini", p.ModelID())
	}
}
