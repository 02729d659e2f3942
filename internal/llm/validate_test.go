package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-person",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []string{"A", "B", "C"}},
				"tags": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []string{"name", "age"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"all fields", `{"name":"Alice","age":10,"grade":"A","tags":["x"]}`, true},
		{"optional omitted", `{"name":"Bob","age":8}`, true},
		{"missing required", `{"name":"Charlie"}`, false},
		{"wrong type", `{"name":"Dave","age":"ten"}`, false},
		{"negative", `{"name":"Dave","age":-1}`, false},
		{"bad enum", `{"name":"Eve","age":9,"grade":"D"}`, false},
		{"bad array item", `{"name":"Eve","age":9,"tags":[1]}`, false},
		{"malformed", `{not json}`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if tt.valid {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
			}
			if string(inv.Content) != tt.raw {
				t.Errorf("content = %q, want raw response kept", inv.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("nil schema should accept anything, got %v", err)
	}
}

func TestValidateResponse_BrokenSchema(t *testing.T) {
	s := &Schema{Name: "test-broken", Definition: map[string]any{"type": 12}}
	err := validateResponse(s, json.RawMessage(`{}`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse for uncompilable schema, got %v", err)
	}
}
