package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-lite", "gemini-2.5-flash-lite"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{"type": "string", "description": "short"},
			"tone":     map[string]any{"type": "string", "enum": []string{"calm", "upbeat"}},
			"suggestions": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"headline", "suggestions"},
	}

	s := geminiSchema(def)
	if s.Type != genai.TypeObject {
		t.Fatalf("type = %s, want OBJECT", s.Type)
	}
	if len(s.Properties) != 3 {
		t.Fatalf("properties = %d, want 3", len(s.Properties))
	}
	if s.Properties["headline"].Description != "short" {
		t.Errorf("description lost: %+v", s.Properties["headline"])
	}
	if len(s.Properties["tone"].Enum) != 2 {
		t.Errorf("enum = %v, want 2 values from []string", s.Properties["tone"].Enum)
	}
	if s.Properties["suggestions"].Items.Type != genai.TypeString {
		t.Errorf("items type = %s, want STRING", s.Properties["suggestions"].Items.Type)
	}
	if len(s.Required) != 2 {
		t.Errorf("required = %v", s.Required)
	}
}

func TestGeminiContentsRoles(t *testing.T) {
	got := geminiContents([]Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
	})
	if len(got) != 2 {
		t.Fatalf("got %d contents, want 2", len(got))
	}
	if got[0].Role != string(genai.RoleUser) {
		t.Errorf("first role = %q, want %q", got[0].Role, genai.RoleUser)
	}
	if got[1].Role != string(genai.RoleModel) {
		t.Errorf("second role = %q, want %q", got[1].Role, genai.RoleModel)
	}
	if got[1].Parts[0].Text != "hello" {
		t.Errorf("second text = %q, want hello", got[1].Parts[0].Text)
	}
}
