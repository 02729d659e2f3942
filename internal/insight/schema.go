package insight

import "github.com/psytests/psytests/internal/llm"

// Schema is the structured output requested from the model.
var Schema = &llm.Schema{
	Name:        "result-insight",
	Description: "Short, supportive commentary on a self-assessment questionnaire result",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"description": "One-line takeaway, at most 10 words",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "2-4 sentences interpreting the category scores together",
			},
			"suggestions": map[string]any{
				"type":        "array",
				"description": "Concrete, low-effort suggestions for the weakest areas",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"maxItems":    3,
			},
		},
		"required":             []any{"headline", "summary", "suggestions"},
		"additionalProperties": false,
	},
}
