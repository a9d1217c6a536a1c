package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func reviewSchema() *Schema {
	return &Schema{
		Name:        "answer-review",
		Description: "Feedback on a single quiz answer",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"feedback":        map[string]any{"type": "string"},
				"confidenceScore": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
				"mastery":         map[string]any{"type": "string", "enum": []any{"learning", "reviewing", "mastered"}},
			},
			"required": []any{"feedback", "confidenceScore"},
		},
	}
}

func TestValidateResponse_ValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"feedback":"Shabash! Paani means water.","confidenceScore":0.9,"mastery":"reviewing"}`)
	err := validateResponse(reviewSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"feedback":"Keep at it!","confidenceScore":0.4}`)
	err := validateResponse(reviewSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"feedback":"Almost there"}`)
	err := validateResponse(reviewSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"feedback":"Almost there","confidenceScore":"high"}`)
	err := validateResponse(reviewSchema(), raw)
	if err == nil {
		t.Fatal("expected error for wrong type")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"feedback":"Almost there","confidenceScore":0.5,"mastery":"guessing"}`)
	err := validateResponse(reviewSchema(), raw)
	if err == nil {
		t.Fatal("expected error for invalid enum value")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := validateResponse(reviewSchema(), raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_EmptyResponse(t *testing.T) {
	raw := json.RawMessage(``)
	err := validateResponse(reviewSchema(), raw)
	if err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	err := validateResponse(nil, raw)
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name:        "session-report",
		Description: "End-of-run report",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"headline": map[string]any{"type": "string"},
					},
					"required": []any{"headline"},
				},
				"focusTopics": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"summary", "focusTopics"},
		},
	}

	valid := json.RawMessage(`{"summary":{"headline":"Strong run"},"focusTopics":["food","greetings"]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"summary":{"headline":"Strong run"},"focusTopics":[1,2]}`)
	if err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
}
