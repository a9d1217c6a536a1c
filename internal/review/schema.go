package review

import "github.com/abhisek/fluence/internal/llm"

// AnswerReviewSchema defines the JSON schema for single-answer feedback.
var AnswerReviewSchema = &llm.Schema{
	Name:        "answer-review",
	Description: "Feedback on a learner's answer to a vocabulary question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedback": map[string]any{
				"type":        "string",
				"description": "2-3 sentence feedback on the answer, addressing the specific mistake if wrong",
			},
			"hints": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "1-3 short memory aids or usage tips for this word",
			},
			"confidence_score": map[string]any{
				"type":        "number",
				"description": "Model confidence in this feedback, 0.0 to 1.0",
			},
		},
		"required":             []any{"feedback", "hints", "confidence_score"},
		"additionalProperties": false,
	},
}

// SessionReportSchema defines the JSON schema for end-of-session reports.
var SessionReportSchema = &llm.Schema{
	Name:        "session-report",
	Description: "Encouraging summary of a completed practice session",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "3-5 sentence summary of the session, naming specific topics",
			},
			"next_steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "1-3 concrete suggestions for the next session (5-10 words each)",
			},
		},
		"required":             []any{"summary", "next_steps"},
		"additionalProperties": false,
	},
}
