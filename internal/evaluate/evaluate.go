// Package evaluate judges submitted answers against a question's expected
// answer, with per-type matching rules.
package evaluate

import (
	"strings"

	"github.com/abhisek/fluence/internal/question"
)

// Evaluate reports whether the submission answers the question correctly.
//
// Matching rules by question type:
//   - mcq, true-false: exact string equality (the submission is an option)
//   - fill-in-blank: case-insensitive after trimming surrounding whitespace
//   - voice, speaking, listening: fuzzy match against the spoken transcript
//   - anything else: exact equality
func Evaluate(submission string, q *question.Question) bool {
	switch q.Type {
	case question.TypeMCQ, question.TypeTrueFalse:
		return submission == q.Correct
	case question.TypeFillInBlank:
		return strings.EqualFold(strings.TrimSpace(submission), strings.TrimSpace(q.Correct))
	case question.TypeVoice, question.TypeSpeaking, question.TypeListening:
		return Similarity(submission, q.Correct) >= DefaultThreshold
	default:
		return submission == q.Correct
	}
}
