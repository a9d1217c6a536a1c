package evaluate

import (
	"testing"

	"github.com/abhisek/fluence/internal/question"
)

func q(typ question.Type, correct string) *question.Question {
	return &question.Question{Type: typ, Correct: correct}
}

func TestEvaluate_MCQ_ExactOnly(t *testing.T) {
	mcq := q(question.TypeMCQ, "Ghar")
	if !Evaluate("Ghar", mcq) {
		t.Error("exact option match should be correct")
	}
	// MCQ submissions are option strings; case differences mean a
	// different option, not a typo.
	if Evaluate("ghar", mcq) {
		t.Error("mcq match must be case-sensitive")
	}
}

func TestEvaluate_TrueFalse(t *testing.T) {
	tf := q(question.TypeTrueFalse, "True")
	if !Evaluate("True", tf) {
		t.Error("expected True to match")
	}
	if Evaluate("False", tf) {
		t.Error("expected False to not match")
	}
}

func TestEvaluate_FillInBlank(t *testing.T) {
	fib := q(question.TypeFillInBlank, "Namaste")
	tests := []struct {
		submission string
		want       bool
	}{
		{"Namaste", true},
		{"namaste ", true},
		{"  NAMASTE", true},
		{"namastey", false},
	}
	for _, tt := range tests {
		if got := Evaluate(tt.submission, fib); got != tt.want {
			t.Errorf("Evaluate(%q) = %v, want %v", tt.submission, got, tt.want)
		}
	}
}

func TestEvaluate_SpokenPunctuation(t *testing.T) {
	sp := q(question.TypeSpeaking, "I am fine.")
	if !Evaluate("I am fine", sp) {
		t.Error("punctuation should not fail a spoken answer")
	}
}

func TestEvaluate_SpokenNearMiss(t *testing.T) {
	sp := q(question.TypeVoice, "dhanyavaad")
	if !Evaluate("dhanyavad", sp) {
		t.Error("a one-letter transcription slip should be accepted")
	}
	if Evaluate("completely different", sp) {
		t.Error("an unrelated utterance should be rejected")
	}
}

func TestEvaluate_UnknownTypeFallsBackToExact(t *testing.T) {
	u := q(question.Type("puzzle"), "Answer")
	if !Evaluate("Answer", u) {
		t.Error("unknown type should use exact equality")
	}
	if Evaluate("answer", u) {
		t.Error("unknown type should not be case-insensitive")
	}
}
