package review

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/fluence/internal/llm"
	"github.com/abhisek/fluence/internal/question"
)

func validReviewJSON() json.RawMessage {
	return json.RawMessage(`{
		"feedback": "Close! 'Paani' means water, not milk. 'Doodh' is the word for milk.",
		"hints": ["Think of 'paani puri', the water-filled snack."],
		"confidence_score": 0.9
	}`)
}

func validReportJSON() json.RawMessage {
	return json.RawMessage(`{
		"summary": "Great session! You nailed the greetings topic.",
		"next_steps": ["Review the food topic tomorrow"]
	}`)
}

func testQuestion() *question.Question {
	q := &question.Question{
		Prompt:  "What does 'paani' mean?",
		Correct: "Water",
		Options: []string{"Water", "Milk", "Tea", "Juice"},
		Topic:   "food",
	}
	q.Normalize(0)
	return q
}

func testInput() Input {
	return Input{
		Question:   testQuestion(),
		Submission: "Milk",
		Correct:    false,
		TimeTaken:  8,
	}
}

func pollReview(svc *Service) (*Result, bool) {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if r, ok := svc.ConsumeReview(); ok {
			return r, true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil, false
}

func TestService_GeneratesReview(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validReviewJSON()})
	svc := NewService(mock, DefaultConfig())

	svc.RequestReview(t.Context(), testInput())

	result, ok := pollReview(svc)
	if !ok || result == nil {
		t.Fatal("expected review to be generated")
	}

	if result.Feedback == "" {
		t.Error("expected non-empty feedback")
	}
	if len(result.Hints) != 1 {
		t.Errorf("expected 1 hint, got %d", len(result.Hints))
	}
	if result.ConfidenceScore != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", result.ConfidenceScore)
	}
}

func TestService_ConsumeClearsReview(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validReviewJSON()})
	svc := NewService(mock, DefaultConfig())

	svc.RequestReview(t.Context(), testInput())

	if _, ok := pollReview(svc); !ok {
		t.Fatal("expected review")
	}
	if _, ok := svc.ConsumeReview(); ok {
		t.Error("expected second ConsumeReview to return false")
	}
}

func TestService_ErrorYieldsPlaceholder(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	svc := NewService(mock, DefaultConfig())

	svc.RequestReview(t.Context(), testInput())

	result, ok := pollReview(svc)
	if !ok || result == nil {
		t.Fatal("expected placeholder result on provider error")
	}
	if result.Feedback != UnavailableFeedback {
		t.Errorf("feedback = %q, want %q", result.Feedback, UnavailableFeedback)
	}
}

func TestService_DisabledReturnsPlaceholderImmediately(t *testing.T) {
	svc := NewDisabled()

	if svc.Enabled() {
		t.Fatal("disabled service reports Enabled")
	}

	svc.RequestReview(t.Context(), testInput())

	result, ok := svc.ConsumeReview()
	if !ok || result == nil {
		t.Fatal("expected immediate placeholder from disabled service")
	}
	if result.Feedback != DisabledFeedback {
		t.Errorf("feedback = %q, want %q", result.Feedback, DisabledFeedback)
	}
}

func TestService_ReviewSchemaAndPurpose(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validReviewJSON()})
	svc := NewService(mock, DefaultConfig())

	svc.RequestReview(t.Context(), testInput())

	if _, ok := pollReview(svc); !ok {
		t.Fatal("expected review")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}

	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "answer-review" {
		t.Error("expected schema name 'answer-review'")
	}
}

func TestService_GeneratesReport(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validReportJSON()})
	svc := NewService(mock, DefaultConfig())

	svc.RequestReport(t.Context(), ReportInput{
		PlayerName:     "Anaya",
		TotalQuestions: 10,
		CorrectAnswers: 8,
		Accuracy:       80,
		MaxStreak:      5,
		StrongTopics:   []string{"greetings"},
		WeakTopics:     []string{"food"},
	})

	var report string
	var ok bool
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if report, ok = svc.ConsumeReport(); ok {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if !ok {
		t.Fatal("expected report to be generated")
	}
	if report == "" {
		t.Error("expected non-empty report")
	}
	if want := "- Review the food topic tomorrow"; !strings.Contains(report, want) {
		t.Errorf("report %q missing next step %q", report, want)
	}
}
