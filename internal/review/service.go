package review

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abhisek/fluence/internal/llm"
)

// Service generates answer feedback asynchronously. A disabled service
// (no provider configured) returns canned placeholder text immediately.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu            sync.Mutex
	pendingReview *Result
	reviewReady   bool
	pendingReport string
	reportReady   bool
}

// NewService creates a feedback service backed by an LLM provider.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// NewDisabled creates a service that answers every request with the
// disabled-feedback placeholder.
func NewDisabled() *Service {
	return &Service{}
}

// Enabled reports whether a live provider is configured.
func (s *Service) Enabled() bool {
	return s.provider != nil
}

// RequestReview starts async feedback generation for one answer. Only one
// review is in-flight at a time — new requests replace pending ones.
// Generation failures surface as a placeholder result, never an error:
// feedback is decoration, the game moves on without it.
func (s *Service) RequestReview(ctx context.Context, input Input) {
	if s.provider == nil {
		s.mu.Lock()
		s.pendingReview = &Result{Feedback: DisabledFeedback}
		s.reviewReady = true
		s.mu.Unlock()
		return
	}

	go func() {
		result, err := s.generateReview(ctx, input)
		if err != nil {
			result = &Result{Feedback: UnavailableFeedback}
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.pendingReview = result
		s.reviewReady = true
	}()
}

// ConsumeReview returns the pending review if one is ready.
// Returns (nil, false) if nothing is ready yet. After consumption, the
// pending slot is cleared.
func (s *Service) ConsumeReview() (*Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.reviewReady {
		return nil, false
	}
	result := s.pendingReview
	s.pendingReview = nil
	s.reviewReady = false
	return result, result != nil
}

// RequestReport starts async end-of-session report generation.
func (s *Service) RequestReport(ctx context.Context, input ReportInput) {
	if s.provider == nil {
		s.mu.Lock()
		s.pendingReport = DisabledFeedback
		s.reportReady = true
		s.mu.Unlock()
		return
	}

	go func() {
		report, err := s.generateReport(ctx, input)
		if err != nil {
			report = UnavailableFeedback
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.pendingReport = report
		s.reportReady = true
	}()
}

// ConsumeReport returns the pending session report if one is ready.
func (s *Service) ConsumeReport() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.reportReady {
		return "", false
	}
	report := s.pendingReport
	s.pendingReport = ""
	s.reportReady = false
	return report, report != ""
}

type reviewOutput struct {
	Feedback        string   `json:"feedback"`
	Hints           []string `json:"hints"`
	ConfidenceScore float64  `json:"confidence_score"`
}

func (s *Service) generateReview(ctx context.Context, input Input) (*Result, error) {
	ctx = llm.WithPurpose(ctx, "answer-review")

	req := llm.Request{
		System: reviewSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildReviewUserMessage(input)},
		},
		Schema:      AnswerReviewSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("answer review: %w", err)
	}

	var out reviewOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse review response: %w", err)
	}

	return &Result{
		Feedback:        out.Feedback,
		Hints:           out.Hints,
		ConfidenceScore: out.ConfidenceScore,
	}, nil
}

type reportOutput struct {
	Summary   string   `json:"summary"`
	NextSteps []string `json:"next_steps"`
}

func (s *Service) generateReport(ctx context.Context, input ReportInput) (string, error) {
	ctx = llm.WithPurpose(ctx, "session-report")

	req := llm.Request{
		System: reportSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildReportUserMessage(input)},
		},
		Schema:      SessionReportSchema,
		MaxTokens:   s.cfg.ReportMaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("session report: %w", err)
	}

	var out reportOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse report response: %w", err)
	}

	text := out.Summary
	for _, step := range out.NextSteps {
		text += "\n- " + step
	}
	return text, nil
}
