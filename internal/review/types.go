package review

import "github.com/abhisek/fluence/internal/question"

// Result is AI-generated feedback on a single answer.
type Result struct {
	Feedback        string
	Hints           []string
	ConfidenceScore float64 // 0.0 - 1.0, the model's own confidence
}

// Input holds the context for reviewing one answer.
type Input struct {
	Question   *question.Question
	Submission string
	Correct    bool
	TimeTaken  float64 // seconds
}

// ReportInput holds the context for an end-of-session report.
type ReportInput struct {
	PlayerName     string
	TotalQuestions int
	CorrectAnswers int
	Accuracy       float64 // 0-100
	MaxStreak      int
	WeakTopics     []string
	StrongTopics   []string
}
