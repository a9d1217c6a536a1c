package game

import (
	"time"

	"github.com/abhisek/fluence/internal/question"
)

// Attempt is one answered question in the cross-session history.
type Attempt struct {
	Question      string              `json:"question"`
	UserAnswer    string              `json:"userAnswer"`
	CorrectAnswer string              `json:"correctAnswer"`
	IsCorrect     bool                `json:"isCorrect"`
	TimeTaken     float64             `json:"timeTaken"`
	Difficulty    question.Difficulty `json:"difficulty"`
	QuestionType  question.Type       `json:"questionType"`
	Topic         string              `json:"topic"`
	MasteryLevel  int                 `json:"masteryLevel"`
	AnsweredAt    time.Time           `json:"answeredAt,omitzero"`
}

// TypeStats is per-question-type accuracy.
type TypeStats struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Performance is the persisted cross-session aggregate. Topics move into
// StrongAreas on correct answers and WeakAreas on incorrect ones; the
// counts feed the insights ranking.
type Performance struct {
	TotalQuestions   int                                `json:"totalQuestions"`
	CorrectAnswers   int                                `json:"correctAnswers"`
	IncorrectAnswers int                                `json:"incorrectAnswers"`
	History          []Attempt                          `json:"questionHistory"`
	WeakAreas        map[string]int                     `json:"weakAreas"`
	StrongAreas      map[string]int                     `json:"strongAreas"`
	TypeStats        map[question.Type]TypeStats       `json:"questionTypeStats"`
	DifficultyStats  map[question.Difficulty]TypeStats `json:"difficultyStats"`
}

// NewPerformance returns an empty aggregate with initialized maps.
func NewPerformance() *Performance {
	return &Performance{
		WeakAreas:       make(map[string]int),
		StrongAreas:     make(map[string]int),
		TypeStats:       make(map[question.Type]TypeStats),
		DifficultyStats: make(map[question.Difficulty]TypeStats),
	}
}

// ensureMaps repairs nil maps after JSON rehydration of older records.
func (p *Performance) ensureMaps() {
	if p.WeakAreas == nil {
		p.WeakAreas = make(map[string]int)
	}
	if p.StrongAreas == nil {
		p.StrongAreas = make(map[string]int)
	}
	if p.TypeStats == nil {
		p.TypeStats = make(map[question.Type]TypeStats)
	}
	if p.DifficultyStats == nil {
		p.DifficultyStats = make(map[question.Difficulty]TypeStats)
	}
}

// Record folds one answered question into the aggregate.
func (p *Performance) Record(q *question.Question, answer string, correct bool, timeTaken float64) {
	p.ensureMaps()

	p.TotalQuestions++
	if correct {
		p.CorrectAnswers++
	} else {
		p.IncorrectAnswers++
	}

	p.History = append(p.History, Attempt{
		Question:      q.Prompt,
		UserAnswer:    answer,
		CorrectAnswer: q.Correct,
		IsCorrect:     correct,
		TimeTaken:     timeTaken,
		Difficulty:    q.Difficulty,
		QuestionType:  q.Type,
		Topic:         q.Topic,
		MasteryLevel:  q.Performance.MasteryLevel,
		AnsweredAt:    q.Performance.LastAttemptDate,
	})

	ts := p.TypeStats[q.Type]
	ts.Total++
	if correct {
		ts.Correct++
	}
	p.TypeStats[q.Type] = ts

	ds := p.DifficultyStats[q.Difficulty]
	ds.Total++
	if correct {
		ds.Correct++
	}
	p.DifficultyStats[q.Difficulty] = ds

	if correct {
		p.StrongAreas[q.Topic]++
	} else {
		p.WeakAreas[q.Topic]++
	}
}

// Accuracy returns the overall correct percentage (0-100).
func (p *Performance) Accuracy() float64 {
	if p.TotalQuestions == 0 {
		return 0
	}
	return float64(p.CorrectAnswers) / float64(p.TotalQuestions) * 100
}

// TopicOrder returns topics in first-seen history order. Insights use this
// as the stable tie-break when ranking areas by frequency.
func (p *Performance) TopicOrder() []string {
	var order []string
	seen := make(map[string]bool)
	for _, a := range p.History {
		if !seen[a.Topic] {
			seen[a.Topic] = true
			order = append(order, a.Topic)
		}
	}
	return order
}
