package insights

import (
	"fmt"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/question"
)

// Overview is the headline block of a report.
type Overview struct {
	TotalQuestions int    `json:"totalQuestions"`
	Accuracy       string `json:"accuracy"`
	BestStreak     int    `json:"bestStreak"`
	CurrentScore   int    `json:"currentScore"`
}

// Report is the structured analytics summary.
type Report struct {
	Overview            Overview                               `json:"overview"`
	Strengths           []TopicCount                           `json:"strengths"`
	Improvements        []TopicCount                           `json:"improvements"`
	DifficultyBreakdown map[question.Difficulty]game.TypeStats `json:"difficultyBreakdown"`
	RecentPerformance   []game.Attempt                         `json:"recentPerformance"`
}

// Top-N and history-window sizes for reports.
const (
	topAreas      = 5
	recentHistory = 10
)

// BuildReport assembles a Report from the aggregate plus the finished
// run's score and best streak.
func BuildReport(perf *game.Performance, score, bestStreak int) *Report {
	order := perf.TopicOrder()

	recent := perf.History
	if len(recent) > recentHistory {
		recent = recent[len(recent)-recentHistory:]
	}

	return &Report{
		Overview: Overview{
			TotalQuestions: perf.TotalQuestions,
			Accuracy:       fmt.Sprintf("%.1f%%", perf.Accuracy()),
			BestStreak:     bestStreak,
			CurrentScore:   score,
		},
		Strengths:           rankTopics(perf.StrongAreas, order, topAreas),
		Improvements:        rankTopics(perf.WeakAreas, order, topAreas),
		DifficultyBreakdown: perf.DifficultyStats,
		RecentPerformance:   recent,
	}
}
