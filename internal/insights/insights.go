// Package insights turns the accumulated performance record into
// human-readable study advice and a structured analytics report.
package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/question"
	"github.com/abhisek/fluence/internal/srs"
)

// Accuracy bands for the headline insight.
const (
	excellentAccuracy = 80
	goodAccuracy      = 60
)

// TopicCount is a ranked topic with its occurrence count.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// rankTopics orders a frequency map descending by count. Ties keep the
// first-seen order of the topics, so rankings are stable run to run.
func rankTopics(counts map[string]int, order []string, topN int) []TopicCount {
	var ranked []TopicCount
	for _, topic := range order {
		if c, ok := counts[topic]; ok {
			ranked = append(ranked, TopicCount{Topic: topic, Count: c})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Lines produces the insight strings shown on the results screen.
// bank is the full question set (for due counts and mastery averages);
// maxStreak is the best streak of the finished run.
func Lines(perf *game.Performance, bank []*question.Question, maxStreak int, now time.Time) []string {
	var lines []string
	order := perf.TopicOrder()

	switch accuracy := perf.Accuracy(); {
	case perf.TotalQuestions == 0:
		lines = append(lines, "Answer a few questions to unlock insights.")
	case accuracy >= excellentAccuracy:
		lines = append(lines, "Excellent accuracy! You're mastering the material.")
	case accuracy >= goodAccuracy:
		lines = append(lines, "Good progress! Focus on your weak areas to improve further.")
	default:
		lines = append(lines, "Keep practicing! Review the topics you're struggling with.")
	}

	if weak := rankTopics(perf.WeakAreas, order, 3); len(weak) > 0 {
		lines = append(lines, "Focus on: "+joinTopics(weak))
	}
	if strong := rankTopics(perf.StrongAreas, order, 3); len(strong) > 0 {
		lines = append(lines, "You excel at: "+joinTopics(strong))
	}

	if maxStreak >= 5 {
		lines = append(lines, fmt.Sprintf("Amazing streak of %d! You're on fire!", maxStreak))
	}

	if len(bank) > 0 {
		if due := len(question.DueQuestions(bank, now)); due > 0 {
			lines = append(lines, fmt.Sprintf("You have %d questions due for review.", due))
		}
		lines = append(lines, fmt.Sprintf("Your average mastery level is %d%%.", averageMastery(bank)))
		for _, tm := range TopicMastery(bank) {
			lines = append(lines, fmt.Sprintf("%s: %d%% mastery", tm.Topic, tm.Count))
		}
	}

	return lines
}

func joinTopics(ranked []TopicCount) string {
	topics := make([]string, len(ranked))
	for i, tc := range ranked {
		topics[i] = tc.Topic
	}
	return strings.Join(topics, ", ")
}

// averageMastery is the mean SRS-derived mastery across the bank.
func averageMastery(bank []*question.Question) int {
	if len(bank) == 0 {
		return 0
	}
	total := 0
	for _, q := range bank {
		total += srs.MasteryLevel(q.SRS)
	}
	return int(math.Round(float64(total) / float64(len(bank))))
}

// TopicMastery averages mastery per topic, in first-appearance order.
func TopicMastery(bank []*question.Question) []TopicCount {
	sums := make(map[string]int)
	counts := make(map[string]int)
	var order []string
	for _, q := range bank {
		if _, seen := sums[q.Topic]; !seen {
			order = append(order, q.Topic)
		}
		sums[q.Topic] += srs.MasteryLevel(q.SRS)
		counts[q.Topic]++
	}

	result := make([]TopicCount, 0, len(order))
	for _, topic := range order {
		avg := int(math.Round(float64(sums[topic]) / float64(counts[topic])))
		result = append(result, TopicCount{Topic: topic, Count: avg})
	}
	return result
}
