package insights

import (
	"strings"
	"testing"
	"time"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/question"
	"github.com/abhisek/fluence/internal/srs"
)

var testNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func recordN(p *game.Performance, topic string, correct bool, n int) {
	for i := 0; i < n; i++ {
		q := &question.Question{Prompt: "p", Correct: "c", Topic: topic}
		q.Normalize(0)
		answer := "x"
		if correct {
			answer = "c"
		}
		p.Record(q, answer, correct, 5)
	}
}

func TestRankTopics_FrequencyDescending(t *testing.T) {
	counts := map[string]int{"food": 2, "travel": 5, "greetings": 3}
	order := []string{"food", "travel", "greetings"}

	ranked := rankTopics(counts, order, 5)

	want := []string{"travel", "greetings", "food"}
	for i, tc := range ranked {
		if tc.Topic != want[i] {
			t.Fatalf("rank %d = %q, want %q", i, tc.Topic, want[i])
		}
	}
}

func TestRankTopics_TiesKeepFirstSeenOrder(t *testing.T) {
	counts := map[string]int{"b-topic": 2, "a-topic": 2, "c-topic": 2}
	order := []string{"b-topic", "a-topic", "c-topic"}

	ranked := rankTopics(counts, order, 5)

	for i, topic := range order {
		if ranked[i].Topic != topic {
			t.Fatalf("tie order broken: got %v, want %v", ranked, order)
		}
	}
}

func TestRankTopics_Truncates(t *testing.T) {
	counts := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4}
	ranked := rankTopics(counts, []string{"a", "b", "c", "d"}, 2)
	if len(ranked) != 2 || ranked[0].Topic != "d" || ranked[1].Topic != "c" {
		t.Errorf("ranked = %v, want top-2 [d c]", ranked)
	}
}

func TestLines_AccuracyBands(t *testing.T) {
	tests := []struct {
		name           string
		correct, wrong int
		wantSubstring  string
	}{
		{"excellent", 9, 1, "Excellent accuracy"},
		{"good", 7, 3, "Good progress"},
		{"low", 2, 8, "Keep practicing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := game.NewPerformance()
			recordN(p, "food", true, tt.correct)
			recordN(p, "food", false, tt.wrong)

			lines := Lines(p, nil, 0, testNow)
			if len(lines) == 0 || !strings.Contains(lines[0], tt.wantSubstring) {
				t.Errorf("headline = %q, want to contain %q", lines, tt.wantSubstring)
			}
		})
	}
}

func TestLines_WeakAndStrongAreas(t *testing.T) {
	p := game.NewPerformance()
	recordN(p, "numbers", false, 3)
	recordN(p, "greetings", true, 4)

	joined := strings.Join(Lines(p, nil, 0, testNow), "\n")
	if !strings.Contains(joined, "Focus on: numbers") {
		t.Errorf("missing weak-area line in %q", joined)
	}
	if !strings.Contains(joined, "You excel at: greetings") {
		t.Errorf("missing strong-area line in %q", joined)
	}
}

func TestLines_StreakCallout(t *testing.T) {
	p := game.NewPerformance()
	recordN(p, "food", true, 6)

	joined := strings.Join(Lines(p, nil, 6, testNow), "\n")
	if !strings.Contains(joined, "streak of 6") {
		t.Errorf("missing streak line in %q", joined)
	}

	joined = strings.Join(Lines(p, nil, 4, testNow), "\n")
	if strings.Contains(joined, "streak") {
		t.Error("streak line should need a run of at least 5")
	}
}

func TestLines_DueAndMastery(t *testing.T) {
	bank := []*question.Question{
		{Topic: "food", SRS: srs.Metadata{EaseFactor: 2.5, RepetitionCount: 3}},
		{Topic: "travel", SRS: srs.Metadata{EaseFactor: 2.5, NextReviewDate: testNow.Add(time.Hour)}},
	}

	p := game.NewPerformance()
	recordN(p, "food", true, 1)

	joined := strings.Join(Lines(p, bank, 0, testNow), "\n")
	if !strings.Contains(joined, "1 questions due for review") {
		t.Errorf("missing due line in %q", joined)
	}
	if !strings.Contains(joined, "average mastery level") {
		t.Errorf("missing average mastery line in %q", joined)
	}
	if !strings.Contains(joined, "food: 100% mastery") {
		t.Errorf("missing topic mastery line in %q", joined)
	}
}

func TestBuildReport(t *testing.T) {
	p := game.NewPerformance()
	recordN(p, "food", true, 8)
	recordN(p, "numbers", false, 4)

	r := BuildReport(p, 8, 5)

	if r.Overview.TotalQuestions != 12 || r.Overview.CurrentScore != 8 || r.Overview.BestStreak != 5 {
		t.Errorf("overview = %+v", r.Overview)
	}
	if r.Overview.Accuracy != "66.7%" {
		t.Errorf("accuracy = %q, want 66.7%%", r.Overview.Accuracy)
	}
	if len(r.Strengths) != 1 || r.Strengths[0].Topic != "food" {
		t.Errorf("strengths = %v", r.Strengths)
	}
	if len(r.Improvements) != 1 || r.Improvements[0].Topic != "numbers" {
		t.Errorf("improvements = %v", r.Improvements)
	}
	if len(r.RecentPerformance) != 10 {
		t.Errorf("recent = %d entries, want 10", len(r.RecentPerformance))
	}
}
