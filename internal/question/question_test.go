package question

import (
	"testing"
	"time"

	"github.com/abhisek/fluence/internal/srs"
)

var testNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func TestNormalize_FillsDefaults(t *testing.T) {
	q := &Question{Prompt: "What does 'Ghar' mean?", Correct: "Home"}
	q.Normalize(4)

	if q.ID != "q4" {
		t.Errorf("ID = %q, want q4", q.ID)
	}
	if q.Type != TypeMCQ {
		t.Errorf("Type = %q, want mcq", q.Type)
	}
	if q.Topic != DefaultTopic {
		t.Errorf("Topic = %q, want %q", q.Topic, DefaultTopic)
	}
	if q.Difficulty != DifficultyMedium {
		t.Errorf("Difficulty = %q, want medium", q.Difficulty)
	}
	if q.Language != DefaultLanguage {
		t.Errorf("Language = %q, want %q", q.Language, DefaultLanguage)
	}
	if q.Hints == nil || q.Media == nil || q.AIFeedback == nil {
		t.Error("optional slices should be initialized empty, not nil")
	}
	if q.SRS.EaseFactor != srs.InitialEaseFactor {
		t.Errorf("SRS.EaseFactor = %f, want %f", q.SRS.EaseFactor, srs.InitialEaseFactor)
	}
}

func TestNormalize_PreservesExisting(t *testing.T) {
	q := &Question{
		ID:         "namaste",
		Type:       TypeVoice,
		Topic:      "greetings",
		Difficulty: DifficultyHard,
		SRS:        srs.Metadata{RepetitionCount: 3, EaseFactor: 2.1, Interval: 14},
	}
	q.Normalize(0)

	if q.ID != "namaste" || q.Type != TypeVoice || q.Topic != "greetings" {
		t.Error("Normalize overwrote authored fields")
	}
	if q.SRS.RepetitionCount != 3 || q.SRS.Interval != 14 {
		t.Error("Normalize reset existing SRS state")
	}
}

func TestRecordAttempt_RunningAverage(t *testing.T) {
	var p PerformanceMetrics
	p.RecordAttempt(true, 10, testNow)
	p.RecordAttempt(false, 20, testNow)
	p.RecordAttempt(true, 30, testNow)

	if p.TotalAttempts != 3 || p.CorrectAttempts != 2 {
		t.Errorf("attempts = %d/%d, want 2/3", p.CorrectAttempts, p.TotalAttempts)
	}
	if p.AverageResponseTime != 20 {
		t.Errorf("AverageResponseTime = %f, want 20", p.AverageResponseTime)
	}
}

func TestMergeSaved(t *testing.T) {
	fresh := []*Question{
		{ID: "namaste", Prompt: "What does 'Namaste' mean?", Correct: "Hello"},
		{ID: "ghar", Prompt: "What does 'Ghar' mean?", Correct: "Home"},
		{ID: "naya", Prompt: "What does 'Naya' mean?", Correct: "New"},
	}
	for i, q := range fresh {
		q.Normalize(i)
	}

	saved := []*Question{
		{
			ID:          "namaste",
			SRS:         srs.Metadata{RepetitionCount: 4, EaseFactor: 2.3, Interval: 14, NextReviewDate: testNow.Add(48 * time.Hour)},
			Performance: PerformanceMetrics{TotalAttempts: 5, CorrectAttempts: 4, AverageResponseTime: 8},
			AIFeedback:  []string{"Watch the greeting context."},
		},
		{ID: "retired", SRS: srs.Metadata{RepetitionCount: 9}},
	}

	MergeSaved(fresh, saved)

	if fresh[0].SRS.RepetitionCount != 4 || fresh[0].SRS.Interval != 14 {
		t.Errorf("saved SRS state not carried over: %+v", fresh[0].SRS)
	}
	if fresh[0].Performance.TotalAttempts != 5 {
		t.Errorf("saved performance not carried over: %+v", fresh[0].Performance)
	}
	if len(fresh[0].AIFeedback) != 1 {
		t.Errorf("saved feedback not carried over: %v", fresh[0].AIFeedback)
	}

	// Questions with no saved counterpart keep fresh defaults.
	if fresh[1].SRS.RepetitionCount != 0 || fresh[2].SRS.RepetitionCount != 0 {
		t.Error("fresh questions should keep initial SRS state")
	}
	if fresh[1].Prompt != "What does 'Ghar' mean?" {
		t.Error("merge should not touch authored content")
	}
}

func TestDueQuestions_Partition(t *testing.T) {
	fresh := &Question{ID: "a"}
	fresh.Normalize(0)
	past := &Question{ID: "b", SRS: srs.Metadata{EaseFactor: 2.5, NextReviewDate: testNow.Add(-time.Hour)}}
	future := &Question{ID: "c", SRS: srs.Metadata{EaseFactor: 2.5, NextReviewDate: testNow.Add(time.Hour)}}

	due := DueQuestions([]*Question{fresh, past, future}, testNow)

	if len(due) != 2 {
		t.Fatalf("len(due) = %d, want 2", len(due))
	}
	if due[0].ID != "a" || due[1].ID != "b" {
		t.Errorf("due order = [%s %s], want [a b]", due[0].ID, due[1].ID)
	}
}
