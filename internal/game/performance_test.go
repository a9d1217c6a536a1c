package game

import (
	"encoding/json"
	"testing"

	"github.com/abhisek/fluence/internal/question"
)

func sampleQuestion(topic string, typ question.Type) *question.Question {
	q := &question.Question{Prompt: "p", Correct: "c", Topic: topic, Type: typ}
	q.Normalize(0)
	return q
}

func TestRecord_Totals(t *testing.T) {
	p := NewPerformance()
	p.Record(sampleQuestion("food", question.TypeMCQ), "c", true, 5)
	p.Record(sampleQuestion("food", question.TypeMCQ), "x", false, 12)
	p.Record(sampleQuestion("travel", question.TypeVoice), "c", true, 8)

	if p.TotalQuestions != 3 || p.CorrectAnswers != 2 || p.IncorrectAnswers != 1 {
		t.Errorf("totals = %d/%d/%d, want 3/2/1",
			p.TotalQuestions, p.CorrectAnswers, p.IncorrectAnswers)
	}
	if got := p.Accuracy(); got < 66.6 || got > 66.7 {
		t.Errorf("Accuracy() = %f, want ~66.67", got)
	}
}

func TestRecord_AreasAndTypeStats(t *testing.T) {
	p := NewPerformance()
	p.Record(sampleQuestion("food", question.TypeMCQ), "c", true, 5)
	p.Record(sampleQuestion("food", question.TypeMCQ), "x", false, 5)
	p.Record(sampleQuestion("food", question.TypeMCQ), "x", false, 5)

	if p.StrongAreas["food"] != 1 || p.WeakAreas["food"] != 2 {
		t.Errorf("areas = strong %d / weak %d, want 1/2", p.StrongAreas["food"], p.WeakAreas["food"])
	}
	ts := p.TypeStats[question.TypeMCQ]
	if ts.Correct != 1 || ts.Total != 3 {
		t.Errorf("mcq stats = %d/%d, want 1/3", ts.Correct, ts.Total)
	}
}

func TestTopicOrder_FirstSeen(t *testing.T) {
	p := NewPerformance()
	for _, topic := range []string{"food", "travel", "food", "greetings", "travel"} {
		p.Record(sampleQuestion(topic, question.TypeMCQ), "c", true, 5)
	}

	got := p.TopicOrder()
	want := []string{"food", "travel", "greetings"}
	if len(got) != len(want) {
		t.Fatalf("TopicOrder() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TopicOrder() = %v, want %v", got, want)
		}
	}
}

func TestPerformance_SurvivesRoundTrip(t *testing.T) {
	p := NewPerformance()
	p.Record(sampleQuestion("food", question.TypeMCQ), "c", true, 5)

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	var back Performance
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}

	// Rehydrated aggregates keep accepting records.
	back.Record(sampleQuestion("travel", question.TypeVoice), "x", false, 20)
	if back.TotalQuestions != 2 || back.WeakAreas["travel"] != 1 {
		t.Error("rehydrated aggregate did not record correctly")
	}
}

func TestAccuracy_Empty(t *testing.T) {
	if got := NewPerformance().Accuracy(); got != 0 {
		t.Errorf("Accuracy() on empty = %f, want 0", got)
	}
}
