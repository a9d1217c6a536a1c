package srs

import (
	"math"
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func TestNewMetadata(t *testing.T) {
	m := NewMetadata()
	if m.RepetitionCount != 0 {
		t.Errorf("RepetitionCount = %d, want 0", m.RepetitionCount)
	}
	if m.EaseFactor != InitialEaseFactor {
		t.Errorf("EaseFactor = %f, want %f", m.EaseFactor, InitialEaseFactor)
	}
	if m.Interval != 1 {
		t.Errorf("Interval = %d, want 1", m.Interval)
	}
	if !m.IsDue(testNow) {
		t.Error("fresh metadata should be due immediately")
	}
}

func TestIsDue(t *testing.T) {
	tests := []struct {
		name string
		next time.Time
		want bool
	}{
		{"never scheduled", time.Time{}, true},
		{"in the past", testNow.Add(-time.Hour), true},
		{"exactly now", testNow, true},
		{"in the future", testNow.Add(time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Metadata{NextReviewDate: tt.next}
			if got := m.IsDue(testNow); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextReview_FirstSuccessfulReviews(t *testing.T) {
	m := NewMetadata()

	m = NextReview(QualityPerfect, m, testNow)
	if m.RepetitionCount != 1 || m.Interval != 1 {
		t.Fatalf("first review: count=%d interval=%d, want 1/1", m.RepetitionCount, m.Interval)
	}
	if m.EaseFactor != 2.6 {
		t.Errorf("first review: ease = %f, want 2.6", m.EaseFactor)
	}

	m = NextReview(QualityPerfect, m, testNow)
	if m.RepetitionCount != 2 || m.Interval != 6 {
		t.Fatalf("second review: count=%d interval=%d, want 2/6", m.RepetitionCount, m.Interval)
	}

	m = NextReview(QualityPerfect, m, testNow)
	if m.RepetitionCount != 3 {
		t.Fatalf("third review: count = %d, want 3", m.RepetitionCount)
	}
	// round(6 * 2.8) = 17
	if m.Interval != 17 {
		t.Errorf("third review: interval = %d, want 17", m.Interval)
	}
}

func TestNextReview_IntervalMonotonicUnderSuccess(t *testing.T) {
	m := NewMetadata()
	prev := 0
	for i := 0; i < 10; i++ {
		m = NextReview(QualityCorrectDifficult, m, testNow)
		if m.Interval < prev {
			t.Fatalf("review %d: interval %d dropped below previous %d", i+1, m.Interval, prev)
		}
		prev = m.Interval
	}
}

func TestNextReview_FailureResetsProgress(t *testing.T) {
	m := Metadata{RepetitionCount: 7, EaseFactor: 2.9, Interval: 120}

	for _, q := range []AnswerQuality{QualityBlackout, QualityWrong, QualityWrongEasy} {
		got := NextReview(q, m, testNow)
		if got.RepetitionCount != 0 {
			t.Errorf("quality %d: RepetitionCount = %d, want 0", q, got.RepetitionCount)
		}
		if got.Interval != 1 {
			t.Errorf("quality %d: Interval = %d, want 1", q, got.Interval)
		}
		if got.EaseFactor != 2.7 {
			t.Errorf("quality %d: EaseFactor = %f, want 2.7", q, got.EaseFactor)
		}
	}
}

func TestNextReview_EaseFloor(t *testing.T) {
	m := NewMetadata()
	for i := 0; i < 20; i++ {
		m = NextReview(QualityWrong, m, testNow)
		if m.EaseFactor < MinEaseFactor {
			t.Fatalf("failure %d: ease %f dropped below floor %f", i+1, m.EaseFactor, MinEaseFactor)
		}
	}
	if m.EaseFactor != MinEaseFactor {
		t.Errorf("ease after repeated failures = %f, want %f", m.EaseFactor, MinEaseFactor)
	}
}

func TestNextReview_EaseAdjustmentByQuality(t *testing.T) {
	tests := []struct {
		quality AnswerQuality
		want    float64
	}{
		{QualityPerfect, 2.6},           // +0.1
		{QualityCorrectHesitation, 2.5}, // +0.0
		{QualityCorrectDifficult, 2.36}, // -0.14
	}
	for _, tt := range tests {
		got := NextReview(tt.quality, NewMetadata(), testNow)
		if math.Abs(got.EaseFactor-tt.want) > 1e-9 {
			t.Errorf("quality %d: ease = %f, want %f", tt.quality, got.EaseFactor, tt.want)
		}
	}
}

func TestNextReview_SchedulesWholeDaysAhead(t *testing.T) {
	m := NextReview(QualityPerfect, NewMetadata(), testNow)
	if !m.LastReviewed.Equal(testNow) {
		t.Errorf("LastReviewed = %v, want %v", m.LastReviewed, testNow)
	}
	want := testNow.AddDate(0, 0, 1)
	if !m.NextReviewDate.Equal(want) {
		t.Errorf("NextReviewDate = %v, want %v", m.NextReviewDate, want)
	}
	if m.IsDue(testNow) {
		t.Error("freshly scheduled question should not be due")
	}
	if !m.IsDue(want) {
		t.Error("question should be due once the review date arrives")
	}
}

func TestNextReview_DoesNotMutateInput(t *testing.T) {
	m := Metadata{RepetitionCount: 2, EaseFactor: 2.5, Interval: 6}
	_ = NextReview(QualityWrong, m, testNow)
	if m.RepetitionCount != 2 || m.Interval != 6 || m.EaseFactor != 2.5 {
		t.Error("NextReview mutated its input")
	}
}
