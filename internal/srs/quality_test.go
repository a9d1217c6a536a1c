package srs

import "testing"

func TestComputeQuality_WrongFast(t *testing.T) {
	got := ComputeQuality(false, 12)
	if got != QualityWrong {
		t.Errorf("ComputeQuality(false, 12) = %d, want %d", got, QualityWrong)
	}
}

func TestComputeQuality_WrongSlow(t *testing.T) {
	got := ComputeQuality(false, 31)
	if got != QualityBlackout {
		t.Errorf("ComputeQuality(false, 31) = %d, want %d", got, QualityBlackout)
	}
}

func TestComputeQuality_WrongAtThreshold(t *testing.T) {
	// Exactly 30s is still a plain wrong answer, not a blackout.
	got := ComputeQuality(false, 30)
	if got != QualityWrong {
		t.Errorf("ComputeQuality(false, 30) = %d, want %d", got, QualityWrong)
	}
}

func TestComputeQuality_CorrectBands(t *testing.T) {
	tests := []struct {
		secs float64
		want AnswerQuality
	}{
		{0, QualityPerfect},
		{3, QualityPerfect},
		{3.5, QualityCorrectHesitation},
		{10, QualityCorrectHesitation},
		{10.5, QualityCorrectDifficult},
		{59, QualityCorrectDifficult},
	}
	for _, tt := range tests {
		got := ComputeQuality(true, tt.secs)
		if got != tt.want {
			t.Errorf("ComputeQuality(true, %.1f) = %d, want %d", tt.secs, got, tt.want)
		}
	}
}

func TestSuccessful_Threshold(t *testing.T) {
	for q := QualityBlackout; q <= QualityPerfect; q++ {
		want := q >= QualityCorrectDifficult
		if q.Successful() != want {
			t.Errorf("quality %d: Successful() = %v, want %v", q, q.Successful(), want)
		}
	}
}
