package evaluate

import (
	"math"
	"testing"
)

func TestSimilarity_Identity(t *testing.T) {
	for _, s := range []string{"a", "Namaste", "I am fine.", "mujhe paani chahiye"} {
		if got := Similarity(s, s); got != 1 {
			t.Errorf("Similarity(%q, %q) = %f, want 1", s, s, got)
		}
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"I am fine", "I am fine."},
		{"ghar", "ghaar"},
		{"hello", "world"},
		{"", "something"},
	}
	for _, p := range pairs {
		ab, ba := Similarity(p[0], p[1]), Similarity(p[1], p[0])
		if math.Abs(ab-ba) > 1e-12 {
			t.Errorf("Similarity(%q, %q) = %f but reversed = %f", p[0], p[1], ab, ba)
		}
	}
}

func TestSimilarity_EmptyAgainstNonEmpty(t *testing.T) {
	// Distance to the empty string is the full length, so similarity is 0.
	if got := Similarity("", "paani"); got != 0 {
		t.Errorf("Similarity(\"\", \"paani\") = %f, want 0", got)
	}
}

func TestSimilarity_BothEmpty(t *testing.T) {
	if got := Similarity("", ""); got != 1 {
		t.Errorf("Similarity(\"\", \"\") = %f, want 1", got)
	}
}

func TestSimilarity_NormalizationAbsorbsNoise(t *testing.T) {
	if got := Similarity("  I AM   FINE!. ", "i am fine"); got < 0.9 {
		t.Errorf("similarity after normalization = %f, want near 1", got)
	}
}

func TestSimilarity_Distance(t *testing.T) {
	// "kitten" -> "sitting": 3 edits over max length 7.
	want := 1 - 3.0/7.0
	if got := Similarity("kitten", "sitting"); math.Abs(got-want) > 1e-9 {
		t.Errorf("Similarity(kitten, sitting) = %f, want %f", got, want)
	}
}
