package srs

import "testing"

func TestMasteryLevel_Fresh(t *testing.T) {
	if got := MasteryLevel(NewMetadata()); got != 40 {
		// Zero repetitions but initial ease contributes the full 40 ease points.
		t.Errorf("MasteryLevel(fresh) = %d, want 40", got)
	}
}

func TestMasteryLevel_Values(t *testing.T) {
	tests := []struct {
		name string
		reps int
		ease float64
		want int
	}{
		{"floor ease, no reps", 0, MinEaseFactor, 0},
		{"floor ease, one rep", 1, MinEaseFactor, 20},
		{"floor ease, many reps capped at 60", 10, MinEaseFactor, 60},
		{"initial ease, three reps", 3, InitialEaseFactor, 100},
		{"midpoint ease", 0, 1.9, 20},
		{"ease above initial capped at 40", 0, 3.4, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Metadata{RepetitionCount: tt.reps, EaseFactor: tt.ease}
			if got := MasteryLevel(m); got != tt.want {
				t.Errorf("MasteryLevel(reps=%d ease=%.2f) = %d, want %d", tt.reps, tt.ease, got, tt.want)
			}
		})
	}
}

func TestMasteryLevel_Bounds(t *testing.T) {
	for reps := 0; reps <= 12; reps++ {
		for ease := MinEaseFactor; ease <= 4.0; ease += 0.1 {
			got := MasteryLevel(Metadata{RepetitionCount: reps, EaseFactor: ease})
			if got < 0 || got > 100 {
				t.Fatalf("MasteryLevel(reps=%d ease=%.2f) = %d, out of [0,100]", reps, ease, got)
			}
		}
	}
}
