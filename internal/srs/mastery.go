package srs

import "math"

// Mastery score weighting. Repetitions measure consistency and contribute
// at most 60 points; ease measures how comfortably the learner recalls the
// answer and contributes at most 40. Reaching 100 requires both a sustained
// repetition streak and an ease at or above the initial 2.5.
const (
	pointsPerRepetition = 20
	maxRepetitionPoints = 60
	maxEasePoints       = 40
)

// MasteryLevel derives a 0-100 mastery score from scheduling state.
func MasteryLevel(m Metadata) int {
	repetitionScore := float64(m.RepetitionCount * pointsPerRepetition)
	if repetitionScore > maxRepetitionPoints {
		repetitionScore = maxRepetitionPoints
	}

	easeScore := (m.EaseFactor - MinEaseFactor) / (InitialEaseFactor - MinEaseFactor) * maxEasePoints
	if easeScore < 0 {
		easeScore = 0
	}
	if easeScore > maxEasePoints {
		easeScore = maxEasePoints
	}

	return int(math.Round(repetitionScore + easeScore))
}
