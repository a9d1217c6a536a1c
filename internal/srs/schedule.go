package srs

import (
	"math"
	"time"
)

// SM-2 constants.
const (
	// MinEaseFactor is the floor below which the ease factor never drops.
	MinEaseFactor = 1.3
	// InitialEaseFactor is the ease assigned to a never-reviewed question.
	InitialEaseFactor = 2.5

	easeBonus   = 0.1
	easePenalty = 0.2
)

// Metadata holds the spaced repetition scheduling state for one question.
// A zero NextReviewDate means the question has never been scheduled and is
// due immediately.
type Metadata struct {
	RepetitionCount int       `json:"repetitionCount"`
	EaseFactor      float64   `json:"easeFactor"`
	Interval        int       `json:"interval"`
	LastReviewed    time.Time `json:"lastReviewed,omitzero"`
	NextReviewDate  time.Time `json:"nextReviewDate,omitzero"`
}

// NewMetadata returns the scheduling state for a question that has never
// been reviewed.
func NewMetadata() Metadata {
	return Metadata{
		RepetitionCount: 0,
		EaseFactor:      InitialEaseFactor,
		Interval:        1,
	}
}

// IsDue reports whether the question should be presented for review.
// Comparison is against the raw timestamp: "now + N days" preserves the
// time of day, so a question becomes due at the same wall-clock time it
// was last answered rather than at a day boundary.
func (m Metadata) IsDue(now time.Time) bool {
	if m.NextReviewDate.IsZero() {
		return true
	}
	return !m.NextReviewDate.After(now)
}

// NextReview applies the SM-2 update for a review of the given quality and
// returns the replacement scheduling state. The input is never mutated.
//
// Ease moves by 0.1 - (5-q)*(0.08 + (5-q)*0.02) on success and down by 0.2
// on failure, clamped to MinEaseFactor. Failure resets the repetition
// streak and the interval to one day regardless of prior progress; success
// walks the 1, 6, round(prev*ease) ladder.
func NextReview(quality AnswerQuality, current Metadata, now time.Time) Metadata {
	next := current

	if quality.Successful() {
		penalty := float64(QualityPerfect - quality)
		next.EaseFactor = current.EaseFactor + (easeBonus - penalty*(0.08+penalty*0.02))
	} else {
		next.EaseFactor = current.EaseFactor - easePenalty
	}
	if next.EaseFactor < MinEaseFactor {
		next.EaseFactor = MinEaseFactor
	}

	if !quality.Successful() {
		next.Interval = 1
		next.RepetitionCount = 0
	} else {
		next.RepetitionCount = current.RepetitionCount + 1
		switch next.RepetitionCount {
		case 1:
			next.Interval = 1
		case 2:
			next.Interval = 6
		default:
			prev := current.Interval
			if prev < 1 {
				prev = 1
			}
			next.Interval = int(math.Round(float64(prev) * next.EaseFactor))
		}
	}

	next.LastReviewed = now
	next.NextReviewDate = now.AddDate(0, 0, next.Interval)
	return next
}
