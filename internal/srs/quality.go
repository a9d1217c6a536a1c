package srs

// AnswerQuality grades a single recall on the 0-5 SuperMemo scale.
// Values at or above QualityCorrectDifficult count as a successful review.
type AnswerQuality int

const (
	// QualityBlackout is a wrong answer after a long struggle.
	QualityBlackout AnswerQuality = 0
	// QualityWrong is a wrong answer given reasonably quickly.
	QualityWrong AnswerQuality = 1
	// QualityWrongEasy is a wrong answer where the correct one felt obvious in hindsight.
	// Never produced by ComputeQuality; kept so stored values round-trip.
	QualityWrongEasy AnswerQuality = 2
	// QualityCorrectDifficult is a correct answer that took significant effort.
	QualityCorrectDifficult AnswerQuality = 3
	// QualityCorrectHesitation is a correct answer after some hesitation.
	QualityCorrectHesitation AnswerQuality = 4
	// QualityPerfect is an immediate correct answer.
	QualityPerfect AnswerQuality = 5
)

// Successful reports whether the quality counts as a successful review
// for scheduling purposes.
func (q AnswerQuality) Successful() bool {
	return q >= QualityCorrectDifficult
}

// Response-time thresholds in seconds for quality classification.
const (
	blackoutThresholdSecs   = 30
	perfectThresholdSecs    = 3
	hesitationThresholdSecs = 10
)

// ComputeQuality classifies an answer from correctness and response time.
// Response time is capped upstream by the question timer, but any
// non-negative value classifies cleanly.
func ComputeQuality(correct bool, responseTimeSecs float64) AnswerQuality {
	if !correct {
		if responseTimeSecs > blackoutThresholdSecs {
			return QualityBlackout
		}
		return QualityWrong
	}
	switch {
	case responseTimeSecs <= perfectThresholdSecs:
		return QualityPerfect
	case responseTimeSecs <= hesitationThresholdSecs:
		return QualityCorrectHesitation
	default:
		return QualityCorrectDifficult
	}
}
