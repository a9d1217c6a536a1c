package question

import (
	"fmt"
	"time"

	"github.com/abhisek/fluence/internal/srs"
)

// Type identifies how a question is presented and answered.
type Type string

const (
	TypeMCQ         Type = "mcq"
	TypeFillInBlank Type = "fill-in-blank"
	TypeTrueFalse   Type = "true-false"
	TypeVoice       Type = "voice"
	TypeImageBased  Type = "image-based"
	TypeListening   Type = "listening"
	TypeSpeaking    Type = "speaking"
)

// Difficulty is the authored difficulty label.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Defaults filled in by Normalize for absent optional fields.
const (
	DefaultTopic    = "general"
	DefaultLanguage = "en-US"
)

// MediaContent is an audio or image attachment on a question.
type MediaContent struct {
	Type          string `json:"type"` // "audio" or "image"
	URL           string `json:"url"`
	Transcription string `json:"transcription,omitempty"`
	AltText       string `json:"altText,omitempty"`
}

// PerformanceMetrics tracks per-question attempt history.
type PerformanceMetrics struct {
	TotalAttempts       int       `json:"totalAttempts"`
	CorrectAttempts     int       `json:"correctAttempts"`
	AverageResponseTime float64   `json:"averageResponseTime"` // seconds
	LastAttemptDate     time.Time `json:"lastAttemptDate,omitzero"`
	MasteryLevel        int       `json:"masteryLevel"` // 0-100
}

// RecordAttempt folds one attempt into the metrics, maintaining the
// running average response time.
func (p *PerformanceMetrics) RecordAttempt(correct bool, responseTimeSecs float64, at time.Time) {
	p.AverageResponseTime = (p.AverageResponseTime*float64(p.TotalAttempts) + responseTimeSecs) / float64(p.TotalAttempts+1)
	p.TotalAttempts++
	if correct {
		p.CorrectAttempts++
	}
	p.LastAttemptDate = at
}

// Question is a single prompt in the bank. SRS and Performance are the only
// fields mutated after load; both are replaced wholesale after each answer.
type Question struct {
	ID          string     `json:"id"`
	Prompt      string     `json:"question"`
	Correct     string     `json:"correct"`
	Options     []string   `json:"options,omitempty"`
	Explanation string     `json:"explanation,omitempty"`
	Topic       string     `json:"topic,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	Type        Type       `json:"questionType,omitempty"`
	Language    string     `json:"language,omitempty"`

	Hints []string       `json:"hints"`
	Media []MediaContent `json:"mediaContent"`

	SRS         srs.Metadata       `json:"srsData"`
	Performance PerformanceMetrics `json:"performanceData"`

	AIFeedback      []string `json:"aiGeneratedFeedback"`
	CommonMistakes  []string `json:"commonMistakes"`
	RelatedConcepts []string `json:"relatedConcepts"`
}

// Normalize fills defaults for fields the bank author may omit. index is
// the question's position in the source document, used to synthesize an ID.
// Safe to call on already-normalized questions.
func (q *Question) Normalize(index int) {
	if q.ID == "" {
		q.ID = fmt.Sprintf("q%d", index)
	}
	if q.Type == "" {
		q.Type = TypeMCQ
	}
	if q.Topic == "" {
		q.Topic = DefaultTopic
	}
	if q.Difficulty == "" {
		q.Difficulty = DifficultyMedium
	}
	if q.Language == "" {
		q.Language = DefaultLanguage
	}
	if q.Hints == nil {
		q.Hints = []string{}
	}
	if q.Media == nil {
		q.Media = []MediaContent{}
	}
	if q.AIFeedback == nil {
		q.AIFeedback = []string{}
	}
	if q.CommonMistakes == nil {
		q.CommonMistakes = []string{}
	}
	if q.RelatedConcepts == nil {
		q.RelatedConcepts = []string{}
	}
	if q.SRS.EaseFactor == 0 {
		q.SRS = srs.NewMetadata()
	}
}

// MergeSaved copies the mutable progress fields (schedule, attempt
// metrics, accumulated feedback) from a previously saved bank onto a
// freshly loaded one, matched by question ID. Questions new to the bank
// keep their defaults; saved questions no longer in the bank are dropped.
func MergeSaved(fresh, saved []*Question) {
	byID := make(map[string]*Question, len(saved))
	for _, q := range saved {
		byID[q.ID] = q
	}
	for _, q := range fresh {
		prev, ok := byID[q.ID]
		if !ok {
			continue
		}
		q.SRS = prev.SRS
		q.Performance = prev.Performance
		if len(prev.AIFeedback) > 0 {
			q.AIFeedback = prev.AIFeedback
		}
	}
}

// DueQuestions returns the questions due for review at now, preserving
// the input order. Never-scheduled questions are always due.
func DueQuestions(questions []*Question, now time.Time) []*Question {
	var due []*Question
	for _, q := range questions {
		if q.SRS.IsDue(now) {
			due = append(due, q)
		}
	}
	return due
}
