package game

import (
	"time"

	"github.com/abhisek/fluence/internal/evaluate"
	"github.com/abhisek/fluence/internal/question"
	"github.com/abhisek/fluence/internal/srs"
)

// Outcome describes the result of one submitted (or timed-out) answer.
type Outcome struct {
	Correct  bool
	Quality  srs.AnswerQuality
	TimeUp   bool
	GameOver bool // lives exhausted by this answer
}

// Start begins a run: session questions are drawn from the bank, all
// counters reset, and the first question's options are laid out.
func (s *State) Start(bank []*question.Question, sessionID string, now time.Time) {
	s.Phase = PhasePlaying
	s.SessionID = sessionID
	s.Questions = Assemble(bank, now, s.rng)
	s.Index = 0
	s.Score = 0
	s.Streak = 0
	s.MaxStreak = 0
	s.Lives = StartingLives
	s.Answered = 0
	s.TimeLeft = QuestionTimeSecs
	s.PowerUps = freshPowerUps()
	s.ShowingResult = false
	s.LastSubmission = ""
	s.layoutOptions()
}

// Submit evaluates an answer for the current question, updates scoring,
// lives, the SRS schedule, and the performance aggregate. The state stays
// on the question (ShowingResult) until Advance is called.
func (s *State) Submit(answer string, now time.Time) Outcome {
	q := s.Current()
	if q == nil || s.ShowingResult || s.Phase != PhasePlaying {
		return Outcome{}
	}

	correct := evaluate.Evaluate(answer, q)
	return s.applyAnswer(q, answer, correct, false, now)
}

// TimeUp records the countdown reaching zero: scored as an incorrect
// answer that took the full allowance.
func (s *State) TimeUp(now time.Time) Outcome {
	q := s.Current()
	if q == nil || s.ShowingResult || s.Phase != PhasePlaying {
		return Outcome{}
	}

	out := s.applyAnswer(q, "", false, true, now)
	out.TimeUp = true
	return out
}

func (s *State) applyAnswer(q *question.Question, answer string, correct, timeUp bool, now time.Time) Outcome {
	timeTaken := float64(QuestionTimeSecs - s.TimeLeft)
	if timeUp {
		timeTaken = QuestionTimeSecs
	}

	s.ShowingResult = true
	s.LastCorrect = correct
	s.LastSubmission = answer
	s.Answered++

	if correct {
		s.Score++
		s.Streak++
		if s.Streak > s.MaxStreak {
			s.MaxStreak = s.Streak
		}
	} else {
		s.Streak = 0
		s.Lives--
	}

	// Reschedule the question and fold the attempt into its metrics.
	quality := srs.ComputeQuality(correct, timeTaken)
	q.SRS = srs.NextReview(quality, q.SRS, now)
	q.Performance.RecordAttempt(correct, timeTaken, now)
	q.Performance.MasteryLevel = srs.MasteryLevel(q.SRS)

	s.Performance.Record(q, answer, correct, timeTaken)

	out := Outcome{Correct: correct, Quality: quality}
	if !correct && s.Lives <= 0 {
		out.GameOver = true
	}
	return out
}

// Advance moves past the feedback window to the next question, or to
// results when lives or questions are exhausted.
func (s *State) Advance() {
	if s.Phase != PhasePlaying {
		return
	}
	s.ShowingResult = false
	s.LastSubmission = ""

	if s.Lives <= 0 {
		s.finish()
		return
	}

	s.Index++
	if s.Index >= len(s.Questions) {
		s.finish()
		return
	}

	s.TimeLeft = QuestionTimeSecs
	s.layoutOptions()
}

// Tick decrements the question clock by one second. Returns true when the
// clock reaches zero. No-op during the feedback window.
func (s *State) Tick() bool {
	if s.Phase != PhasePlaying || s.ShowingResult {
		return false
	}
	if s.TimeLeft > 0 {
		s.TimeLeft--
	}
	return s.TimeLeft == 0
}

// UsePowerUp consumes one charge and applies the effect. With no charges
// remaining nothing changes, including the count.
func (s *State) UsePowerUp(p PowerUp) bool {
	if s.Phase != PhasePlaying || s.ShowingResult || s.PowerUps[p] <= 0 {
		return false
	}
	s.PowerUps[p]--

	switch p {
	case PowerUpSkip:
		s.Advance()
	case PowerUpExtraTime:
		s.TimeLeft = min(s.TimeLeft+ExtraTimeSecs, QuestionTimeSecs)
	case PowerUpFiftyFifty:
		s.applyFiftyFifty()
	}
	return true
}

// applyFiftyFifty hides the first two incorrect options still displayed.
// The correct option always survives.
func (s *State) applyFiftyFifty() {
	q := s.Current()
	if q == nil || len(s.Options) == 0 {
		return
	}

	removed := 0
	kept := s.Options[:0]
	for _, opt := range s.Options {
		if opt != q.Correct && removed < FiftyFiftyRemovals {
			removed++
			continue
		}
		kept = append(kept, opt)
	}
	s.Options = kept
}

// finish enters the results phase and rolls the run's bests into the
// persisted records.
func (s *State) finish() {
	s.Phase = PhaseResults
	if s.Score > s.HighestScore {
		s.HighestScore = s.Score
	}
	if s.MaxStreak > s.HighestStreak {
		s.HighestStreak = s.MaxStreak
	}
}

// EndRun force-finishes the session (quit from the playing screen).
func (s *State) EndRun() {
	if s.Phase == PhasePlaying {
		s.finish()
	}
}

// Reset returns to the menu, keeping the performance aggregate and bests.
func (s *State) Reset() {
	s.Phase = PhaseMenu
	s.Questions = nil
	s.Options = nil
	s.Index = 0
	s.Score = 0
	s.Streak = 0
	s.MaxStreak = 0
	s.Lives = StartingLives
	s.Answered = 0
	s.TimeLeft = QuestionTimeSecs
	s.PowerUps = freshPowerUps()
	s.ShowingResult = false
}

// layoutOptions shuffles the current question's options for display.
// Called only on question changes.
func (s *State) layoutOptions() {
	q := s.Current()
	if q == nil || len(q.Options) == 0 {
		s.Options = nil
		return
	}
	s.Options = make([]string, len(q.Options))
	copy(s.Options, q.Options)
	s.rng.Shuffle(len(s.Options), func(i, j int) {
		s.Options[i], s.Options[j] = s.Options[j], s.Options[i]
	})
}
