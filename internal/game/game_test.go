package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/fluence/internal/question"
)

var testNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

// makeBank builds n normalized mcq questions with correct answer "right".
func makeBank(n int) []*question.Question {
	bank := make([]*question.Question, n)
	for i := range bank {
		bank[i] = &question.Question{
			ID:      fmt.Sprintf("q%d", i),
			Prompt:  fmt.Sprintf("prompt %d", i),
			Correct: "right",
			Options: []string{"right", "wrong a", "wrong b", "wrong c"},
			Topic:   "greetings",
		}
		bank[i].Normalize(i)
	}
	return bank
}

func startedState(t *testing.T, n int) *State {
	t.Helper()
	s := NewState(nil)
	s.SeedRand(1)
	s.PlayerName = "tester"
	s.Start(makeBank(n), "session-1", testNow)
	if s.Phase != PhasePlaying {
		t.Fatal("Start() did not enter playing phase")
	}
	return s
}

func TestStart_ResetsCounters(t *testing.T) {
	s := startedState(t, 5)

	if s.Lives != StartingLives || s.Score != 0 || s.Streak != 0 || s.Index != 0 {
		t.Errorf("unexpected initial counters: lives=%d score=%d streak=%d index=%d",
			s.Lives, s.Score, s.Streak, s.Index)
	}
	if s.TimeLeft != QuestionTimeSecs {
		t.Errorf("TimeLeft = %d, want %d", s.TimeLeft, QuestionTimeSecs)
	}
	for _, p := range []PowerUp{PowerUpSkip, PowerUpExtraTime, PowerUpFiftyFifty} {
		if s.Remaining(p) != StartingCharges {
			t.Errorf("power-up %s = %d, want %d", p, s.Remaining(p), StartingCharges)
		}
	}
}

func TestSubmit_CorrectScoresAndStreaks(t *testing.T) {
	s := startedState(t, 3)

	out := s.Submit("right", testNow)
	if !out.Correct {
		t.Fatal("expected correct outcome")
	}
	if s.Score != 1 || s.Streak != 1 || s.MaxStreak != 1 {
		t.Errorf("score=%d streak=%d maxStreak=%d, want 1/1/1", s.Score, s.Streak, s.MaxStreak)
	}
	if s.Lives != StartingLives {
		t.Errorf("correct answer should not cost a life, lives = %d", s.Lives)
	}
	if !s.ShowingResult {
		t.Error("expected feedback window after submit")
	}
}

func TestSubmit_IncorrectCostsLifeAndResetsStreak(t *testing.T) {
	s := startedState(t, 3)
	s.Submit("right", testNow)
	s.Advance()

	out := s.Submit("wrong a", testNow)
	if out.Correct {
		t.Fatal("expected incorrect outcome")
	}
	if s.Lives != StartingLives-1 {
		t.Errorf("lives = %d, want %d", s.Lives, StartingLives-1)
	}
	if s.Streak != 0 {
		t.Errorf("streak = %d, want 0", s.Streak)
	}
	if s.MaxStreak != 1 {
		t.Errorf("maxStreak = %d, want 1", s.MaxStreak)
	}
}

func TestSubmit_IgnoredDuringFeedback(t *testing.T) {
	s := startedState(t, 3)
	s.Submit("right", testNow)

	out := s.Submit("right", testNow)
	if out.Correct || s.Score != 1 {
		t.Error("submissions during the feedback window must be ignored")
	}
}

func TestThreeFailuresEndTheGame(t *testing.T) {
	s := startedState(t, 10)

	for i := 0; i < StartingLives; i++ {
		if s.Phase != PhasePlaying {
			t.Fatalf("game ended after %d failures, want %d", i, StartingLives)
		}
		out := s.Submit("wrong a", testNow)
		wantOver := i == StartingLives-1
		if out.GameOver != wantOver {
			t.Errorf("failure %d: GameOver = %v, want %v", i+1, out.GameOver, wantOver)
		}
		s.Advance()
	}

	if s.Phase != PhaseResults {
		t.Errorf("phase = %d, want results after third failure", s.Phase)
	}
}

func TestExhaustingQuestionsEndsTheGame(t *testing.T) {
	s := startedState(t, 2)

	s.Submit("right", testNow)
	s.Advance()
	if s.Phase != PhasePlaying {
		t.Fatal("game ended with questions remaining")
	}
	s.Submit("right", testNow)
	s.Advance()

	if s.Phase != PhaseResults {
		t.Errorf("phase = %d, want results after last question", s.Phase)
	}
	if s.HighestScore != 2 {
		t.Errorf("HighestScore = %d, want 2", s.HighestScore)
	}
}

func TestTimeUp_CountsAsFailure(t *testing.T) {
	s := startedState(t, 3)
	for !s.Tick() {
	}

	out := s.TimeUp(testNow)
	if out.Correct || !out.TimeUp {
		t.Error("expected a time-up failure outcome")
	}
	if s.Lives != StartingLives-1 {
		t.Errorf("lives = %d, want %d", s.Lives, StartingLives-1)
	}
}

func TestTick_StopsDuringFeedback(t *testing.T) {
	s := startedState(t, 3)
	s.Submit("right", testNow)

	before := s.TimeLeft
	if s.Tick() {
		t.Error("tick should not expire during feedback")
	}
	if s.TimeLeft != before {
		t.Error("clock must not run during the feedback window")
	}
}

func TestAdvance_ResetsClock(t *testing.T) {
	s := startedState(t, 3)
	s.Tick()
	s.Tick()
	s.Submit("right", testNow)
	s.Advance()

	if s.TimeLeft != QuestionTimeSecs {
		t.Errorf("TimeLeft = %d after advance, want %d", s.TimeLeft, QuestionTimeSecs)
	}
	if s.Index != 1 {
		t.Errorf("Index = %d, want 1", s.Index)
	}
}

func TestEndToEnd_ScoreAndMaxStreak(t *testing.T) {
	// Known answer sequence: score = #correct, maxStreak = longest run.
	pattern := []bool{true, true, false, true, true, true, false, true}
	s := startedState(t, 20)

	for _, correct := range pattern {
		answer := "wrong a"
		if correct {
			answer = "right"
		}
		s.Submit(answer, testNow)
		s.Advance()
	}

	if s.Score != 6 {
		t.Errorf("score = %d, want 6", s.Score)
	}
	if s.MaxStreak != 3 {
		t.Errorf("maxStreak = %d, want 3", s.MaxStreak)
	}
}

func TestPowerUp_ExtraTime(t *testing.T) {
	s := startedState(t, 3)
	for i := 0; i < 45; i++ {
		s.Tick()
	}

	if !s.UsePowerUp(PowerUpExtraTime) {
		t.Fatal("expected extraTime to apply")
	}
	if s.TimeLeft != 45 {
		t.Errorf("TimeLeft = %d, want 45", s.TimeLeft)
	}
	if s.Remaining(PowerUpExtraTime) != StartingCharges-1 {
		t.Errorf("charges = %d, want %d", s.Remaining(PowerUpExtraTime), StartingCharges-1)
	}
}

func TestPowerUp_ExtraTimeCappedAtAllowance(t *testing.T) {
	s := startedState(t, 3)
	s.Tick() // 59s left

	s.UsePowerUp(PowerUpExtraTime)
	if s.TimeLeft != QuestionTimeSecs {
		t.Errorf("TimeLeft = %d, want capped at %d", s.TimeLeft, QuestionTimeSecs)
	}
}

func TestPowerUp_ExhaustionIsANoOp(t *testing.T) {
	s := startedState(t, 3)
	s.PowerUps[PowerUpExtraTime] = 0
	for i := 0; i < 30; i++ {
		s.Tick()
	}

	if s.UsePowerUp(PowerUpExtraTime) {
		t.Error("expected use to fail with zero charges")
	}
	if s.TimeLeft != 30 {
		t.Errorf("TimeLeft = %d, want unchanged 30", s.TimeLeft)
	}
	if s.Remaining(PowerUpExtraTime) != 0 {
		t.Errorf("charges = %d, want 0 (never negative)", s.Remaining(PowerUpExtraTime))
	}
}

func TestPowerUp_SkipAdvancesWithoutScoring(t *testing.T) {
	s := startedState(t, 3)

	s.UsePowerUp(PowerUpSkip)
	if s.Index != 1 {
		t.Errorf("Index = %d, want 1", s.Index)
	}
	if s.Score != 0 || s.Lives != StartingLives {
		t.Error("skip must not touch score or lives")
	}
}

func TestAnswered_CountsSubmitsAndTimeoutsNotSkips(t *testing.T) {
	s := startedState(t, 4)

	s.Submit("right", testNow)
	s.Advance()
	s.Submit("wrong", testNow)
	s.Advance()
	s.UsePowerUp(PowerUpSkip)
	s.TimeUp(testNow)

	if s.Answered != 3 {
		t.Errorf("Answered = %d, want 3 (two submits and one timeout)", s.Answered)
	}

	s.Reset()
	if s.Answered != 0 {
		t.Errorf("Answered = %d after reset, want 0", s.Answered)
	}
}

func TestPowerUp_FiftyFiftyKeepsCorrectOption(t *testing.T) {
	s := startedState(t, 3)

	s.UsePowerUp(PowerUpFiftyFifty)
	if len(s.Options) != 2 {
		t.Fatalf("len(Options) = %d, want 2", len(s.Options))
	}
	found := false
	for _, opt := range s.Options {
		if opt == "right" {
			found = true
		}
	}
	if !found {
		t.Error("correct option was removed by fiftyFifty")
	}
}

func TestOptions_StableUntilIndexChanges(t *testing.T) {
	s := startedState(t, 3)

	before := make([]string, len(s.Options))
	copy(before, s.Options)

	// Unrelated state updates must not reshuffle the displayed options.
	s.Tick()
	s.UsePowerUp(PowerUpExtraTime)

	for i, opt := range s.Options {
		if before[i] != opt {
			t.Fatal("options reshuffled without a question change")
		}
	}
}

func TestReset_ReturnsToMenuKeepingBests(t *testing.T) {
	s := startedState(t, 2)
	s.Submit("right", testNow)
	s.Advance()
	s.Submit("right", testNow)
	s.Advance()

	s.Reset()
	if s.Phase != PhaseMenu {
		t.Errorf("phase = %d, want menu", s.Phase)
	}
	if s.HighestScore != 2 {
		t.Errorf("HighestScore = %d, want 2 preserved across reset", s.HighestScore)
	}
	if s.Performance.TotalQuestions != 2 {
		t.Error("performance aggregate must survive reset")
	}
}

func TestSubmit_ReschedulesQuestion(t *testing.T) {
	s := startedState(t, 1)
	q := s.Current()

	s.Submit("right", testNow)

	if q.SRS.RepetitionCount != 1 {
		t.Errorf("RepetitionCount = %d, want 1", q.SRS.RepetitionCount)
	}
	if q.SRS.IsDue(testNow) {
		t.Error("answered question should be scheduled into the future")
	}
	if q.Performance.TotalAttempts != 1 || q.Performance.CorrectAttempts != 1 {
		t.Error("attempt not recorded on question metrics")
	}
	if q.Performance.MasteryLevel <= 0 {
		t.Errorf("MasteryLevel = %d, want > 0", q.Performance.MasteryLevel)
	}
}
