package game

import (
	"math/rand/v2"

	"github.com/abhisek/fluence/internal/question"
)

// Phase is the top-level game state.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseResults
)

// PowerUp identifies a consumable ability.
type PowerUp string

const (
	PowerUpSkip       PowerUp = "skipQuestion"
	PowerUpExtraTime  PowerUp = "extraTime"
	PowerUpFiftyFifty PowerUp = "fiftyFifty"
)

// Game tuning constants.
const (
	StartingLives = 3
	// QuestionTimeSecs is the per-question allowance; extraTime never
	// pushes the clock past it.
	QuestionTimeSecs = 60
	ExtraTimeSecs    = 30
	// MaxSessionQuestions caps how many due questions make up one run.
	MaxSessionQuestions = 20
	StartingCharges     = 2
	// FiftyFiftyRemovals is how many wrong options the power-up hides.
	FiftyFiftyRemovals = 2
)

// State is the complete session state. All transitions go through the
// methods in this package; the UI layer only reads fields and forwards
// events.
type State struct {
	Phase      Phase
	PlayerName string
	Student    string
	SessionID  string

	// Questions is the ordered session subset drawn from the bank.
	Questions []*question.Question

	// Index is the current question position.
	Index int

	// Options is the displayed option order for the current question.
	// Reshuffled only when Index changes, so unrelated updates can't leak
	// the correct answer through reordering.
	Options []string

	Score     int
	Streak    int
	MaxStreak int
	Lives     int

	// Answered counts submitted or timed-out questions this run. Skips
	// don't count, so accuracy is scored against real attempts only.
	Answered int

	// TimeLeft is the remaining seconds on the current question's clock.
	TimeLeft int

	PowerUps map[PowerUp]int

	// ShowingResult is true during the post-answer feedback window.
	ShowingResult  bool
	LastCorrect    bool
	LastSubmission string

	// Performance is the cross-session aggregate the run records into.
	Performance *Performance

	HighestScore  int
	HighestStreak int

	rng *rand.Rand
}

// NewState creates a menu-phase state around a performance aggregate.
func NewState(perf *Performance) *State {
	if perf == nil {
		perf = NewPerformance()
	}
	return &State{
		Phase:       PhaseMenu,
		Lives:       StartingLives,
		TimeLeft:    QuestionTimeSecs,
		PowerUps:    freshPowerUps(),
		Performance: perf,
		rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func freshPowerUps() map[PowerUp]int {
	return map[PowerUp]int{
		PowerUpSkip:       StartingCharges,
		PowerUpExtraTime:  StartingCharges,
		PowerUpFiftyFifty: StartingCharges,
	}
}

// SeedRand replaces the state's randomness source. Tests use this for
// deterministic option and session shuffles.
func (s *State) SeedRand(seed uint64) {
	s.rng = rand.New(rand.NewPCG(seed, seed))
}

// Current returns the active question, or nil outside the playing phase.
func (s *State) Current() *question.Question {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return nil
	}
	return s.Questions[s.Index]
}

// Remaining reports how many power-up charges are left.
func (s *State) Remaining(p PowerUp) int {
	return s.PowerUps[p]
}
