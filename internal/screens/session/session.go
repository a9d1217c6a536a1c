package session

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/question"
	"github.com/abhisek/fluence/internal/review"
	"github.com/abhisek/fluence/internal/router"
	"github.com/abhisek/fluence/internal/screen"
	"github.com/abhisek/fluence/internal/screens/summary"
	"github.com/abhisek/fluence/internal/speech"
	"github.com/abhisek/fluence/internal/store"
	"github.com/abhisek/fluence/internal/ui/components"
	"github.com/abhisek/fluence/internal/ui/layout"

	"github.com/google/uuid"
)

// Deps are the injected collaborators for a quiz run.
type Deps struct {
	State  *game.State
	Bank   []*question.Question
	Events store.EventRepo
	Snaps  store.SnapshotRepo
	Review *review.Service
	Speech *speech.Manager
}

// SessionScreen implements screen.Screen for an active quiz run.
type SessionScreen struct {
	deps  Deps
	state *game.State

	input      components.TextInput
	mcSelected int

	quitConfirm bool
	started     bool
	startedAt   time.Time

	// AI feedback for the current answer. Pending until the review
	// service delivers or the player moves on.
	aiFeedback string
	aiHints    []string
	aiPending  bool

	listening bool
	errMsg    string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New creates a quiz session screen. The run itself starts in Init.
func New(deps Deps) *SessionScreen {
	return &SessionScreen{
		deps:  deps,
		state: deps.State,
		input: components.NewTextInput("Type your answer...", false, 40),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return tea.Batch(s.startSession(), s.input.Init())
}

func (s *SessionScreen) Title() string {
	return "Quiz"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End run"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.state.ShowingResult {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "^S", Description: "Skip"},
		{Key: "^E", Description: "+30s"},
	}
	if s.mcActive() {
		hints = append(hints, layout.KeyHint{Key: "^F", Description: "50/50"})
	}
	if q := s.state.Current(); q != nil && q.Type == question.TypeVoice && s.deps.Speech.CanListen() {
		hints = append(hints, layout.KeyHint{Key: "^L", Description: "Speak answer"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	return hints
}

// mcActive reports whether the current question is answered by picking
// from the displayed options rather than typing.
func (s *SessionScreen) mcActive() bool {
	q := s.state.Current()
	if q == nil {
		return false
	}
	return (q.Type == question.TypeMCQ || q.Type == question.TypeTrueFalse || q.Type == question.TypeImageBased) && len(s.state.Options) > 0
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		return s.handleInit(msg)

	case timerTickMsg:
		return s.handleTimerTick(msg)

	case feedbackPollMsg:
		return s.handleFeedbackPoll()

	case sessionEndMsg:
		return s.handleSessionEnd()

	case speechDoneMsg:
		return s.handleSpeechDone(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.started && !s.state.ShowingResult && !s.quitConfirm && !s.mcActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

// startSession persists the start event off the UI loop. The game state
// itself only starts once the message comes back, so the model never
// mutates from a command goroutine.
func (s *SessionScreen) startSession() tea.Cmd {
	return func() tea.Msg {
		sessionID := uuid.New().String()
		_ = s.deps.Events.AppendSession(context.Background(), store.SessionEventData{
			SessionID: sessionID,
			Action:    "start",
			Player:    s.state.PlayerName,
		})
		return sessionInitMsg{sessionID: sessionID}
	}
}

func (s *SessionScreen) handleInit(msg sessionInitMsg) (screen.Screen, tea.Cmd) {
	s.state.Start(s.deps.Bank, msg.sessionID, time.Now())
	if len(s.state.Questions) == 0 {
		s.errMsg = "No questions are due for review right now. Come back later!"
		return s, nil
	}
	s.started = true
	s.startedAt = time.Now()
	s.resetQuestionInput()
	return s, tickCmd(s.state.SessionID)
}

func (s *SessionScreen) handleTimerTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if !s.started || s.state.Phase != game.PhasePlaying {
		return s, nil
	}
	if msg.sessionID != s.state.SessionID {
		return s, nil
	}

	if s.state.Tick() {
		out := s.state.TimeUp(time.Now())
		return s, tea.Batch(tickCmd(s.state.SessionID), s.afterAnswer(out, ""))
	}

	return s, tickCmd(s.state.SessionID)
}

func (s *SessionScreen) handleFeedbackPoll() (screen.Screen, tea.Cmd) {
	if !s.state.ShowingResult || !s.aiPending {
		return s, nil
	}
	if res, ok := s.deps.Review.ConsumeReview(); ok {
		s.aiFeedback = res.Feedback
		s.aiHints = res.Hints
		s.aiPending = false
		if q := s.state.Current(); q != nil && res.Feedback != "" {
			q.AIFeedback = append(q.AIFeedback, res.Feedback)
		}
		return s, nil
	}
	return s, pollCmd()
}

func (s *SessionScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	s.state.EndRun()

	ctx := context.Background()
	perf := s.state.Performance
	_ = s.deps.Events.AppendSession(ctx, store.SessionEventData{
		SessionID:       s.state.SessionID,
		Action:          "end",
		Player:          s.state.PlayerName,
		QuestionsServed: len(s.state.Questions),
		CorrectAnswers:  s.state.Score,
		Score:           s.state.Score,
		MaxStreak:       s.state.MaxStreak,
		DurationSecs:    int(time.Since(s.startedAt).Seconds()),
	})

	s.saveSnapshot(ctx)

	// Kick off the end-of-session report; the summary screen collects it.
	s.deps.Review.RequestReport(ctx, review.ReportInput{
		PlayerName:     s.state.PlayerName,
		TotalQuestions: perf.TotalQuestions,
		CorrectAnswers: perf.CorrectAnswers,
		Accuracy:       perf.Accuracy(),
		MaxStreak:      s.state.MaxStreak,
		WeakTopics:     topTopics(perf.WeakAreas, perf.TopicOrder()),
		StrongTopics:   topTopics(perf.StrongAreas, perf.TopicOrder()),
	})

	deps := s.deps
	return s, func() tea.Msg {
		return router.PushScreenMsg{
			Screen: summary.New(summary.Deps{
				State:  deps.State,
				Bank:   deps.Bank,
				Review: deps.Review,
				Restart: func() tea.Msg {
					deps.State.Reset()
					return router.PushScreenMsg{Screen: New(deps)}
				},
			}),
		}
	}
}

func (s *SessionScreen) handleSpeechDone(msg speechDoneMsg) (screen.Screen, tea.Cmd) {
	s.listening = false
	if msg.err != nil || msg.transcript == "" {
		return s, nil
	}
	if !s.started || s.state.ShowingResult || s.quitConfirm {
		return s, nil
	}
	out := s.state.Submit(msg.transcript, time.Now())
	return s, s.afterAnswer(out, msg.transcript)
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if !s.started {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	// Feedback overlay: any key moves on. A review still in flight is
	// dropped so it cannot bleed into the next question.
	if s.state.ShowingResult {
		if s.aiPending {
			s.deps.Review.ConsumeReview()
			s.aiPending = false
		}
		s.state.Advance()
		if s.state.Phase == game.PhaseResults {
			return s, func() tea.Msg { return sessionEndMsg{} }
		}
		s.resetQuestionInput()
		return s, s.input.Init()
	}

	if s.state.Phase != game.PhasePlaying {
		return s, nil
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "enter":
		return s.submitAnswer()
	case "ctrl+s":
		return s.usePowerUp(game.PowerUpSkip)
	case "ctrl+e":
		return s.usePowerUp(game.PowerUpExtraTime)
	case "ctrl+f":
		return s.usePowerUp(game.PowerUpFiftyFifty)
	case "ctrl+l":
		return s.startListening()
	case "ctrl+p":
		return s.speakPrompt()
	}

	if s.mcActive() {
		switch key {
		case "1", "2", "3", "4":
			idx := int(key[0] - '1')
			if idx < len(s.state.Options) {
				s.mcSelected = idx
				return s.submitAnswer()
			}
		case "up", "k":
			if s.mcSelected > 0 {
				s.mcSelected--
			}
		case "down", "j":
			if s.mcSelected < len(s.state.Options)-1 {
				s.mcSelected++
			}
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SessionScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	var answer string
	if s.mcActive() {
		if s.mcSelected < 0 || s.mcSelected >= len(s.state.Options) {
			return s, nil
		}
		answer = s.state.Options[s.mcSelected]
	} else {
		answer = s.input.Value()
		if answer == "" {
			return s, nil
		}
	}

	out := s.state.Submit(answer, time.Now())
	return s, s.afterAnswer(out, answer)
}

// afterAnswer persists the answer event and requests the AI review while
// the feedback overlay is up.
func (s *SessionScreen) afterAnswer(out game.Outcome, answer string) tea.Cmd {
	q := s.state.Current()
	if q == nil {
		return nil
	}

	timeTaken := float64(game.QuestionTimeSecs - s.state.TimeLeft)

	ctx := context.Background()
	_ = s.deps.Events.AppendAnswer(ctx, store.AnswerEventData{
		SessionID:     s.state.SessionID,
		QuestionID:    q.ID,
		Topic:         q.Topic,
		QuestionType:  string(q.Type),
		QuestionText:  q.Prompt,
		CorrectAnswer: q.Correct,
		PlayerAnswer:  answer,
		Correct:       out.Correct,
		TimeSecs:      timeTaken,
		MasteryLevel:  q.Performance.MasteryLevel,
	})

	s.aiFeedback = ""
	s.aiHints = nil
	s.aiPending = s.deps.Review.Enabled()
	if !s.aiPending {
		return nil
	}

	s.deps.Review.RequestReview(ctx, review.Input{
		Question:   q,
		Submission: answer,
		Correct:    out.Correct,
		TimeTaken:  timeTaken,
	})
	return pollCmd()
}

func (s *SessionScreen) usePowerUp(p game.PowerUp) (screen.Screen, tea.Cmd) {
	if !s.state.UsePowerUp(p) {
		return s, nil
	}
	switch p {
	case game.PowerUpSkip:
		if s.state.Phase == game.PhaseResults {
			return s, func() tea.Msg { return sessionEndMsg{} }
		}
		s.resetQuestionInput()
		return s, s.input.Init()
	case game.PowerUpFiftyFifty:
		if s.mcSelected >= len(s.state.Options) {
			s.mcSelected = 0
		}
	}
	return s, nil
}

// startListening captures a spoken answer when a recognizer is wired in.
func (s *SessionScreen) startListening() (screen.Screen, tea.Cmd) {
	q := s.state.Current()
	if q == nil || s.listening || !s.deps.Speech.CanListen() {
		return s, nil
	}
	s.listening = true
	mgr, lang := s.deps.Speech, q.Language
	return s, func() tea.Msg {
		text, err := mgr.Listen(context.Background(), lang)
		return speechDoneMsg{transcript: text, err: err}
	}
}

// speakPrompt reads the current prompt aloud when a synthesizer is wired in.
func (s *SessionScreen) speakPrompt() (screen.Screen, tea.Cmd) {
	q := s.state.Current()
	if q == nil || !s.deps.Speech.CanSpeak() {
		return s, nil
	}
	mgr, text, lang := s.deps.Speech, q.Prompt, q.Language
	return s, func() tea.Msg {
		err := mgr.Speak(context.Background(), text, lang)
		return speechDoneMsg{err: err}
	}
}

func (s *SessionScreen) resetQuestionInput() {
	s.mcSelected = 0
	s.input = components.NewTextInput("Type your answer...", false, 40)
	s.aiFeedback = ""
	s.aiHints = nil
	s.aiPending = false
}

// saveSnapshot persists the bank (with updated schedules), the aggregate,
// and the all-time bests.
func (s *SessionScreen) saveSnapshot(ctx context.Context) {
	snap := &store.Snapshot{
		Timestamp: time.Now(),
		Data: store.SnapshotData{
			Version:       store.SnapshotVersion,
			Player:        s.state.PlayerName,
			Student:       s.state.Student,
			Questions:     s.deps.Bank,
			Performance:   s.state.Performance,
			HighestScore:  s.state.HighestScore,
			HighestStreak: s.state.HighestStreak,
		},
	}
	_ = s.deps.Snaps.Save(ctx, snap)
	_ = s.deps.Snaps.Prune(ctx, store.SnapshotKeep)
}

// topTopics returns up to three topics by descending count, first-seen
// order breaking ties.
func topTopics(counts map[string]int, order []string) []string {
	type tc struct {
		topic string
		n     int
	}
	ranked := make([]tc, 0, len(counts))
	for _, t := range order {
		if n, ok := counts[t]; ok && n > 0 {
			ranked = append(ranked, tc{t, n})
		}
	}
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].n > ranked[j-1].n; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.topic
	}
	return out
}
