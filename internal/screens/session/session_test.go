package session

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/question"
	"github.com/abhisek/fluence/internal/review"
	"github.com/abhisek/fluence/internal/screen"
	"github.com/abhisek/fluence/internal/speech"
	"github.com/abhisek/fluence/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	sessionEvents []store.SessionEventData
	answerEvents  []store.AnswerEventData
}

func (m *mockEventRepo) AppendAnswer(_ context.Context, data store.AnswerEventData) error {
	m.answerEvents = append(m.answerEvents, data)
	return nil
}
func (m *mockEventRepo) AppendSession(_ context.Context, data store.SessionEventData) error {
	m.sessionEvents = append(m.sessionEvents, data)
	return nil
}
func (m *mockEventRepo) QuerySessions(_ context.Context, _ store.QueryOpts) ([]store.SessionEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) AppendLLMRequest(_ context.Context, _ store.LLMRequestEventData) error {
	return nil
}
func (m *mockEventRepo) QueryLLMEvents(_ context.Context, _ store.QueryOpts) ([]store.LLMRequestEventData, error) {
	return nil, nil
}
func (m *mockEventRepo) GetLLMEvent(_ context.Context, _ int) (*store.LLMRequestEventData, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByPurpose(_ context.Context) ([]store.LLMUsageStat, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByModel(_ context.Context) ([]store.LLMUsageStat, error) {
	return nil, nil
}

// mockSnapshotRepo implements store.SnapshotRepo for testing.
type mockSnapshotRepo struct {
	snapshots []*store.Snapshot
}

func (m *mockSnapshotRepo) Save(_ context.Context, snap *store.Snapshot) error {
	m.snapshots = append(m.snapshots, snap)
	return nil
}
func (m *mockSnapshotRepo) Latest(_ context.Context) (*store.Snapshot, error) {
	if len(m.snapshots) == 0 {
		return nil, nil
	}
	return m.snapshots[len(m.snapshots)-1], nil
}
func (m *mockSnapshotRepo) Prune(_ context.Context, _ int) error {
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testBank() []*question.Question {
	qs := []*question.Question{
		{
			Prompt:      "What does 'Namaste' mean?",
			Correct:     "Hello",
			Options:     []string{"Hello", "Goodbye", "Thanks", "Sorry"},
			Type:        question.TypeMCQ,
			Topic:       "greetings",
			Explanation: "A common greeting.",
		},
		{
			Prompt:  "Translate 'Ghar' to English.",
			Correct: "Home",
			Type:    question.TypeFillInBlank,
			Topic:   "household",
		},
	}
	for i, q := range qs {
		q.Normalize(i)
	}
	return qs
}

func testSessionScreen() (*SessionScreen, *mockEventRepo, *mockSnapshotRepo) {
	eventRepo := &mockEventRepo{}
	snapRepo := &mockSnapshotRepo{}
	s := New(Deps{
		State:  game.NewState(nil),
		Bank:   testBank(),
		Events: eventRepo,
		Snaps:  snapRepo,
		Review: review.NewDisabled(),
		Speech: speech.NewManager(nil, nil),
	})
	return s, eventRepo, snapRepo
}

func startRun(t *testing.T, s *SessionScreen) {
	t.Helper()
	var scr screen.Screen = s
	scr, _ = scr.Update(sessionInitMsg{sessionID: "test-session"})
	if !scr.(*SessionScreen).started {
		t.Fatal("session did not start")
	}
}

func TestSessionScreen_Title(t *testing.T) {
	s, _, _ := testSessionScreen()
	if s.Title() != "Quiz" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz")
	}
}

func TestSessionScreen_View_Loading(t *testing.T) {
	s, _, _ := testSessionScreen()
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty view for loading state")
	}
}

func TestSessionScreen_InitNoDueQuestions(t *testing.T) {
	eventRepo := &mockEventRepo{}
	s := New(Deps{
		State:  game.NewState(nil),
		Bank:   nil,
		Events: eventRepo,
		Snaps:  &mockSnapshotRepo{},
		Review: review.NewDisabled(),
		Speech: speech.NewManager(nil, nil),
	})

	var scr screen.Screen = s
	scr, _ = scr.Update(sessionInitMsg{sessionID: "empty"})
	ss := scr.(*SessionScreen)
	if ss.started {
		t.Error("session should not start with an empty bank")
	}
	if ss.errMsg == "" {
		t.Error("expected an error message for an empty bank")
	}
	if ss.View(80, 24) == "" {
		t.Error("expected non-empty view for error state")
	}
}

func TestSessionScreen_QuitConfirm(t *testing.T) {
	s, _, _ := testSessionScreen()
	startRun(t, s)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	ss := scr.(*SessionScreen)
	if !ss.quitConfirm {
		t.Error("expected quit confirmation dialog")
	}

	scr, _ = ss.Update(keyPress('n'))
	ss = scr.(*SessionScreen)
	if ss.quitConfirm {
		t.Error("expected quit confirmation to be dismissed")
	}
	if ss.state.Phase != game.PhasePlaying {
		t.Error("run should still be in progress after dismissing")
	}
}

func TestSessionScreen_QuitConfirm_Yes(t *testing.T) {
	s, _, _ := testSessionScreen()
	startRun(t, s)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after quit confirmation")
	}
	if _, ok := cmd().(sessionEndMsg); !ok {
		t.Error("expected sessionEndMsg after confirming quit")
	}
}

func TestSessionScreen_MultipleChoiceSubmit(t *testing.T) {
	s, eventRepo, _ := testSessionScreen()
	startRun(t, s)

	// Session order is shuffled; advance to the option-based question.
	for !s.mcActive() {
		s.state.Submit(s.state.Current().Correct, time.Now())
		s.state.Advance()
	}
	eventRepo.answerEvents = nil

	// Find the correct option and press its number key.
	correct := s.state.Current().Correct
	idx := -1
	for i, opt := range s.state.Options {
		if opt == correct {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.Fatal("correct answer missing from options")
	}

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress(rune('1' + idx)))
	ss := scr.(*SessionScreen)

	if !ss.state.ShowingResult {
		t.Error("expected feedback after answering")
	}
	if !ss.state.LastCorrect {
		t.Error("expected the answer to be correct")
	}
	if len(eventRepo.answerEvents) != 1 {
		t.Fatalf("answer events = %d, want 1", len(eventRepo.answerEvents))
	}
	ev := eventRepo.answerEvents[0]
	if !ev.Correct || ev.Topic != "greetings" {
		t.Errorf("unexpected answer event: %+v", ev)
	}
}

func TestSessionScreen_TypedSubmit(t *testing.T) {
	s, eventRepo, _ := testSessionScreen()
	startRun(t, s)

	// Session order is shuffled; advance to the typed question.
	for s.mcActive() {
		s.state.Submit(s.state.Current().Correct, time.Now())
		s.state.Advance()
	}
	eventRepo.answerEvents = nil

	s.input.Model.SetValue("Home")
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*SessionScreen)

	if !ss.state.ShowingResult {
		t.Error("expected feedback after typed submit")
	}
	if !ss.state.LastCorrect {
		t.Error("expected typed answer to be correct")
	}
	if len(eventRepo.answerEvents) != 1 {
		t.Errorf("answer events = %d, want 1", len(eventRepo.answerEvents))
	}
}

func TestSessionScreen_EmptySubmitIgnored(t *testing.T) {
	s, eventRepo, _ := testSessionScreen()
	startRun(t, s)

	for s.mcActive() {
		s.state.Submit(s.state.Current().Correct, time.Now())
		s.state.Advance()
	}

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*SessionScreen)
	if ss.state.ShowingResult {
		t.Error("empty submit should not trigger feedback")
	}
	if len(eventRepo.answerEvents) != 0 {
		t.Errorf("answer events = %d, want 0", len(eventRepo.answerEvents))
	}
}

func TestSessionScreen_FeedbackDismissAdvances(t *testing.T) {
	s, _, _ := testSessionScreen()
	startRun(t, s)

	before := s.state.Index
	s.state.Submit(s.state.Current().Correct, time.Now())

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress(' '))
	ss := scr.(*SessionScreen)
	if ss.state.ShowingResult {
		t.Error("feedback should be dismissed")
	}
	if ss.state.Index != before+1 {
		t.Errorf("Index = %d, want %d", ss.state.Index, before+1)
	}
}

func TestSessionScreen_SkipPowerUp(t *testing.T) {
	s, _, _ := testSessionScreen()
	startRun(t, s)

	before := s.state.Index
	charges := s.state.PowerUps[game.PowerUpSkip]

	var scr screen.Screen = s
	scr, _ = scr.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	ss := scr.(*SessionScreen)

	if ss.state.Index != before+1 {
		t.Errorf("Index = %d, want %d after skip", ss.state.Index, before+1)
	}
	if ss.state.PowerUps[game.PowerUpSkip] != charges-1 {
		t.Errorf("skip charges = %d, want %d", ss.state.PowerUps[game.PowerUpSkip], charges-1)
	}
}

func TestSessionScreen_TimerExpiryCostsLife(t *testing.T) {
	s, eventRepo, _ := testSessionScreen()
	startRun(t, s)

	s.state.TimeLeft = 1
	var scr screen.Screen = s
	scr, _ = scr.Update(timerTickMsg{sessionID: s.state.SessionID, at: time.Now()})
	ss := scr.(*SessionScreen)

	if !ss.state.ShowingResult {
		t.Error("expected timeout feedback")
	}
	if ss.state.Lives != game.StartingLives-1 {
		t.Errorf("Lives = %d, want %d", ss.state.Lives, game.StartingLives-1)
	}
	if len(eventRepo.answerEvents) != 1 || eventRepo.answerEvents[0].Correct {
		t.Errorf("expected one incorrect answer event, got %+v", eventRepo.answerEvents)
	}
}

func TestSessionScreen_StaleTickIgnored(t *testing.T) {
	// A tick scheduled by a previous run can land right after a restart.
	// It must neither move the clock nor schedule a second tick loop.
	s, _, _ := testSessionScreen()
	startRun(t, s)

	before := s.state.TimeLeft
	var scr screen.Screen = s
	scr, cmd := scr.Update(timerTickMsg{sessionID: "old-session", at: time.Now()})
	ss := scr.(*SessionScreen)

	if ss.state.TimeLeft != before {
		t.Errorf("TimeLeft = %d, want %d after a stale tick", ss.state.TimeLeft, before)
	}
	if cmd != nil {
		t.Error("a stale tick must not reschedule")
	}

	scr, cmd = scr.Update(timerTickMsg{sessionID: ss.state.SessionID, at: time.Now()})
	ss = scr.(*SessionScreen)
	if ss.state.TimeLeft != before-1 {
		t.Errorf("TimeLeft = %d, want %d after a live tick", ss.state.TimeLeft, before-1)
	}
	if cmd == nil {
		t.Error("a live tick must reschedule")
	}
}

func TestSessionScreen_ReviewFeedbackStoredOnQuestion(t *testing.T) {
	s, _, _ := testSessionScreen()
	startRun(t, s)

	q := s.state.Current()
	s.state.Submit(q.Correct, time.Now())

	s.deps.Review.RequestReview(context.Background(), review.Input{})
	s.aiPending = true

	var scr screen.Screen = s
	scr, _ = scr.Update(feedbackPollMsg{})
	ss := scr.(*SessionScreen)

	if ss.aiFeedback == "" {
		t.Fatal("expected feedback on the overlay")
	}
	if len(q.AIFeedback) != 1 || q.AIFeedback[0] != ss.aiFeedback {
		t.Errorf("AIFeedback = %v, want the delivered feedback recorded", q.AIFeedback)
	}
}

func TestSessionScreen_SessionEndPersists(t *testing.T) {
	s, eventRepo, snapRepo := testSessionScreen()
	startRun(t, s)

	s.state.Submit(s.state.Current().Correct, time.Now())
	s.state.Advance()

	var scr screen.Screen = s
	_, cmd := scr.Update(sessionEndMsg{})
	if cmd == nil {
		t.Fatal("expected a push command after session end")
	}

	var end *store.SessionEventData
	for i := range eventRepo.sessionEvents {
		if eventRepo.sessionEvents[i].Action == "end" {
			end = &eventRepo.sessionEvents[i]
		}
	}
	if end == nil {
		t.Fatal("no end event recorded")
	}
	if end.Score != s.state.Score || end.MaxStreak != s.state.MaxStreak {
		t.Errorf("end event = %+v", end)
	}

	if len(snapRepo.snapshots) != 1 {
		t.Fatalf("snapshots = %d, want 1", len(snapRepo.snapshots))
	}
	data := snapRepo.snapshots[0].Data
	if data.Version != store.SnapshotVersion || len(data.Questions) == 0 {
		t.Errorf("snapshot data = %+v", data)
	}
}

func TestSessionScreen_KeyHints(t *testing.T) {
	s, _, _ := testSessionScreen()
	startRun(t, s)

	hints := s.KeyHints()
	if len(hints) == 0 {
		t.Fatal("expected key hints for active question")
	}

	s.quitConfirm = true
	confirm := s.KeyHints()
	if len(confirm) != 2 {
		t.Errorf("quit confirm hints = %d, want 2", len(confirm))
	}
}
