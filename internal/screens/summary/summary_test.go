package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/question"
	"github.com/abhisek/fluence/internal/review"
	"github.com/abhisek/fluence/internal/router"
	"github.com/abhisek/fluence/internal/screen"
)

func testSummaryScreen() *SummaryScreen {
	st := game.NewState(nil)
	st.Score = 7
	st.MaxStreak = 4
	st.HighestScore = 12
	st.HighestStreak = 6
	st.Questions = make([]*question.Question, 10)
	st.Index = 9
	st.Answered = 10

	return New(Deps{
		State:  st,
		Review: review.NewDisabled(),
		Restart: func() tea.Msg {
			return router.PushScreenMsg{}
		},
	})
}

func TestRating(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     string
	}{
		{95, "Outstanding!"},
		{90, "Outstanding!"},
		{75, "Great job!"},
		{50, "Good effort!"},
		{20, "Keep practicing!"},
	}
	for _, tt := range tests {
		if got := rating(tt.accuracy); got != tt.want {
			t.Errorf("rating(%.0f) = %q, want %q", tt.accuracy, got, tt.want)
		}
	}
}

func TestSummaryScreen_View(t *testing.T) {
	s := testSummaryScreen()
	view := s.View(80, 24)
	if !strings.Contains(view, "Run complete!") {
		t.Error("view missing headline")
	}
	if !strings.Contains(view, "Best streak: 4") {
		t.Error("view missing streak stat")
	}
	if !strings.Contains(view, "All-time best: 12") {
		t.Error("view missing all-time best")
	}
}

func TestSummaryScreen_AccuracyCountsOnlyAnsweredQuestions(t *testing.T) {
	// Quitting mid-question leaves Index pointing at an unanswered
	// question; accuracy must not count it.
	s := testSummaryScreen()
	s.deps.State.Score = 3
	s.deps.State.Answered = 3
	s.deps.State.Index = 3 // fourth question on screen, never answered

	view := s.View(80, 24)
	if !strings.Contains(view, "Accuracy: 100%") {
		t.Errorf("expected 100%% accuracy for 3/3 answered, view:\n%s", view)
	}
}

func TestSummaryScreen_AccuracyZeroAnswered(t *testing.T) {
	s := testSummaryScreen()
	s.deps.State.Score = 0
	s.deps.State.Answered = 0

	view := s.View(80, 24)
	if !strings.Contains(view, "Accuracy: 0%") {
		t.Error("expected 0% accuracy when nothing was answered")
	}
}

func TestSummaryScreen_EscPopsToRoot(t *testing.T) {
	s := testSummaryScreen()
	var scr screen.Screen = s
	_, cmd := scr.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on esc")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg on esc")
	}
}

func TestSummaryScreen_PlayAgain(t *testing.T) {
	s := testSummaryScreen()
	var scr screen.Screen = s
	_, cmd := scr.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command on play again")
	}
}

func TestSummaryScreen_InsightsPush(t *testing.T) {
	s := testSummaryScreen()
	var scr screen.Screen = s
	_, cmd := scr.Update(tea.KeyPressMsg{Code: 'i', Text: "i"})
	if cmd == nil {
		t.Fatal("expected a command on insights key")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("expected PushScreenMsg for insights")
	}
}

func TestSummaryScreen_ReportDelivery(t *testing.T) {
	s := testSummaryScreen()
	s.reportPending = true

	// Nothing ready yet: keep polling.
	var scr screen.Screen = s
	scr, cmd := scr.Update(reportPollMsg{})
	ss := scr.(*SummaryScreen)
	if !ss.reportPending {
		t.Error("report should still be pending")
	}
	if cmd == nil {
		t.Error("expected another poll command")
	}
}

func TestShareText(t *testing.T) {
	s := testSummaryScreen()
	text := s.shareText()
	if !strings.Contains(text, "7 points") || !strings.Contains(text, "4 answer streak") {
		t.Errorf("share text = %q", text)
	}
}
