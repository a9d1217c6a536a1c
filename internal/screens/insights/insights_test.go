package insights

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/question"
	"github.com/abhisek/fluence/internal/router"
	"github.com/abhisek/fluence/internal/screen"
)

func testInsightsScreen() *InsightsScreen {
	st := game.NewState(nil)
	st.HighestScore = 15
	st.HighestStreak = 5
	bank := []*question.Question{
		{Prompt: "What does 'Namaste' mean?", Correct: "Hello", Topic: "greetings"},
		{Prompt: "Translate 'Ghar'.", Correct: "Home", Topic: "household"},
	}
	for i, q := range bank {
		q.Normalize(i)
	}

	st.Performance.Record(bank[0], "Hello", true, 4)
	st.Performance.Record(bank[0], "Hello", true, 5)
	st.Performance.Record(bank[1], "House", false, 9)

	s := New(Deps{State: st, Bank: bank})
	s.Init()
	return s
}

func TestInsightsScreen_Title(t *testing.T) {
	s := testInsightsScreen()
	if s.Title() != "Insights" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestInsightsScreen_View(t *testing.T) {
	s := testInsightsScreen()
	view := s.View(80, 24)

	if !strings.Contains(view, "Your progress") {
		t.Error("view missing headline")
	}
	if !strings.Contains(view, "Answered: 3") {
		t.Error("view missing overview stats")
	}
	if !strings.Contains(view, "Mastery by topic") {
		t.Error("view missing mastery section")
	}
}

func TestInsightsScreen_EmptyState(t *testing.T) {
	s := New(Deps{State: game.NewState(nil)})
	s.Init()
	view := s.View(80, 24)
	if !strings.Contains(view, "Play a few rounds") {
		t.Error("expected empty-state prompt")
	}
}

func TestInsightsScreen_EscPops(t *testing.T) {
	s := testInsightsScreen()
	var scr screen.Screen = s
	_, cmd := scr.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on esc")
	}
}
