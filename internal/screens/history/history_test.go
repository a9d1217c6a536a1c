package history

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fluence/internal/router"
	"github.com/abhisek/fluence/internal/screen"
	"github.com/abhisek/fluence/internal/store"
)

func testRuns() []store.SessionEventRecord {
	base := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	return []store.SessionEventRecord{
		{
			Sequence:  4,
			Timestamp: base.Add(time.Hour),
			SessionEventData: store.SessionEventData{
				SessionID:       "sess-2",
				Action:          "end",
				Player:          "Kavya",
				QuestionsServed: 10,
				CorrectAnswers:  8,
				Score:           8,
				MaxStreak:       5,
				DurationSecs:    95,
			},
		},
		{
			Sequence:  2,
			Timestamp: base,
			SessionEventData: store.SessionEventData{
				SessionID:       "sess-1",
				Action:          "end",
				Player:          "Kavya",
				QuestionsServed: 10,
				CorrectAnswers:  6,
				Score:           6,
				MaxStreak:       3,
				DurationSecs:    120,
			},
		},
	}
}

func loadedScreen() *HistoryScreen {
	s := New(nil)
	var scr screen.Screen = s
	scr, _ = scr.Update(historyLoadedMsg{Runs: testRuns()})
	return scr.(*HistoryScreen)
}

func TestHistoryScreen_Title(t *testing.T) {
	s := New(nil)
	if s.Title() != "History" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestHistoryScreen_View_Loading(t *testing.T) {
	s := New(nil)
	view := s.View(80, 24)
	if !strings.Contains(view, "Loading") {
		t.Error("expected loading indicator before data arrives")
	}
}

func TestHistoryScreen_View_Empty(t *testing.T) {
	s := New(nil)
	var scr screen.Screen = s
	scr, _ = scr.Update(historyLoadedMsg{})
	view := scr.(*HistoryScreen).View(80, 24)
	if !strings.Contains(view, "No runs yet") {
		t.Error("expected empty-state message")
	}
}

func TestHistoryScreen_ListsRuns(t *testing.T) {
	s := loadedScreen()
	view := s.View(80, 24)
	if !strings.Contains(view, "10 questions") {
		t.Errorf("view missing run line:\n%s", view)
	}
	if !strings.Contains(view, "80%") {
		t.Error("view missing accuracy")
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	s := loadedScreen()
	var scr screen.Screen = s

	scr, _ = scr.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	hs := scr.(*HistoryScreen)
	if hs.selected != 1 {
		t.Errorf("selected = %d, want 1", hs.selected)
	}

	// Cannot move past the last run.
	scr, _ = hs.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	hs = scr.(*HistoryScreen)
	if hs.selected != 1 {
		t.Errorf("selected = %d, want 1 at bottom", hs.selected)
	}

	scr, _ = hs.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	hs = scr.(*HistoryScreen)
	if hs.selected != 0 {
		t.Errorf("selected = %d, want 0", hs.selected)
	}
}

func TestHistoryScreen_ExpandDetail(t *testing.T) {
	s := loadedScreen()
	var scr screen.Screen = s

	scr, _ = scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	hs := scr.(*HistoryScreen)
	if !hs.expanded[0] {
		t.Error("expected first run to be expanded")
	}

	view := hs.View(80, 24)
	if !strings.Contains(view, "Kavya") || !strings.Contains(view, "Best streak 5") {
		t.Errorf("expanded detail missing:\n%s", view)
	}

	// Toggle closed again.
	scr, _ = hs.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	hs = scr.(*HistoryScreen)
	if hs.expanded[0] {
		t.Error("expected detail to collapse")
	}
}

func TestHistoryScreen_EscPops(t *testing.T) {
	s := loadedScreen()
	var scr screen.Screen = s
	_, cmd := scr.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on esc")
	}
}
