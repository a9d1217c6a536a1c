package home

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/question"
	"github.com/abhisek/fluence/internal/review"
	"github.com/abhisek/fluence/internal/router"
	"github.com/abhisek/fluence/internal/screen"
	"github.com/abhisek/fluence/internal/speech"
	"github.com/abhisek/fluence/internal/store"
)

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

const testBankJSON = `[
	{"question": "What does 'Namaste' mean?", "correct": "Hello",
	 "options": ["Hello", "Goodbye"], "questionType": "mcq", "topic": "greetings"},
	{"question": "Translate 'Ghar'.", "correct": "Home",
	 "questionType": "fill-in-blank", "topic": "household"}
]`

func testDeps(t *testing.T, snaps store.SnapshotRepo) Deps {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "questions.json"), []byte(testBankJSON), 0644); err != nil {
		t.Fatal(err)
	}
	// "Kavya" resolves to student 2 via question.DefaultAliases.
	if err := os.WriteFile(filepath.Join(dir, "questions-student2.json"), []byte(testBankJSON), 0644); err != nil {
		t.Fatal(err)
	}
	return Deps{
		Loader: question.NewLoader(question.LoaderConfig{Dir: dir}),
		Snaps:  snaps,
		Review: review.NewDisabled(),
		Speech: speech.NewManager(nil, nil),
	}
}

func enterName(t *testing.T, h *HomeScreen, name string) *HomeScreen {
	t.Helper()
	h.input.Model.SetValue(name)
	var scr screen.Screen = h
	scr, _ = scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return scr.(*HomeScreen)
}

func TestHomeScreen_NameStage(t *testing.T) {
	h := New(testDeps(t, &mockSnapshotRepo{}))
	if h.stage != stageName {
		t.Fatal("expected to start at the name prompt")
	}

	// Blank names are rejected.
	h.input.Model.SetValue("   ")
	var scr screen.Screen = h
	scr, _ = scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if scr.(*HomeScreen).stage != stageName {
		t.Error("blank name should not advance")
	}

	h = enterName(t, h, "Kavya")
	if h.stage != stageMenu {
		t.Error("expected menu after entering a name")
	}
	if h.state.PlayerName != "Kavya" {
		t.Errorf("PlayerName = %q", h.state.PlayerName)
	}
}

func TestHomeScreen_SnapshotRestore(t *testing.T) {
	snaps := &mockSnapshotRepo{}
	saved := []*question.Question{{ID: "namaste", Prompt: "What does 'Namaste' mean?", Correct: "Hello"}}
	perf := game.NewPerformance()
	snaps.snapshots = append(snaps.snapshots, &store.Snapshot{
		Timestamp: time.Now(),
		Data: store.SnapshotData{
			Version:       store.SnapshotVersion,
			Player:        "Kavya",
			Questions:     saved,
			Performance:   perf,
			HighestScore:  21,
			HighestStreak: 8,
		},
	})

	h := New(testDeps(t, snaps))
	if h.state.HighestScore != 21 || h.state.HighestStreak != 8 {
		t.Errorf("bests = %d/%d, want 21/8", h.state.HighestScore, h.state.HighestStreak)
	}
	if h.input.Value() != "Kavya" {
		t.Errorf("prefilled name = %q", h.input.Value())
	}
	if len(h.snapQuestions) != 1 {
		t.Errorf("snapQuestions = %d, want 1", len(h.snapQuestions))
	}
}

func TestHomeScreen_StartQuizLoadsBankAndPushes(t *testing.T) {
	h := New(testDeps(t, &mockSnapshotRepo{}))
	h = enterName(t, h, "Kavya")

	// START QUIZ is the first menu item.
	var scr screen.Screen = h
	scr, cmd := scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a bank-load command")
	}

	msg := cmd()
	loaded, ok := msg.(bankLoadedMsg)
	if !ok {
		t.Fatalf("msg = %T, want bankLoadedMsg", msg)
	}
	if loaded.err != nil {
		t.Fatalf("bank load error: %v", loaded.err)
	}
	if len(loaded.bank) != 2 {
		t.Fatalf("bank size = %d, want 2", len(loaded.bank))
	}

	scr, cmd = scr.Update(loaded)
	if cmd == nil {
		t.Fatal("expected a push command after bank load")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("expected PushScreenMsg for the session screen")
	}

	hs := scr.(*HomeScreen)
	if hs.state.PlayerName != "Kavya" {
		t.Errorf("PlayerName after reset = %q", hs.state.PlayerName)
	}
}

func TestHomeScreen_View(t *testing.T) {
	h := New(testDeps(t, &mockSnapshotRepo{}))
	view := h.View(100, 30)
	if !strings.Contains(view, "What's your name?") {
		t.Error("view missing name prompt")
	}

	h = enterName(t, h, "Kavya")
	view = h.View(100, 30)
	if !strings.Contains(view, "START QUIZ") {
		t.Error("view missing menu")
	}
}
