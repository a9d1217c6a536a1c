package question

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeBank(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_DefaultBank(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "questions.json", `[
		{"question": "What does 'Pani' mean?", "correct": "Water", "options": ["Water", "Fire", "Earth", "Air"]},
		{"id": "ghar", "question": "What does 'Ghar' mean?", "correct": "Home", "questionType": "fill-in-blank"}
	]`)

	l := NewLoader(LoaderConfig{Dir: dir})
	questions, err := l.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("len(questions) = %d, want 2", len(questions))
	}
	if questions[0].ID != "q0" || questions[0].Type != TypeMCQ {
		t.Errorf("first question not normalized: id=%q type=%q", questions[0].ID, questions[0].Type)
	}
	if questions[1].ID != "ghar" || questions[1].Type != TypeFillInBlank {
		t.Errorf("second question lost authored fields: id=%q type=%q", questions[1].ID, questions[1].Type)
	}
}

func TestLoad_StudentBank(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "questions-student2.json", `[{"question": "Q", "correct": "A"}]`)

	l := NewLoader(LoaderConfig{Dir: dir})
	questions, err := l.Load(context.Background(), "2")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("len(questions) = %d, want 1", len(questions))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	l := NewLoader(LoaderConfig{Dir: t.TempDir()})
	if _, err := l.Load(context.Background(), ""); err == nil {
		t.Error("expected error for missing bank file")
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "questions.json", `{"not": "an array"`)

	l := NewLoader(LoaderConfig{Dir: dir})
	if _, err := l.Load(context.Background(), ""); err == nil {
		t.Error("expected parse error, got nil")
	}
}

func TestResolveStudent(t *testing.T) {
	l := NewLoader(LoaderConfig{})

	tests := []struct {
		explicit, name, want string
	}{
		{"7", "anaya", "7"}, // explicit selector wins
		{"", "Anaya", "1"},
		{"", "  kavya  ", "2"},
		{"", "mamta", "3"},
		{"", "someone else", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := l.ResolveStudent(tt.explicit, tt.name); got != tt.want {
			t.Errorf("ResolveStudent(%q, %q) = %q, want %q", tt.explicit, tt.name, got, tt.want)
		}
	}
}

func TestSourceFor(t *testing.T) {
	if got := SourceFor(""); got != "questions.json" {
		t.Errorf("SourceFor(\"\") = %q", got)
	}
	if got := SourceFor("3"); got != "questions-student3.json" {
		t.Errorf("SourceFor(\"3\") = %q", got)
	}
}
