package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/question"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func testSnapshotData(version int) SnapshotData {
	q := &question.Question{
		Prompt:  "What does 'namaste' mean?",
		Correct: "Hello",
		Topic:   "greetings",
	}
	q.Normalize(0)
	return SnapshotData{
		Version:       version,
		Player:        "Anaya",
		Questions:     []*question.Question{q},
		Performance:   game.NewPerformance(),
		HighestScore:  7,
		HighestStreak: 4,
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	// Save a snapshot.
	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data:      testSnapshotData(SnapshotVersion),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// Retrieve it.
	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if snap.Data.Player != "Anaya" {
		t.Errorf("player = %q, want Anaya", snap.Data.Player)
	}
	if snap.Data.HighestScore != 7 {
		t.Errorf("highest score = %d, want 7", snap.Data.HighestScore)
	}
	if len(snap.Data.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(snap.Data.Questions))
	}
	if snap.Data.Questions[0].Correct != "Hello" {
		t.Errorf("question answer = %q, want Hello", snap.Data.Questions[0].Correct)
	}
	if snap.Data.Questions[0].SRS.EaseFactor != 2.5 {
		t.Errorf("ease factor = %v, want 2.5", snap.Data.Questions[0].SRS.EaseFactor)
	}
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      testSnapshotData(i + 1),
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 3 {
		t.Errorf("sequence = %d, want 3", snap.Sequence)
	}
	if snap.Data.Version != 3 {
		t.Errorf("data.version = %d, want 3", snap.Data.Version)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      testSnapshotData(SnapshotVersion),
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// Prune to keep 5.
	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	count, err := s.Client().Snapshot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}

	// Latest should still be sequence 7.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}
}

func TestSnapshotPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 2; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      testSnapshotData(SnapshotVersion),
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// Prune with keep=5 should be a no-op.
	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	count, err := s.Client().Snapshot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("remaining snapshots = %d, want 2", count)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAppendAnswerAndSessionEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendSession(ctx, SessionEventData{
		SessionID: "sess-1",
		Action:    "start",
		Player:    "Kavya",
	})
	if err != nil {
		t.Fatalf("append session start: %v", err)
	}

	err = repo.AppendAnswer(ctx, AnswerEventData{
		SessionID:     "sess-1",
		QuestionID:    "q0",
		Topic:         "greetings",
		QuestionType:  "mcq",
		QuestionText:  "What does 'namaste' mean?",
		CorrectAnswer: "Hello",
		PlayerAnswer:  "Hello",
		Correct:       true,
		TimeSecs:      4.5,
		MasteryLevel:  60,
	})
	if err != nil {
		t.Fatalf("append answer: %v", err)
	}

	err = repo.AppendSession(ctx, SessionEventData{
		SessionID:       "sess-1",
		Action:          "end",
		Player:          "Kavya",
		QuestionsServed: 1,
		CorrectAnswers:  1,
		Score:           1,
		MaxStreak:       1,
		DurationSecs:    12,
	})
	if err != nil {
		t.Fatalf("append session end: %v", err)
	}

	answers, err := s.Client().AnswerEvent.Query().All(ctx)
	if err != nil {
		t.Fatalf("query answers: %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("answer events = %d, want 1", len(answers))
	}
	if answers[0].Topic != "greetings" || !answers[0].Correct {
		t.Errorf("unexpected answer event: %+v", answers[0])
	}

	sessions, err := s.Client().SessionEvent.Query().All(ctx)
	if err != nil {
		t.Fatalf("query sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("session events = %d, want 2", len(sessions))
	}

	// Sequence ordering spans both tables.
	if !(sessions[0].Sequence < answers[0].Sequence && answers[0].Sequence < sessions[1].Sequence) {
		t.Errorf("cross-table sequence not monotonic: %d, %d, %d",
			sessions[0].Sequence, answers[0].Sequence, sessions[1].Sequence)
	}
}

func TestLLMEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "answer-review", InputTokens: 100, OutputTokens: 50, LatencyMs: 900, Success: true, RequestBody: "[user]\nreview this", ResponseBody: `{"feedback":"ok"}`},
		{Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "session-report", InputTokens: 200, OutputTokens: 80, LatencyMs: 1100, Success: true},
		{Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "answer-review", InputTokens: 120, OutputTokens: 0, LatencyMs: 300, Success: false, ErrorMessage: "rate limited"},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("events = %d, want 2", len(got))
	}
	// Most recent first.
	if got[0].Purpose != "answer-review" || got[0].Success {
		t.Errorf("unexpected first event: %+v", got[0])
	}

	one, err := repo.GetLLMEvent(ctx, got[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if one == nil || one.Purpose != "session-report" {
		t.Errorf("get returned %+v, want session-report event", one)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestLLMUsageAggregation(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	seed := []LLMRequestEventData{
		{Provider: "anthropic", Model: "model-a", Purpose: "answer-review", InputTokens: 100, OutputTokens: 40, LatencyMs: 1000, Success: true},
		{Provider: "anthropic", Model: "model-a", Purpose: "answer-review", InputTokens: 300, OutputTokens: 60, LatencyMs: 2000, Success: true},
		{Provider: "anthropic", Model: "model-b", Purpose: "session-report", InputTokens: 50, OutputTokens: 20, LatencyMs: 500, Success: true},
	}
	for i, e := range seed {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %d, want 2", len(byPurpose))
	}
	// Sorted by key: answer-review first.
	ar := byPurpose[0]
	if ar.Purpose != "answer-review" || ar.Calls != 2 || ar.InputTokens != 400 || ar.OutputTokens != 100 {
		t.Errorf("answer-review stat = %+v", ar)
	}
	if ar.AvgLatencyMs != 1500 {
		t.Errorf("avg latency = %d, want 1500", ar.AvgLatencyMs)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("models = %d, want 2", len(byModel))
	}
	if byModel[0].Model != "model-a" || byModel[0].Calls != 2 {
		t.Errorf("model-a stat = %+v", byModel[0])
	}
}

func TestQuerySessions(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		sessID := fmt.Sprintf("sess-%d", i)
		if err := repo.AppendSession(ctx, SessionEventData{SessionID: sessID, Action: "start", Player: "Kavya"}); err != nil {
			t.Fatalf("append start %d: %v", i, err)
		}
		if err := repo.AppendSession(ctx, SessionEventData{
			SessionID:       sessID,
			Action:          "end",
			Player:          "Kavya",
			QuestionsServed: 10,
			CorrectAnswers:  7 + i,
			Score:           7 + i,
			MaxStreak:       3,
			DurationSecs:    90,
		}); err != nil {
			t.Fatalf("append end %d: %v", i, err)
		}
	}

	all, err := repo.QuerySessions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("records = %d, want 6", len(all))
	}

	// Most recent first.
	if all[0].Action != "end" || all[0].SessionID != "sess-2" {
		t.Errorf("newest record = %+v", all[0])
	}
	for i := 1; i < len(all); i++ {
		if all[i].Sequence >= all[i-1].Sequence {
			t.Errorf("sequence not descending at %d: %d >= %d", i, all[i].Sequence, all[i-1].Sequence)
		}
	}

	limited, err := repo.QuerySessions(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limited records = %d, want 2", len(limited))
	}

	after, err := repo.QuerySessions(ctx, QueryOpts{After: all[2].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 2 {
		t.Fatalf("after records = %d, want 2", len(after))
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	// Check that the snapshots table exists.
	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='snapshots'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "snapshots" {
		t.Errorf("table name = %q, want 'snapshots'", name)
	}
}
