package game

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"
)

func testRng() *rand.Rand {
	return rand.New(rand.NewPCG(7, 7))
}

func TestAssemble_ExcludesFutureQuestions(t *testing.T) {
	bank := makeBank(4)
	bank[1].SRS.NextReviewDate = testNow.Add(48 * time.Hour)
	bank[3].SRS.NextReviewDate = testNow.Add(-time.Hour)

	picked := Assemble(bank, testNow, testRng())

	if len(picked) != 3 {
		t.Fatalf("len(picked) = %d, want 3", len(picked))
	}
	for _, q := range picked {
		if q.ID == "q1" {
			t.Error("not-yet-due question included in session")
		}
	}
}

func TestAssemble_CapsAtTwenty(t *testing.T) {
	picked := Assemble(makeBank(50), testNow, testRng())
	if len(picked) != MaxSessionQuestions {
		t.Errorf("len(picked) = %d, want %d", len(picked), MaxSessionQuestions)
	}
}

func TestAssemble_ShortIntervalsFirst(t *testing.T) {
	bank := makeBank(6)
	intervals := []int{30, 1, 6, 1, 30, 6}
	for i, q := range bank {
		q.SRS.Interval = intervals[i]
	}

	picked := Assemble(bank, testNow, testRng())

	prev := 0
	for _, q := range picked {
		if q.SRS.Interval < prev {
			t.Fatalf("interval order violated: %d after %d", q.SRS.Interval, prev)
		}
		prev = q.SRS.Interval
	}
}

func TestAssemble_DoesNotMutateBank(t *testing.T) {
	bank := makeBank(30)
	wantIDs := make([]string, len(bank))
	for i, q := range bank {
		wantIDs[i] = q.ID
	}

	Assemble(bank, testNow, testRng())

	for i, q := range bank {
		if q.ID != wantIDs[i] {
			t.Fatal("Assemble reordered the bank slice")
		}
	}
}

func TestAssemble_EmptyBank(t *testing.T) {
	if picked := Assemble(nil, testNow, testRng()); len(picked) != 0 {
		t.Errorf("len(picked) = %d, want 0", len(picked))
	}
}

func TestAssemble_AllQuestionsWhenFewerThanCap(t *testing.T) {
	picked := Assemble(makeBank(5), testNow, testRng())
	seen := make(map[string]bool)
	for _, q := range picked {
		seen[q.ID] = true
	}
	for i := 0; i < 5; i++ {
		if !seen[fmt.Sprintf("q%d", i)] {
			t.Errorf("question q%d missing from session", i)
		}
	}
}
