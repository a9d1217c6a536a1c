package game

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/abhisek/fluence/internal/question"
)

// Assemble picks and orders the questions for one run: the due subset of
// the bank, shortest SRS interval first with ties in random order, capped
// at MaxSessionQuestions. Questions the learner is closest to forgetting
// come up first; the shuffle keeps equal-interval questions from always
// appearing in authored order.
func Assemble(bank []*question.Question, now time.Time, rng *rand.Rand) []*question.Question {
	due := question.DueQuestions(bank, now)

	picked := make([]*question.Question, len(due))
	copy(picked, due)

	// Shuffle first, then stable-sort by interval: order within each
	// interval bucket stays random.
	rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].SRS.Interval < picked[j].SRS.Interval
	})

	if len(picked) > MaxSessionQuestions {
		picked = picked[:MaxSessionQuestions]
	}
	return picked
}
