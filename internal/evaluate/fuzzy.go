package evaluate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// DefaultThreshold is the similarity above which a spoken answer is
// accepted. Tuned to absorb typical speech-recognition noise without
// accepting wrong words.
const DefaultThreshold = 0.8

var (
	punctuation = regexp.MustCompile("[.,/#!$%^&*;:{}=\\-_`~()]")
	whitespace  = regexp.MustCompile(`\s+`)
)

// normalize lowercases, strips punctuation, and collapses runs of
// whitespace so that transcript artifacts don't count as differences.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = punctuation.ReplaceAllString(s, "")
	return whitespace.ReplaceAllString(s, " ")
}

// Similarity returns a 0..1 score for how close two utterances are after
// normalization: 1 - editDistance/maxLen. Two empty strings score 1;
// an empty string against a non-empty one scores 0.
func Similarity(a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if na == nb {
		return 1
	}

	maxLen := max(utf8.RuneCountInString(na), utf8.RuneCountInString(nb))
	if maxLen == 0 {
		return 1
	}

	distance := levenshtein.Distance(na, nb, nil)
	return 1 - float64(distance)/float64(maxLen)
}
