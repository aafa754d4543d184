package usecase

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/mealwise/backend/internal/domain"
)

// closeMatchCutoff is the minimum similarity ratio for the fuzzy fallback.
// Candidates below it are ignored, matching difflib-style close matching.
const closeMatchCutoff = 0.6

// ChooseBestMatch picks the candidate that best matches the query, in
// priority order: first candidate whose description contains the case-folded
// query as a substring, then the closest lexical match above the similarity
// cutoff, then the first candidate. Returns nil when the list is empty.
// Exact-substring beats fuzzy similarity beats arbitrary-first, so ties break
// the same way on every run.
func ChooseBestMatch(query string, candidates []domain.FoodRecord) *domain.FoodRecord {
	if len(candidates) == 0 {
		return nil
	}

	qlow := strings.ToLower(query)
	for i := range candidates {
		if strings.Contains(strings.ToLower(candidates[i].Description), qlow) {
			return &candidates[i]
		}
	}

	if idx := closestMatch(qlow, candidates); idx >= 0 {
		return &candidates[idx]
	}

	return &candidates[0]
}

// closestMatch returns the index of the candidate whose description is the
// closest lexical match to the query, or -1 when none reaches the cutoff.
// Ties keep the earliest candidate.
func closestMatch(query string, candidates []domain.FoodRecord) int {
	best := -1
	bestRatio := 0.0

	for i := range candidates {
		ratio := similarity(query, strings.ToLower(candidates[i].Description))
		if ratio > bestRatio {
			bestRatio = ratio
			best = i
		}
	}

	if bestRatio < closeMatchCutoff {
		return -1
	}
	return best
}

// similarity computes a 0-1 ratio from the levenshtein edit distance between
// the two strings. The distance is in runes, so the length must be too.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	longest := utf8.RuneCountInString(a)
	if l := utf8.RuneCountInString(b); l > longest {
		longest = l
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
