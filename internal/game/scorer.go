package game

import (
	"github.com/agext/levenshtein"
)

// Scorer reports how closely a submitted answer matches the expected one
// as a percentage from 0 to 100. Implementations must be deterministic
// for identical inputs and free of side effects.
type Scorer interface {
	Score(submitted, expected string) int
}

// LevenshteinScorer scores answers by normalized edit distance
type LevenshteinScorer struct{}

// NewLevenshteinScorer creates the default similarity scorer
func NewLevenshteinScorer() LevenshteinScorer {
	return LevenshteinScorer{}
}

func (LevenshteinScorer) Score(submitted, expected string) int {
	if submitted == expected {
		return 100
	}
	return int(levenshtein.Similarity(submitted, expected, nil) * 100)
}
