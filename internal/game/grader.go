package game

import "strings"

// Feedback is the outcome shown to the child after an answer
type Feedback string

const (
	FeedbackCorrect  Feedback = "correct"
	FeedbackAlmost   Feedback = "almost"
	FeedbackTryAgain Feedback = "try_again"
	FeedbackContinue Feedback = "continue"
)

// Match percentage thresholds for full and half credit
const (
	fullCreditMatch = 85
	halfCreditMatch = 60
)

// GradeResult is the verdict for a single dialogue node answer
type GradeResult struct {
	Correct         bool     `json:"correct"`
	Score           float64  `json:"score"`
	Feedback        Feedback `json:"feedback"`
	MatchPercentage int      `json:"match_percentage"`
}

// Grader converts a raw submission and a node's expected response into a
// correctness verdict, a partial score, and feedback. It is a pure
// function over its inputs plus the scorer call.
type Grader struct {
	scorer Scorer
}

// NewGrader creates a grader backed by the given similarity scorer
func NewGrader(scorer Scorer) *Grader {
	return &Grader{scorer: scorer}
}

// Grade scores submitted text against the node's expected response.
// A missing submission grades as the empty string.
func (g *Grader) Grade(submitted, expected string, maxPoints int) GradeResult {
	expected = normalize(expected)
	if expected == "" {
		// Narrator and informational nodes require no response
		return GradeResult{
			Correct:         true,
			Score:           0,
			Feedback:        FeedbackContinue,
			MatchPercentage: 100,
		}
	}

	match := g.scorer.Score(normalize(submitted), expected)

	switch {
	case match >= fullCreditMatch:
		return GradeResult{
			Correct:         true,
			Score:           float64(maxPoints),
			Feedback:        FeedbackCorrect,
			MatchPercentage: match,
		}
	case match >= halfCreditMatch:
		return GradeResult{
			Correct:         true,
			Score:           float64(maxPoints) * 0.5,
			Feedback:        FeedbackAlmost,
			MatchPercentage: match,
		}
	default:
		return GradeResult{
			Correct:         false,
			Score:           0,
			Feedback:        FeedbackTryAgain,
			MatchPercentage: match,
		}
	}
}

// normalize case-folds and trims a string for comparison
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
