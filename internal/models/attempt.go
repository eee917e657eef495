package models

import "time"

// ScenarioAttempt is an immutable record of one scenario play-through.
// A child may attempt the same scenario any number of times; progression
// only cares whether any passed attempt exists.
type ScenarioAttempt struct {
	ID          int64     `json:"id"`
	ChildID     int64     `json:"child_id"`
	ScenarioID  int64     `json:"scenario_id"`
	ScoreEarned int       `json:"score_earned"`
	MaxScore    int       `json:"max_score"`
	StarsEarned int       `json:"stars_earned"`
	Passed      bool      `json:"passed"`
	AttemptedAt time.Time `json:"attempted_at"`
}
