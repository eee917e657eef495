package models

import "time"

// ActionCard is a standalone cultural activity outside the scenario tree
type ActionCard struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language"`
}

// CardCompletion records that a child completed an action card
type CardCompletion struct {
	ID          int64     `json:"id"`
	ChildID     int64     `json:"child_id"`
	CardID      int64     `json:"card_id"`
	CompletedAt time.Time `json:"completed_at"`
}
