package models

import "time"

// Child represents a child profile owned by a parent
type Child struct {
	ID           int64     `json:"id"`
	ParentID     int64     `json:"parent_id"`
	DisplayName  string    `json:"display_name"`
	Age          int       `json:"age"`
	Language     string    `json:"language"`
	Gender       string    `json:"gender"` // 'boy' or 'girl'
	AvatarURL    string    `json:"avatar_url"`
	RespectScore int       `json:"respect_score"`
	CurrentLevel int       `json:"current_level"`
	Streak       int       `json:"streak"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
