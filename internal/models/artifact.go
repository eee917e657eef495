package models

import "time"

// Artifact is a collectible cultural reward attached to a level
type Artifact struct {
	ID          int64  `json:"id"`
	LevelID     int64  `json:"level_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// ArtifactGrant records that a child has unlocked an artifact.
// At most one grant exists per (child, artifact) pair, enforced by a
// unique constraint in the store.
type ArtifactGrant struct {
	ID         int64     `json:"id"`
	ChildID    int64     `json:"child_id"`
	ArtifactID int64     `json:"artifact_id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}
