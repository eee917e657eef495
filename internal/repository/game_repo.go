package repository

import (
	"database/sql"
	"time"

	"kulture/internal/database"
	"kulture/internal/models"
)

// GameRepository handles attempt, artifact and action-card database
// operations for the progression engine
type GameRepository struct {
	db *database.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{db: db}
}

// InsertAttempt persists a scenario attempt and returns its ID.
// Attempts are insert-only; they are never updated or deleted.
func (r *GameRepository) InsertAttempt(attempt *models.ScenarioAttempt) (int64, error) {
	query := `
		INSERT INTO child_scenario_attempts
			(child_id, scenario_id, score_earned, max_score, stars_earned, passed)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	return r.db.ExecReturningID(query,
		attempt.ChildID,
		attempt.ScenarioID,
		attempt.ScoreEarned,
		attempt.MaxScore,
		attempt.StarsEarned,
		attempt.Passed,
	)
}

// PassedScenarioIDs retrieves the set of scenarios the child has passed
// at least once
func (r *GameRepository) PassedScenarioIDs(childID int64) (map[int64]bool, error) {
	query := `
		SELECT DISTINCT scenario_id
		FROM child_scenario_attempts
		WHERE child_id = ? AND passed = ` + r.db.Dialect.BoolValue(true)

	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passed := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		passed[id] = true
	}

	return passed, rows.Err()
}

// LevelIDForScenario resolves the level that owns a scenario.
// Returns 0 when the scenario does not exist.
func (r *GameRepository) LevelIDForScenario(scenarioID int64) (int64, error) {
	query := "SELECT level_id FROM scenarios WHERE id = ?"

	var levelID int64
	err := r.db.QueryRow(query, scenarioID).Scan(&levelID)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return levelID, nil
}

// LevelScenarioIDs retrieves the full scenario-ID set of a level
func (r *GameRepository) LevelScenarioIDs(levelID int64) ([]int64, error) {
	query := "SELECT id FROM scenarios WHERE level_id = ? ORDER BY order_index ASC"

	rows, err := r.db.Query(query, levelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// ArtifactForLevel retrieves the reward configured for a level, or nil
// when the level has none
func (r *GameRepository) ArtifactForLevel(levelID int64) (*models.Artifact, error) {
	query := `
		SELECT id, level_id, name, COALESCE(description, ''), COALESCE(image_url, '')
		FROM artifacts
		WHERE level_id = ?
	`

	artifact := &models.Artifact{}
	err := r.db.QueryRow(query, levelID).Scan(
		&artifact.ID, &artifact.LevelID, &artifact.Name,
		&artifact.Description, &artifact.ImageURL,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return artifact, nil
}

// InsertArtifactGrant records that a child unlocked an artifact and
// reports whether the grant was newly created. The child_artifacts table
// carries a unique constraint on (child_id, artifact_id), so concurrent
// unlock attempts cannot produce duplicate grants; the loser of the race
// simply sees inserted=false.
func (r *GameRepository) InsertArtifactGrant(childID, artifactID int64) (bool, error) {
	query := "INSERT INTO child_artifacts (child_id, artifact_id) VALUES (?, ?)"
	return r.db.ExecInsertIgnore(query, childID, artifactID)
}

// ArtifactsForChild retrieves all artifacts a child has unlocked, newest
// first
func (r *GameRepository) ArtifactsForChild(childID int64) ([]models.Artifact, error) {
	query := `
		SELECT a.id, a.level_id, a.name, COALESCE(a.description, ''), COALESCE(a.image_url, '')
		FROM artifacts a
		JOIN child_artifacts ca ON ca.artifact_id = a.id
		WHERE ca.child_id = ?
		ORDER BY ca.unlocked_at DESC
	`

	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artifacts []models.Artifact
	for rows.Next() {
		var a models.Artifact
		if err := rows.Scan(&a.ID, &a.LevelID, &a.Name, &a.Description, &a.ImageURL); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}

	return artifacts, rows.Err()
}

// InsertCardCompletion records that a child completed an action card
func (r *GameRepository) InsertCardCompletion(childID, cardID int64) (*models.CardCompletion, error) {
	query := "INSERT INTO child_action_card_completions (child_id, card_id) VALUES (?, ?)"

	id, err := r.db.ExecReturningID(query, childID, cardID)
	if err != nil {
		return nil, err
	}

	return &models.CardCompletion{
		ID:          id,
		ChildID:     childID,
		CardID:      cardID,
		CompletedAt: time.Now(),
	}, nil
}
