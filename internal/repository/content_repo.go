package repository

import (
	"database/sql"
	"strings"

	"kulture/internal/database"
	"kulture/internal/models"
)

// ContentRepository handles read access to the authored content tree
// (modules, levels, scenarios, dialogue nodes)
type ContentRepository struct {
	db *database.DB
}

// NewContentRepository creates a new content repository
func NewContentRepository(db *database.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// ModulesByLanguage retrieves all modules for a language with their
// levels attached, both in order-index order
func (r *ContentRepository) ModulesByLanguage(language string) ([]models.Module, error) {
	query := `
		SELECT id, title, COALESCE(description, ''), language, order_index
		FROM modules
		WHERE language = ?
		ORDER BY order_index ASC
	`

	rows, err := r.db.Query(query, strings.ToLower(language))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var modules []models.Module
	for rows.Next() {
		var m models.Module
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Language, &m.OrderIndex); err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range modules {
		levels, err := r.LevelsByModule(modules[i].ID)
		if err != nil {
			return nil, err
		}
		modules[i].Levels = levels
	}

	return modules, nil
}

// LevelsByModule retrieves a module's levels in order-index order
func (r *ContentRepository) LevelsByModule(moduleID int64) ([]models.Level, error) {
	query := `
		SELECT id, module_id, title, COALESCE(description, ''), order_index, pass_threshold_points
		FROM levels
		WHERE module_id = ?
		ORDER BY order_index ASC
	`

	rows, err := r.db.Query(query, moduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []models.Level
	for rows.Next() {
		var l models.Level
		if err := rows.Scan(&l.ID, &l.ModuleID, &l.Title, &l.Description, &l.OrderIndex, &l.PassThresholdPoints); err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}

	return levels, rows.Err()
}

// LevelByID retrieves a level by ID, or nil if not found
func (r *ContentRepository) LevelByID(levelID int64) (*models.Level, error) {
	query := `
		SELECT id, module_id, title, COALESCE(description, ''), order_index, pass_threshold_points
		FROM levels
		WHERE id = ?
	`

	level := &models.Level{}
	err := r.db.QueryRow(query, levelID).Scan(
		&level.ID, &level.ModuleID, &level.Title, &level.Description,
		&level.OrderIndex, &level.PassThresholdPoints,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return level, nil
}

// ScenariosByLevel retrieves a level's scenarios in order-index order
func (r *ContentRepository) ScenariosByLevel(levelID int64) ([]models.Scenario, error) {
	query := `
		SELECT id, level_id, title, COALESCE(description, ''), type, order_index
		FROM scenarios
		WHERE level_id = ?
		ORDER BY order_index ASC
	`

	rows, err := r.db.Query(query, levelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenarios []models.Scenario
	for rows.Next() {
		var s models.Scenario
		if err := rows.Scan(&s.ID, &s.LevelID, &s.Title, &s.Description, &s.Type, &s.OrderIndex); err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}

	return scenarios, rows.Err()
}

// ScenarioByID retrieves a scenario by ID, or nil if not found
func (r *ContentRepository) ScenarioByID(scenarioID int64) (*models.Scenario, error) {
	query := `
		SELECT id, level_id, title, COALESCE(description, ''), type, order_index
		FROM scenarios
		WHERE id = ?
	`

	scenario := &models.Scenario{}
	err := r.db.QueryRow(query, scenarioID).Scan(
		&scenario.ID, &scenario.LevelID, &scenario.Title,
		&scenario.Description, &scenario.Type, &scenario.OrderIndex,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return scenario, nil
}

// LevelScenarioIDs retrieves the IDs of all scenarios under a level,
// in order-index order
func (r *ContentRepository) LevelScenarioIDs(levelID int64) ([]int64, error) {
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

// NodesByScenario retrieves a scenario's dialogue nodes in script order
func (r *ContentRepository) NodesByScenario(scenarioID int64) ([]models.DialogueNode, error) {
	query := `
		SELECT id, scenario_id, persona_id, text, COALESCE(audio_url, ''),
		       speaker_type, COALESCE(expected_response, ''), points_max, order_index
		FROM scenario_nodes
		WHERE scenario_id = ?
		ORDER BY order_index ASC
	`

	rows, err := r.db.Query(query, scenarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []models.DialogueNode
	for rows.Next() {
		var node models.DialogueNode
		var personaID sql.NullInt64
		err := rows.Scan(
			&node.ID, &node.ScenarioID, &personaID, &node.Text, &node.AudioURL,
			&node.SpeakerType, &node.ExpectedResponse, &node.PointsMax, &node.OrderIndex,
		)
		if err != nil {
			return nil, err
		}
		if personaID.Valid {
			node.PersonaID = &personaID.Int64
		}
		nodes = append(nodes, node)
	}

	return nodes, rows.Err()
}

// ActionCardsByLanguage retrieves the action card catalog for one language
func (r *ContentRepository) ActionCardsByLanguage(language string) ([]models.ActionCard, error) {
	query := `
		SELECT id, title, COALESCE(description, ''), language
		FROM action_cards
		WHERE language = ?
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query, language)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.ActionCard
	for rows.Next() {
		var card models.ActionCard
		if err := rows.Scan(&card.ID, &card.Title, &card.Description, &card.Language); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, rows.Err()
}

// NodeByID retrieves a dialogue node by ID, or nil if not found
func (r *ContentRepository) NodeByID(nodeID int64) (*models.DialogueNode, error) {
	query := `
		SELECT id, scenario_id, persona_id, text, COALESCE(audio_url, ''),
		       speaker_type, COALESCE(expected_response, ''), points_max, order_index
		FROM scenario_nodes
		WHERE id = ?
	`

	node := &models.DialogueNode{}
	var personaID sql.NullInt64
	err := r.db.QueryRow(query, nodeID).Scan(
		&node.ID, &node.ScenarioID, &personaID, &node.Text, &node.AudioURL,
		&node.SpeakerType, &node.ExpectedResponse, &node.PointsMax, &node.OrderIndex,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if personaID.Valid {
		node.PersonaID = &personaID.Int64
	}
	return node, nil
}
