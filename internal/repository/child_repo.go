package repository

import (
	"database/sql"
	"strings"

	"kulture/internal/database"
	"kulture/internal/models"
)

// ChildRepository handles child profile database operations
type ChildRepository struct {
	db *database.DB
}

// NewChildRepository creates a new child repository
func NewChildRepository(db *database.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

const childColumns = `id, parent_id, display_name, age, language, gender,
	COALESCE(avatar_url, ''), respect_score, current_level, streak,
	created_at, updated_at`

// CreateChild creates a new child profile
func (r *ChildRepository) CreateChild(parentID int64, displayName string, age int, language, gender, avatarURL string) (*models.Child, error) {
	query := `
		INSERT INTO children (parent_id, display_name, age, language, gender, avatar_url)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, parentID, displayName, age,
		strings.ToLower(language), strings.ToLower(gender), avatarURL)
	if err != nil {
		return nil, err
	}

	return r.GetChildByID(id)
}

// GetChildByID retrieves a child by ID, or nil if not found
func (r *ChildRepository) GetChildByID(id int64) (*models.Child, error) {
	query := "SELECT " + childColumns + " FROM children WHERE id = ?"
	return r.scanChild(r.db.QueryRow(query, id))
}

// GetChildForParent retrieves a child only if it belongs to the given
// parent, or nil if it does not exist or is owned by someone else
func (r *ChildRepository) GetChildForParent(childID, parentID int64) (*models.Child, error) {
	query := "SELECT " + childColumns + " FROM children WHERE id = ? AND parent_id = ?"
	return r.scanChild(r.db.QueryRow(query, childID, parentID))
}

// ListChildrenByParent retrieves all child profiles owned by a parent
func (r *ChildRepository) ListChildrenByParent(parentID int64) ([]models.Child, error) {
	query := "SELECT " + childColumns + " FROM children WHERE parent_id = ? ORDER BY created_at ASC"

	rows, err := r.db.Query(query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []models.Child
	for rows.Next() {
		var child models.Child
		if err := scanChildRow(rows.Scan, &child); err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	return children, rows.Err()
}

// UpdateChildCounters adds the deltas to a child's cumulative score and
// level counter in a single statement, so concurrent attempts cannot
// lose an increment
func (r *ChildRepository) UpdateChildCounters(childID int64, scoreDelta, levelDelta int) error {
	query := `
		UPDATE children
		SET respect_score = respect_score + ?,
		    current_level = current_level + ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, scoreDelta, levelDelta, childID)
	return err
}

// AvatarURL looks up the avatar image for a language/gender pair.
// Returns empty string when no avatar is configured.
func (r *ChildRepository) AvatarURL(language, gender string) (string, error) {
	query := "SELECT image_url FROM avatars WHERE language = ? AND gender = ?"

	var url string
	err := r.db.QueryRow(query, strings.ToLower(language), strings.ToLower(gender)).Scan(&url)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return url, nil
}

func (r *ChildRepository) scanChild(row *sql.Row) (*models.Child, error) {
	child := &models.Child{}
	err := scanChildRow(row.Scan, child)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return child, nil
}

func scanChildRow(scan func(dest ...interface{}) error, child *models.Child) error {
	return scan(
		&child.ID,
		&child.ParentID,
		&child.DisplayName,
		&child.Age,
		&child.Language,
		&child.Gender,
		&child.AvatarURL,
		&child.RespectScore,
		&child.CurrentLevel,
		&child.Streak,
		&child.CreatedAt,
		&child.UpdatedAt,
	)
}
