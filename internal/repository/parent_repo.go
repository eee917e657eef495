package repository

import (
	"database/sql"

	"kulture/internal/database"
	"kulture/internal/models"
)

// ParentRepository handles parent account database operations
type ParentRepository struct {
	db *database.DB
}

// NewParentRepository creates a new parent repository
func NewParentRepository(db *database.DB) *ParentRepository {
	return &ParentRepository{db: db}
}

// CreateParent creates a parent account with an email/password credential
func (r *ParentRepository) CreateParent(email, passwordHash, fullName string) (*models.Parent, error) {
	query := `
		INSERT INTO parents (email, password_hash, full_name)
		VALUES (?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, email, passwordHash, fullName)
	if err != nil {
		return nil, err
	}

	return r.GetParentByID(id)
}

// CreateGoogleParent creates a parent account backed by a Google identity
func (r *ParentRepository) CreateGoogleParent(email, fullName, googleID string) (*models.Parent, error) {
	query := `
		INSERT INTO parents (email, full_name, google_id)
		VALUES (?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, email, fullName, googleID)
	if err != nil {
		return nil, err
	}

	return r.GetParentByID(id)
}

// GetParentByID retrieves a parent by ID, or nil if not found
func (r *ParentRepository) GetParentByID(id int64) (*models.Parent, error) {
	query := `
		SELECT id, email, COALESCE(full_name, ''), COALESCE(google_id, ''),
		       COALESCE(password_hash, ''), created_at
		FROM parents
		WHERE id = ?
	`

	return r.scanParent(r.db.QueryRow(query, id))
}

// GetParentByEmail retrieves a parent by email, or nil if not found
func (r *ParentRepository) GetParentByEmail(email string) (*models.Parent, error) {
	query := `
		SELECT id, email, COALESCE(full_name, ''), COALESCE(google_id, ''),
		       COALESCE(password_hash, ''), created_at
		FROM parents
		WHERE email = ?
	`

	return r.scanParent(r.db.QueryRow(query, email))
}

// SetGoogleID links a Google identity to an existing parent account
func (r *ParentRepository) SetGoogleID(parentID int64, googleID string) error {
	query := "UPDATE parents SET google_id = ? WHERE id = ?"
	_, err := r.db.Exec(query, googleID, parentID)
	return err
}

func (r *ParentRepository) scanParent(row *sql.Row) (*models.Parent, error) {
	parent := &models.Parent{}
	err := row.Scan(
		&parent.ID,
		&parent.Email,
		&parent.FullName,
		&parent.GoogleID,
		&parent.PasswordHash,
		&parent.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return parent, nil
}
