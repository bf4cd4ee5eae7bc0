package database

import (
	"database/sql"

	"local-notes/models"
)

// ==================== USER OPERATIONS ====================

// GetUserByEmail retrieves a user by exact email. Callers are expected to
// lower-case the email first; the column is compared as stored.
func (r *Repository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User

	err := r.db.QueryRow(`
		SELECT id, email FROM user WHERE email = ?
	`, email).Scan(&user.ID, &user.Email)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// InsertUser inserts a new user row and returns the assigned id.
func (r *Repository) InsertUser(email string) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO user (email) VALUES (?)
	`, email)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// DeleteUserByEmail deletes the user with the given email and returns the
// number of rows removed (0 when no such user existed).
func (r *Repository) DeleteUserByEmail(email string) (int64, error) {
	res, err := r.db.Exec(`
		DELETE FROM user WHERE email = ?
	`, email)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
