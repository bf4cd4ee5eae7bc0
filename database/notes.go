package database

import (
	"database/sql"

	"local-notes/models"
)

// ==================== NOTE OPERATIONS ====================

func scanNote(row interface{ Scan(...any) error }) (*models.Note, error) {
	var note models.Note
	var synced int64

	if err := row.Scan(&note.ID, &note.UserID, &note.Text, &synced); err != nil {
		return nil, err
	}
	note.SyncedWithCloud = synced != 0

	return &note, nil
}

// InsertNote inserts a note row for the given owner and returns the assigned id.
func (r *Repository) InsertNote(userID int64, text string, synced bool) (int64, error) {
	syncedInt := 0
	if synced {
		syncedInt = 1
	}

	res, err := r.db.Exec(`
		INSERT INTO note (user_id, text, is_synced_with_cloud) VALUES (?, ?, ?)
	`, userID, text, syncedInt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetNoteByID retrieves a single note by id.
func (r *Repository) GetNoteByID(id int64) (*models.Note, error) {
	note, err := scanNote(r.db.QueryRow(`
		SELECT id, user_id, text, is_synced_with_cloud FROM note WHERE id = ?
	`, id))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return note, nil
}

// GetAllNotes retrieves every note in the store, oldest first.
func (r *Repository) GetAllNotes() ([]models.Note, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, text, is_synced_with_cloud FROM note ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	notes := make([]models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}

	return notes, rows.Err()
}

// UpdateNoteText sets the text of exactly the note with the given id and
// clears its synced flag. Returns the number of rows changed.
func (r *Repository) UpdateNoteText(id int64, text string) (int64, error) {
	res, err := r.db.Exec(`
		UPDATE note SET text = ?, is_synced_with_cloud = 0 WHERE id = ?
	`, text, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteNoteByID deletes a note by id and returns the number of rows removed.
func (r *Repository) DeleteNoteByID(id int64) (int64, error) {
	res, err := r.db.Exec(`
		DELETE FROM note WHERE id = ?
	`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteAllNotes removes every note and returns how many were deleted.
func (r *Repository) DeleteAllNotes() (int64, error) {
	res, err := r.db.Exec(`DELETE FROM note`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
