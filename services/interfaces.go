package services

import "local-notes/models"

// Repository defines the data access needed by NotesService.
// Implemented by database.Repository; lookups return (nil, nil) when no row
// matches.
type Repository interface {
	GetUserByEmail(email string) (*models.User, error)
	InsertUser(email string) (int64, error)
	DeleteUserByEmail(email string) (int64, error)

	InsertNote(userID int64, text string, synced bool) (int64, error)
	GetNoteByID(id int64) (*models.Note, error)
	GetAllNotes() ([]models.Note, error)
	UpdateNoteText(id int64, text string) (int64, error)
	DeleteNoteByID(id int64) (int64, error)
	DeleteAllNotes() (int64, error)
}
