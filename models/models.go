package models

// User is an account that owns notes. Identity is the store-assigned id;
// two users are the same user iff their ids match, whatever the email says.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Note is a short piece of text owned by exactly one user.
// SyncedWithCloud is a placeholder for a future cloud sync: it is set to true
// on creation, flipped to false whenever the text changes, and never read back
// by anything in this repo.
type Note struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	Text            string `json:"text"`
	SyncedWithCloud bool   `json:"is_synced_with_cloud"`
}

type CreateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UpdateNoteRequest struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Text string `json:"text"`
}
