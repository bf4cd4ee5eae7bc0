package services

import "errors"

// Common service-level errors
var (
	// Lifecycle errors
	ErrAlreadyOpen          = errors.New("storage already open")
	ErrNotOpen              = errors.New("storage not open")
	ErrDirectoryUnavailable = errors.New("application data directory unavailable")
	ErrStorageUnavailable   = errors.New("could not open storage")

	// User errors
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	// Note errors
	ErrNoteNotFound = errors.New("note not found")
	ErrUpdateFailed = errors.New("could not update note")
	ErrDeleteFailed = errors.New("could not delete note")
)
