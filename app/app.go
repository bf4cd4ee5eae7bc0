package app

import (
	"log/slog"

	"local-notes/services"
	"local-notes/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Notes     *services.NotesService
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies
func New(notes *services.NotesService, logger *slog.Logger) *App {
	return &App{
		Notes:     notes,
		Validator: validator.New(),
		Logger:    logger,
	}
}
