package services

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"local-notes/database"
	"local-notes/feed"
	"local-notes/models"
	"local-notes/validator"
)

// appDirName is the subdirectory created under the platform config directory
// when no explicit data directory is configured.
const appDirName = "local-notes"

// NotesService is the local persistence layer: it owns the SQLite handle,
// keeps an in-memory snapshot of every note, and republishes that snapshot on
// the change feed after each mutation. All operations are serialized behind
// one mutex; reads always go to storage, the cache only drives the feed.
//
// The cache deliberately spans all owners. Single-user-at-a-time usage is
// assumed; see Subscribe.
type NotesService struct {
	dataDir  string
	logger   *slog.Logger
	validate *validator.Validator

	mu    sync.Mutex
	db    *database.DB
	repo  Repository
	cache []models.Note
	feed  *feed.Feed
}

// Options configures a NotesService.
type Options struct {
	// DataDir overrides the platform application-data directory. Empty means
	// <os.UserConfigDir>/local-notes.
	DataDir string
	Logger  *slog.Logger
}

func NewNotesService(opts Options) *NotesService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &NotesService{
		dataDir:  opts.DataDir,
		logger:   logger,
		validate: validator.New(),
		feed:     feed.New(),
	}
}

// Open creates or opens the database file, runs migrations, seeds the cache
// with every stored note and publishes that initial snapshot. Fails with
// ErrAlreadyOpen when called on an open service.
func (s *NotesService) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openLocked()
}

func (s *NotesService) openLocked() error {
	if s.db != nil {
		return ErrAlreadyOpen
	}

	dir := s.dataDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
		}
		dir = filepath.Join(base, appDirName)
	}

	db, err := database.New(filepath.Join(dir, database.DBFileName))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	repo := database.NewRepository(db)
	notes, err := repo.GetAllNotes()
	if err != nil {
		db.Close()
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.db = db
	s.repo = repo
	s.cache = notes
	s.publishLocked()

	s.logger.Info("storage opened", "dir", dir, "notes", len(notes))
	return nil
}

// ensureOpenLocked opens the service if needed; an already-open service is
// not an error here.
func (s *NotesService) ensureOpenLocked() error {
	if err := s.openLocked(); err != nil && !errors.Is(err, ErrAlreadyOpen) {
		return err
	}
	return nil
}

// Close releases the database handle. The cache is left as-is and must not be
// relied on afterwards.
func (s *NotesService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return ErrNotOpen
	}

	err := s.db.Close()
	s.db = nil
	s.repo = nil

	s.logger.Info("storage closed")
	return err
}

// Subscribe returns a subscription on the note-list feed. The subscriber
// immediately receives the last published snapshot, then one emission per
// subsequent mutation.
func (s *NotesService) Subscribe() *feed.Subscription {
	return s.feed.Subscribe()
}

// publishLocked snapshots the cache and broadcasts it. Caller holds s.mu.
func (s *NotesService) publishLocked() {
	snapshot := make([]models.Note, len(s.cache))
	copy(snapshot, s.cache)
	s.feed.Publish(snapshot)
}

// ==================== USERS ====================

// CreateUser inserts a new user. The email is case-folded before the
// uniqueness check, so "A@x.com" and "a@x.com" are the same account.
func (s *NotesService) CreateUser(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpenLocked(); err != nil {
		return nil, err
	}
	return s.createUserLocked(email)
}

func (s *NotesService) createUserLocked(email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Email(email); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	existing, err := s.repo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	id, err := s.repo.InsertUser(email)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("user created", "id", id, "email", email)
	return &models.User{ID: id, Email: email}, nil
}

// GetUser looks up a user by email, any casing.
func (s *NotesService) GetUser(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpenLocked(); err != nil {
		return nil, err
	}
	return s.getUserLocked(email)
}

func (s *NotesService) getUserLocked(email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetOrCreateUser returns the user with the given email, creating it first
// when it does not exist yet. Any failure other than "not found" propagates
// unchanged.
func (s *NotesService) GetOrCreateUser(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpenLocked(); err != nil {
		return nil, err
	}

	user, err := s.getUserLocked(email)
	if errors.Is(err, ErrUserNotFound) {
		return s.createUserLocked(email)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user with the given email. Notes owned by that user
// are left in place (documented orphaning; there is no cascade).
func (s *NotesService) DeleteUser(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpenLocked(); err != nil {
		return err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	rows, err := s.repo.DeleteUserByEmail(email)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	s.logger.Debug("user deleted", "email", email)
	return nil
}

// ==================== NOTES ====================

// CreateNote inserts an empty note owned by owner. The owner is re-fetched by
// email and must match the supplied user by id, which rejects stale caller
// state. The new note starts synced.
func (s *NotesService) CreateNote(owner *models.User) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpenLocked(); err != nil {
		return nil, err
	}

	dbUser, err := s.getUserLocked(owner.Email)
	if err != nil {
		return nil, err
	}
	if dbUser.ID != owner.ID {
		return nil, ErrUserNotFound
	}

	id, err := s.repo.InsertNote(dbUser.ID, "", true)
	if err != nil {
		return nil, err
	}

	note := models.Note{
		ID:              id,
		UserID:          dbUser.ID,
		Text:            "",
		SyncedWithCloud: true,
	}
	s.cache = append(s.cache, note)
	s.publishLocked()

	s.logger.Debug("note created", "id", id, "user_id", dbUser.ID)
	return &note, nil
}

// GetNote reads a note by id straight from storage (never from the cache),
// refreshes the cached copy and republishes.
func (s *NotesService) GetNote(id int64) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpenLocked(); err != nil {
		return nil, err
	}

	note, err := s.repo.GetNoteByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	s.removeFromCacheLocked(id)
	s.cache = append(s.cache, *note)
	s.publishLocked()

	return note, nil
}

// GetAllNotes returns every stored note without touching the cache or feed.
func (s *NotesService) GetAllNotes() ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpenLocked(); err != nil {
		return nil, err
	}
	return s.repo.GetAllNotes()
}

// UpdateNote replaces the text of an existing note and clears its synced
// flag. The update statement is scoped to the note id; no other row can be
// touched. Returns the freshly re-read note.
func (s *NotesService) UpdateNote(note *models.Note, text string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpenLocked(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetNoteByID(note.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNoteNotFound
	}

	rows, err := s.repo.UpdateNoteText(note.ID, text)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrUpdateFailed
	}

	updated, err := s.repo.GetNoteByID(note.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNoteNotFound
	}

	s.removeFromCacheLocked(updated.ID)
	s.cache = append(s.cache, *updated)
	s.publishLocked()

	s.logger.Debug("note updated", "id", updated.ID)
	return updated, nil
}

// DeleteNote removes a note by id. The feed is republished only when the note
// was actually cached; deleting an uncached id stays silent.
func (s *NotesService) DeleteNote(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpenLocked(); err != nil {
		return err
	}

	rows, err := s.repo.DeleteNoteByID(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDeleteFailed
	}

	if s.removeFromCacheLocked(id) {
		s.publishLocked()
	}

	s.logger.Debug("note deleted", "id", id)
	return nil
}

// DeleteAllNotes wipes the note table, empties the cache and always
// republishes, even when nothing was stored. Returns the number of rows
// deleted.
func (s *NotesService) DeleteAllNotes() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpenLocked(); err != nil {
		return 0, err
	}

	count, err := s.repo.DeleteAllNotes()
	if err != nil {
		return 0, err
	}

	s.cache = make([]models.Note, 0)
	s.publishLocked()

	s.logger.Debug("all notes deleted", "count", count)
	return count, nil
}

// removeFromCacheLocked drops the note with the given id from the cache and
// reports whether anything was removed. Caller holds s.mu.
func (s *NotesService) removeFromCacheLocked(id int64) bool {
	for i, n := range s.cache {
		if n.ID == id {
			s.cache = append(s.cache[:i], s.cache[i+1:]...)
			return true
		}
	}
	return false
}
