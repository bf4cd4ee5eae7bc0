package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), DBFileName)
	db, err := New(dbPath)
	require.NoError(t, err)

	err = db.Migrate()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return NewRepository(db)
}

func TestMigrateIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), DBFileName)
	db, err := New(dbPath)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate())
	require.NoError(t, db.Migrate())
}

func TestUserOperations(t *testing.T) {
	repo := setupTestRepo(t)

	t.Run("Get on empty table returns nil", func(t *testing.T) {
		user, err := repo.GetUserByEmail("nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("Insert assigns increasing ids", func(t *testing.T) {
		first, err := repo.InsertUser("a@example.com")
		require.NoError(t, err)

		second, err := repo.InsertUser("b@example.com")
		require.NoError(t, err)

		assert.Greater(t, second, first)
	})

	t.Run("Duplicate email violates unique constraint", func(t *testing.T) {
		_, err := repo.InsertUser("a@example.com")
		assert.Error(t, err)
	})

	t.Run("Get returns inserted user", func(t *testing.T) {
		user, err := repo.GetUserByEmail("a@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "a@example.com", user.Email)
	})

	t.Run("Delete reports affected rows", func(t *testing.T) {
		rows, err := repo.DeleteUserByEmail("a@example.com")
		require.NoError(t, err)
		assert.EqualValues(t, 1, rows)

		rows, err = repo.DeleteUserByEmail("a@example.com")
		require.NoError(t, err)
		assert.EqualValues(t, 0, rows)
	})
}

func TestNoteOperations(t *testing.T) {
	repo := setupTestRepo(t)

	userID, err := repo.InsertUser("owner@example.com")
	require.NoError(t, err)

	t.Run("Insert and read back", func(t *testing.T) {
		id, err := repo.InsertNote(userID, "", true)
		require.NoError(t, err)

		note, err := repo.GetNoteByID(id)
		require.NoError(t, err)
		require.NotNil(t, note)
		assert.Equal(t, userID, note.UserID)
		assert.Empty(t, note.Text)
		assert.True(t, note.SyncedWithCloud)
	})

	t.Run("Get absent note returns nil", func(t *testing.T) {
		note, err := repo.GetNoteByID(9999)
		require.NoError(t, err)
		assert.Nil(t, note)
	})

	t.Run("Update touches only the targeted row", func(t *testing.T) {
		first, err := repo.InsertNote(userID, "", true)
		require.NoError(t, err)
		second, err := repo.InsertNote(userID, "", true)
		require.NoError(t, err)

		rows, err := repo.UpdateNoteText(first, "hello")
		require.NoError(t, err)
		assert.EqualValues(t, 1, rows)

		updated, err := repo.GetNoteByID(first)
		require.NoError(t, err)
		assert.Equal(t, "hello", updated.Text)
		assert.False(t, updated.SyncedWithCloud)

		untouched, err := repo.GetNoteByID(second)
		require.NoError(t, err)
		assert.Empty(t, untouched.Text)
		assert.True(t, untouched.SyncedWithCloud)
	})

	t.Run("Update of missing id affects zero rows", func(t *testing.T) {
		rows, err := repo.UpdateNoteText(9999, "hello")
		require.NoError(t, err)
		assert.EqualValues(t, 0, rows)
	})

	t.Run("GetAllNotes is ordered oldest first", func(t *testing.T) {
		notes, err := repo.GetAllNotes()
		require.NoError(t, err)
		require.NotEmpty(t, notes)
		for i := 1; i < len(notes); i++ {
			assert.Less(t, notes[i-1].ID, notes[i].ID)
		}
	})

	t.Run("Deleting the owner leaves notes behind", func(t *testing.T) {
		id, err := repo.InsertNote(userID, "", true)
		require.NoError(t, err)

		rows, err := repo.DeleteUserByEmail("owner@example.com")
		require.NoError(t, err)
		require.EqualValues(t, 1, rows)

		orphan, err := repo.GetNoteByID(id)
		require.NoError(t, err)
		require.NotNil(t, orphan)
		assert.Equal(t, userID, orphan.UserID)
	})

	t.Run("DeleteAllNotes returns the count", func(t *testing.T) {
		before, err := repo.GetAllNotes()
		require.NoError(t, err)

		count, err := repo.DeleteAllNotes()
		require.NoError(t, err)
		assert.EqualValues(t, len(before), count)

		after, err := repo.GetAllNotes()
		require.NoError(t, err)
		assert.Empty(t, after)
	})
}
