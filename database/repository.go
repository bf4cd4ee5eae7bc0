package database

// Repository is the data-access layer over the user and note tables.
// Lookup methods return (nil, nil) when no row matches; translating that
// into "not found" errors is the services layer's job.
type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}
