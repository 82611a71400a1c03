package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const (
	createSlots = `CREATE TABLE IF NOT EXISTS slots (
		name  TEXT PRIMARY KEY,
		image BLOB NOT NULL
	)`
	saveSlot = `INSERT INTO slots (name, image) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET image = excluded.image`
	loadSlot = `SELECT image FROM slots WHERE name = ?`
)

// SQLite is a Slot stored as a named row in a SQLite database, so one
// database file can hold many saved programs.
type SQLite struct {
	db   *sql.DB
	name string
}

// OpenSQLite opens (or creates) the database at path and returns the slot
// called name within it.
func OpenSQLite(path, name string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to open %v: %w", path, err)
	}
	if _, err := db.Exec(createSlots); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to create slots table: %w", err)
	}
	return &SQLite{db: db, name: name}, nil
}

// Save implements Slot.
func (s *SQLite) Save(image []byte) error {
	_, err := s.db.Exec(saveSlot, s.name, image)
	return err
}

// Load implements Slot.
func (s *SQLite) Load() ([]byte, error) {
	var image []byte
	err := s.db.QueryRow(loadSlot, s.name).Scan(&image)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmpty
	}
	return image, err
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }
