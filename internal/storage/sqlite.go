// Package storage provides SQLite-based persistence for the script library.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/dscript/internal/config"
)

// ErrNotFound is returned when a script is not in the library.
var ErrNotFound = errors.New("storage: script not found")

// Store manages the SQLite database connection for the script library.
type Store struct {
	db *sql.DB
}

// ScriptEntry is a stored script.
type ScriptEntry struct {
	ID        int64
	Name      string
	Source    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlayStats contains aggregated playthrough statistics for a script.
type PlayStats struct {
	Name      string
	Plays     int // Sessions started
	Completed int // Sessions that reached an ending
	MaxSteps  int
	AvgSteps  float64
	LastPlay  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scripts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS plays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			script_name TEXT NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_plays_script ON plays(script_name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScript inserts a script or replaces the source of an existing one.
func (s *Store) SaveScript(name, source string) error {
	_, err := s.db.Exec(
		`INSERT INTO scripts (name, source) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET source = excluded.source, updated_at = CURRENT_TIMESTAMP`,
		name, source,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save script: %w", err)
	}
	return nil
}

// Script returns the stored script with the given name.
func (s *Store) Script(name string) (*ScriptEntry, error) {
	var e ScriptEntry
	var createdAt, updatedAt any

	err := s.db.QueryRow(
		`SELECT id, name, source, created_at, updated_at FROM scripts WHERE name = ?`,
		name,
	).Scan(&e.ID, &e.Name, &e.Source, &createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query script: %w", err)
	}

	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}

// ListScripts returns all stored scripts ordered by name, without sources.
func (s *Store) ListScripts() ([]ScriptEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, name, created_at, updated_at FROM scripts ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scripts: %w", err)
	}
	defer rows.Close()

	var entries []ScriptEntry
	for rows.Next() {
		var e ScriptEntry
		var createdAt, updatedAt any
		if err := rows.Scan(&e.ID, &e.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// DeleteScript removes a script and its playthrough history.
func (s *Store) DeleteScript(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	res, err := tx.Exec("DELETE FROM scripts WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete script: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	if _, err := tx.Exec("DELETE FROM plays WHERE script_name = ?", name); err != nil {
		return fmt.Errorf("storage: cannot delete plays: %w", err)
	}
	return tx.Commit()
}

// SavePlay records a finished session: how many nodes it advanced through
// and whether it reached an ending.
func (s *Store) SavePlay(name string, steps int, completed bool) (int64, error) {
	done := 0
	if completed {
		done = 1
	}
	result, err := s.db.Exec(
		"INSERT INTO plays (script_name, steps, completed) VALUES (?, ?, ?)",
		name, steps, done,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save play: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// PlayStats returns aggregated playthrough statistics for a script.
func (s *Store) PlayStats(name string) (*PlayStats, error) {
	stats := &PlayStats{Name: name}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(completed), 0), COALESCE(MAX(steps), 0), COALESCE(AVG(steps), 0)
		 FROM plays WHERE script_name = ?`,
		name,
	).Scan(&stats.Plays, &stats.Completed, &stats.MaxSteps, &stats.AvgSteps)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get play stats: %w", err)
	}

	var lastPlay any
	err = s.db.QueryRow(
		`SELECT created_at FROM plays WHERE script_name = ? ORDER BY id DESC LIMIT 1`,
		name,
	).Scan(&lastPlay)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last play: %w", err)
	}
	if err == nil {
		stats.LastPlay = parseTime(lastPlay)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
