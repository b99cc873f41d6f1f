// Package store persists the armed alarm target across runs.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const alarmKey = "alarm_target"

// Store is a small key/value settings table backed by SQLite.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the per-user database path.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "ls-skyclock", "skyclock.db")
}

// Open opens (and if needed creates) the settings database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating settings table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveAlarm writes the alarm target as an RFC 3339 timestamp.
func (s *Store) SaveAlarm(target time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, alarmKey, target.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving alarm target: %w", err)
	}
	return nil
}

// LoadAlarm reads the persisted alarm target. The second return value is
// false when no target is stored. A malformed timestamp reads as absent:
// the fail-safe default at startup is an unset alarm, never a crash.
func (s *Store) LoadAlarm() (time.Time, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, alarmKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("loading alarm target: %w", err)
	}

	target, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false, nil
	}
	return target, true, nil
}

// ClearAlarm removes the persisted alarm target. Clearing an absent key is
// a no-op.
func (s *Store) ClearAlarm() error {
	_, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, alarmKey)
	if err != nil {
		return fmt.Errorf("clearing alarm target: %w", err)
	}
	return nil
}
