package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	apperrors "playground-client/internal/errors"
	"playground-client/internal/logger"
)

// SQLite is the durable KV backend. The database lives at
// <dataDir>/playground.db.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the client database under dir.
func NewSQLite(dir string) (*SQLite, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.KindStorage, "creating data dir", err)
	}

	path := filepath.Join(dir, "playground.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindStorage, "opening database", err)
	}

	// Single writer, the client is effectively single-threaded
	db.SetMaxOpenConns(1)

	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, apperrors.Wrap(apperrors.KindStorage, "creating schema", err)
	}

	logger.Log.WithField("path", path).Debug("Opened client database")
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindStorage, "reading "+key, err)
	}
	return value, nil
}

func (s *SQLite) Put(key string, value []byte) error {
	query := `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, key, value); err != nil {
		return apperrors.Wrap(apperrors.KindStorage, "writing "+key, err)
	}
	return nil
}

func (s *SQLite) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return apperrors.Wrap(apperrors.KindStorage, "deleting "+key, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
