package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	apperr "github.com/momentum-app/momentum/internal/errors"
	"github.com/momentum-app/momentum/internal/migration"
	"github.com/momentum-app/momentum/migrations"
)

var errNotLoaded = errors.New("storage not loaded")

// SQLiteStore persists the key-value map in a single-table sqlite database.
// This is the default local store.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'momentum init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Validate schema version using embedded migrations
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) migrationRunner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "local")
	if err != nil {
		return nil, fmt.Errorf("failed to access local migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

func (s *SQLiteStore) runMigrations() error {
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	_, err = runner.Apply(nil)
	return err
}

// ValidateSchema checks that the database schema matches the embedded
// migrations.
func (s *SQLiteStore) ValidateSchema() error {
	if s.db == nil {
		return errNotLoaded
	}
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *SQLiteStore) Read(key string) (string, bool, error) {
	if s.db == nil {
		return "", false, &apperr.StorageError{Op: "read", Key: key, Err: errNotLoaded}
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &apperr.StorageError{Op: "read", Key: key, Err: err}
	}
	return value, true, nil
}

func (s *SQLiteStore) Write(key, value string) error {
	if s.db == nil {
		return &apperr.StorageError{Op: "write", Key: key, Err: errNotLoaded}
	}

	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return &apperr.StorageError{Op: "write", Key: key, Err: err}
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
