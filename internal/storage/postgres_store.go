package storage

import (
	"database/sql"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"

	apperr "github.com/momentum-app/momentum/internal/errors"
	"github.com/momentum-app/momentum/internal/keyring"
	"github.com/momentum-app/momentum/internal/migration"
	"github.com/momentum-app/momentum/migrations"
)

// PostgresStore persists the key-value map in a shared PostgreSQL database.
// Selected when the config path is a postgres:// or postgresql:// URL.
// Credentials must come from the environment, .pgpass, or the OS keyring;
// they are never accepted inside the connection string itself.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr: resolveConnStr(connStr),
	}
}

// resolveConnStr prefers a full connection string from the environment or
// the OS keyring over the credential-less one given on the command line.
func resolveConnStr(connStr string) string {
	if env := os.Getenv("MOMENTUM_DB_CONNECTION"); env != "" {
		return env
	}
	if stored, err := keyring.GetConnectionString(); err == nil && stored != "" {
		return stored
	}
	return connStr
}

// HasEmbeddedCredentials reports whether a postgres URL carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	if _, err := runner.Apply(nil); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) migrationRunner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "local")
	if err != nil {
		return nil, fmt.Errorf("failed to access local migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

// ValidateSchema checks that the database schema matches the embedded
// migrations.
func (s *PostgresStore) ValidateSchema() error {
	if s.db == nil {
		return errNotLoaded
	}
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *PostgresStore) Read(key string) (string, bool, error) {
	if s.db == nil {
		return "", false, &apperr.StorageError{Op: "read", Key: key, Err: errNotLoaded}
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = $1", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, &apperr.StorageError{Op: "read", Key: key, Err: err}
	}
	return value, true, nil
}

func (s *PostgresStore) Write(key, value string) error {
	if s.db == nil {
		return &apperr.StorageError{Op: "write", Key: key, Err: errNotLoaded}
	}

	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return &apperr.StorageError{Op: "write", Key: key, Err: err}
	}
	return nil
}

func (s *PostgresStore) GetConfigPath() string {
	// Strip query parameters so logs never leak connection options
	if i := strings.Index(s.connStr, "?"); i >= 0 {
		return s.connStr[:i]
	}
	return s.connStr
}
