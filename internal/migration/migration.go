package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

// Migration is a single schema migration parsed from an embedded SQL file
// named NNN_name.sql.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Runner applies schema migrations to a database. It is driver-agnostic:
// the same runner serves the sqlite and postgres stores.
type Runner struct {
	db *sql.DB
	fs fs.FS
}

// NewRunner creates a migration runner over the given migration filesystem.
func NewRunner(db *sql.DB, migrationFS fs.FS) *Runner {
	return &Runner{db: db, fs: migrationFS}
}

func (r *Runner) ensureVersionTable() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`)
	return err
}

// CurrentVersion returns the schema version recorded in the database, or 0
// for a fresh database.
func (r *Runner) CurrentVersion() (int, error) {
	if err := r.ensureVersionTable(); err != nil {
		return 0, fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	var version int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

func (r *Runner) readMigrations() ([]Migration, error) {
	files, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		parts := strings.SplitN(file.Name(), "_", 2)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid migration filename: %s (expected NNN_name.sql)", file.Name())
		}
		version, err := strconv.Atoi(parts[0])
		if err != nil || version < 1 {
			return nil, fmt.Errorf("invalid version number in filename %s", file.Name())
		}

		content, err := fs.ReadFile(r.fs, file.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}
	return migrations, nil
}

// Apply runs all pending migrations, each in its own transaction, and
// returns the number applied.
func (r *Runner) Apply(logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}

	current, err := r.CurrentVersion()
	if err != nil {
		return 0, err
	}

	migrations, err := r.readMigrations()
	if err != nil {
		return 0, err
	}
	if len(migrations) == 0 {
		return 0, nil
	}

	latest := migrations[len(migrations)-1].Version
	if current > latest {
		return 0, fmt.Errorf("database schema version (%d) is newer than supported version (%d) - please upgrade the application", current, latest)
	}

	applied := 0
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := r.db.Begin()
		if err != nil {
			return applied, fmt.Errorf("failed to begin transaction for migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("failed to clear schema version in migration %d: %w", m.Version, err)
		}
		// Version comes from a validated filename, so inlining it keeps the
		// statement portable across sqlite and postgres placeholders.
		if _, err := tx.Exec(fmt.Sprintf("INSERT INTO schema_version (version) VALUES (%d)", m.Version)); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("failed to set schema version in migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		applied++
		logFn(fmt.Sprintf("Applied migration %d: %s", m.Version, m.Name))
	}

	return applied, nil
}

// ValidateVersion fails when the database schema is newer than the
// migrations shipped with this build.
func (r *Runner) ValidateVersion() error {
	current, err := r.CurrentVersion()
	if err != nil {
		return err
	}

	migrations, err := r.readMigrations()
	if err != nil {
		return err
	}

	latest := 0
	if len(migrations) > 0 {
		latest = migrations[len(migrations)-1].Version
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d) - please upgrade the application", current, latest)
	}
	return nil
}
