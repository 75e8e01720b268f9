package server

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	apperr "github.com/momentum-app/momentum/internal/errors"
	"github.com/momentum-app/momentum/internal/migration"
	"github.com/momentum-app/momentum/migrations"
)

// reflectionDateFormat pads fractional seconds to full width. Clients send
// RFC3339Nano with trailing zeros trimmed; stored dates must be fixed width
// so that byte-wise ORDER BY matches chronological order.
const reflectionDateFormat = "2006-01-02T15:04:05.000000000Z07:00"

// ReflectionDoc is a stored reflection document. Dates are fixed-width UTC
// strings so descending lexicographic order matches chronological order.
type ReflectionDoc struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Date        string `json:"date"`
	Success     string `json:"success"`
	Improvement string `json:"improvement"`
	Journal     string `json:"journal"`
}

// DocStore is the backend's document store. It runs on sqlite for local
// deployments and postgres when given a postgres:// DSN.
type DocStore struct {
	db     *sql.DB
	driver string
}

// OpenDocStore opens the store at dsn and applies pending migrations.
// A postgres:// or postgresql:// DSN selects the postgres driver,
// anything else is treated as a sqlite file path.
func OpenDocStore(dsn string) (*DocStore, error) {
	driver := "sqlite"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "postgres"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, &apperr.StorageError{Op: "open", Err: err}
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &apperr.StorageError{Op: "open", Err: err}
	}

	subFS, err := fs.Sub(migrations.FS, "server")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	if _, err := migration.NewRunner(db, subFS).Apply(nil); err != nil {
		db.Close()
		return nil, err
	}

	return &DocStore{db: db, driver: driver}, nil
}

func (s *DocStore) Close() error {
	return s.db.Close()
}

// Ping reports whether the underlying database is reachable.
func (s *DocStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// rebind rewrites ? placeholders to $N for postgres.
func (s *DocStore) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func (s *DocStore) SaveReflection(ctx context.Context, doc ReflectionDoc) error {
	query := s.rebind(`INSERT INTO reflections (id, user_id, date, success, improvement, journal) VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query, doc.ID, doc.UserID, doc.Date, doc.Success, doc.Improvement, doc.Journal)
	if err != nil {
		return &apperr.StorageError{Op: "write", Key: doc.ID, Err: err}
	}
	return nil
}

// ReflectionsByUser returns the user's reflections newest first. An unknown
// user is an empty collection, not an error.
func (s *DocStore) ReflectionsByUser(ctx context.Context, userID string) ([]ReflectionDoc, error) {
	query := s.rebind(`SELECT id, user_id, date, success, improvement, journal FROM reflections WHERE user_id = ? ORDER BY date DESC`)
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, &apperr.StorageError{Op: "read", Key: userID, Err: err}
	}
	defer rows.Close()

	docs := []ReflectionDoc{}
	for rows.Next() {
		var d ReflectionDoc
		if err := rows.Scan(&d.ID, &d.UserID, &d.Date, &d.Success, &d.Improvement, &d.Journal); err != nil {
			return nil, &apperr.StorageError{Op: "read", Key: userID, Err: err}
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, &apperr.StorageError{Op: "read", Key: userID, Err: err}
	}
	return docs, nil
}

// UpdateReflection rewrites the text fields of an existing reflection.
func (s *DocStore) UpdateReflection(ctx context.Context, id, success, improvement, journal string) error {
	query := s.rebind(`UPDATE reflections SET success = ?, improvement = ?, journal = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, success, improvement, journal, id)
	if err != nil {
		return &apperr.StorageError{Op: "write", Key: id, Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &apperr.StorageError{Op: "write", Key: id, Err: err}
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *DocStore) DeleteReflection(ctx context.Context, id string) error {
	query := s.rebind(`DELETE FROM reflections WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return &apperr.StorageError{Op: "delete", Key: id, Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &apperr.StorageError{Op: "delete", Key: id, Err: err}
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// SaveHabitSnapshot stores the user's full habit collection as one JSON
// document, replacing any previous snapshot.
func (s *DocStore) SaveHabitSnapshot(ctx context.Context, userID, habitsJSON string) error {
	query := s.rebind(`INSERT INTO habit_snapshots (user_id, habits, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET habits = excluded.habits, updated_at = excluded.updated_at`)
	_, err := s.db.ExecContext(ctx, query, userID, habitsJSON, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return &apperr.StorageError{Op: "write", Key: userID, Err: err}
	}
	return nil
}

// HabitSnapshot returns the stored habits JSON for userID, or ok=false when
// the user has never synced.
func (s *DocStore) HabitSnapshot(ctx context.Context, userID string) (string, bool, error) {
	query := s.rebind(`SELECT habits FROM habit_snapshots WHERE user_id = ?`)
	var habits string
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&habits)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, &apperr.StorageError{Op: "read", Key: userID, Err: err}
	}
	return habits, true, nil
}
