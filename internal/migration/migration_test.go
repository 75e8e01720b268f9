package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApply(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql":    {Data: []byte(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)},
		"002_add_col.sql": {Data: []byte(`ALTER TABLE kv ADD COLUMN updated_at TEXT;`)},
	}

	runner := NewRunner(db, fsys)
	applied, err := runner.Apply(nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	if _, err := db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES ('a', 'b', 'c')`); err != nil {
		t.Errorf("migrated schema rejected insert: %v", err)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)},
	}

	runner := NewRunner(db, fsys)
	if _, err := runner.Apply(nil); err != nil {
		t.Fatalf("first Apply failed: %v", err)
	}
	applied, err := runner.Apply(nil)
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("second Apply applied %d migrations, want 0", applied)
	}
}

func TestApplyLogsEachMigration(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte(`CREATE TABLE a (id INTEGER);`)},
		"002_more.sql": {Data: []byte(`CREATE TABLE b (id INTEGER);`)},
	}

	var lines []string
	runner := NewRunner(db, fsys)
	if _, err := runner.Apply(func(s string) { lines = append(lines, s) }); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(lines) != 2 {
		t.Errorf("logged %d lines, want 2", len(lines))
	}
}

func TestCurrentVersionFreshDatabase(t *testing.T) {
	runner := NewRunner(openTestDB(t), fstest.MapFS{})
	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("version = %d, want 0", version)
	}
}

func TestValidateVersionNewerSchema(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)},
	}

	runner := NewRunner(db, fsys)
	if _, err := runner.Apply(nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// Simulate a database written by a newer build.
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("failed to bump version: %v", err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected error for newer schema version")
	}
}

func TestInvalidMigrationFilename(t *testing.T) {
	runner := NewRunner(openTestDB(t), fstest.MapFS{
		"init.sql": {Data: []byte(`CREATE TABLE a (id INTEGER);`)},
	})
	if _, err := runner.Apply(nil); err == nil {
		t.Error("expected error for filename without version prefix")
	}
}

func TestDuplicateMigrationVersion(t *testing.T) {
	runner := NewRunner(openTestDB(t), fstest.MapFS{
		"001_a.sql": {Data: []byte(`CREATE TABLE a (id INTEGER);`)},
		"001_b.sql": {Data: []byte(`CREATE TABLE b (id INTEGER);`)},
	})
	if _, err := runner.Apply(nil); err == nil {
		t.Error("expected error for duplicate version")
	}
}
