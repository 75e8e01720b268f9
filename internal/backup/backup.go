// Package backup snapshots the local store file into a rotated backup
// directory next to it. SQLite stores are copied through VACUUM INTO,
// JSON stores with a plain file copy.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/momentum-app/momentum/internal/constants"
	"github.com/momentum-app/momentum/internal/logger"
)

// Info describes one backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

type Manager struct {
	storePath string
	backupDir string
}

// NewManager creates a manager for the store file at storePath. Backups
// live in a "backups" directory alongside it.
func NewManager(storePath string) *Manager {
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), constants.BackupDirName),
	}
}

func (m *Manager) BackupDir() string {
	return m.backupDir
}

// Create snapshots the store and rotates old backups past the retention
// limit. Returns the path of the new backup.
func (m *Manager) Create() (string, error) {
	return m.create(false)
}

func (m *Manager) create(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("store does not exist: %s", m.storePath)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	if isSQLite(m.storePath) {
		err = m.backupSQLite(backupPath)
	} else {
		err = copyFile(m.storePath, backupPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up store: %w", err)
	}

	if !skipRotation {
		if err := m.rotate(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return backupPath, nil
}

// nextBackupPath picks a timestamped filename, appending a counter on
// collision. The backup keeps the store file's extension.
func (m *Manager) nextBackupPath() (string, error) {
	suffix := filepath.Ext(m.storePath)
	timestamp := time.Now().Format("20060102-150405")

	name := constants.BackupFilePrefix + timestamp + suffix
	path := filepath.Join(m.backupDir, name)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		name = fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, timestamp, counter, suffix)
		path = filepath.Join(m.backupDir, name)
	}
}

// backupSQLite copies the database through VACUUM INTO, which produces a
// consistent snapshot even with the store open. Falls back to a file copy
// if the sqlite build lacks it.
func (m *Manager) backupSQLite(destPath string) error {
	src, err := sql.Open("sqlite", m.storePath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer src.Close()

	var count int
	if err := src.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := src.Exec("VACUUM INTO ?", destPath); err != nil {
		return copyFile(m.storePath, destPath)
	}
	return nil
}

// List returns the existing backups, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), constants.BackupFilePrefix) {
			continue
		}

		timestamp, ok := parseTimestamp(entry.Name())
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, Info{Path: path, Timestamp: timestamp, Size: info.Size()})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// Restore replaces the store with the given backup. The current store is
// snapshotted first so a bad restore is itself recoverable.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if isSQLite(backupPath) {
		if err := verifySQLite(backupPath); err != nil {
			return fmt.Errorf("backup file is corrupted or invalid: %w", err)
		}
	}

	if _, err := os.Stat(m.storePath); err == nil {
		current, err := m.create(true)
		if err != nil {
			return fmt.Errorf("failed to back up current store before restore: %w", err)
		}
		logger.Info("Backed up current store before restore", "backup", filepath.Base(current))
	}

	tempPath := m.storePath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.storePath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to restore store: %w", err)
	}
	return nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

func isSQLite(path string) bool {
	return filepath.Ext(path) != ".json"
}

func verifySQLite(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}

// parseTimestamp extracts the timestamp from a backup filename, tolerating
// a trailing collision counter.
func parseTimestamp(name string) (time.Time, bool) {
	s := strings.TrimPrefix(name, constants.BackupFilePrefix)
	s = strings.TrimSuffix(s, filepath.Ext(s))

	if parts := strings.Split(s, "-"); len(parts) > 2 {
		s = strings.Join(parts[:2], "-")
	}

	t, err := time.Parse("20060102-150405", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
