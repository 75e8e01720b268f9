// Package backups holds the backup management commands.
package backups

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/momentum-app/momentum/internal/backup"
	"github.com/momentum-app/momentum/internal/cli"
	"github.com/momentum-app/momentum/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.BackupDir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		fmt.Printf("  %s  %s  (%.1f KB)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"),
			filepath.Base(b.Path),
			float64(b.Size)/1024.0)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.BackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	backupPath, err := resolveBackupPath(mgr, c.BackupFile)
	if err != nil {
		return err
	}

	fmt.Println("WARNING: this will replace your current store with the backup.")
	fmt.Println("Stop any other momentum processes before continuing.")
	fmt.Println("A backup of the current store will be created first.")
	fmt.Printf("\nRestore from: %s\n", backupPath)
	fmt.Print("Continue? [y/N]: ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	if response != "y" && response != "yes" {
		fmt.Println("Restore cancelled.")
		return nil
	}

	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close store: %v\n", err)
	}

	if err := mgr.Restore(backupPath); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Println("Restore complete.")
	return nil
}

// resolveBackupPath accepts an absolute path, a path relative to the working
// directory, or a bare filename inside the backup directory.
func resolveBackupPath(mgr *backup.Manager, arg string) (string, error) {
	if filepath.IsAbs(arg) {
		if _, err := os.Stat(arg); os.IsNotExist(err) {
			return "", fmt.Errorf("backup file not found: %s", arg)
		}
		return arg, nil
	}

	if _, err := os.Stat(arg); err == nil {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}

	candidate := filepath.Join(mgr.BackupDir(), arg)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", mgr.BackupDir())
}
