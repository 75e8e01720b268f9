package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/momentum-app/momentum/internal/cli"
	"github.com/momentum-app/momentum/internal/keyring"
)

// KeyringSetCmd stores the postgres connection string in the OS keyring,
// the supported place for credentials.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !strings.HasPrefix(cmd.ConnectionString, "postgres://") &&
		!strings.HasPrefix(cmd.ConnectionString, "postgresql://") {
		return errors.New("connection string must be a postgres:// or postgresql:// URL")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string: %w", err)
	}

	fmt.Println("Connection string stored in OS keyring.")
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string stored, use 'momentum keyring set' first")
		}
		return fmt.Errorf("failed to read connection string: %w", err)
	}

	fmt.Println(maskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string stored")
		}
		return fmt.Errorf("failed to delete connection string: %w", err)
	}

	fmt.Println("Connection string removed from OS keyring.")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("OS keyring: unavailable")
		return nil
	}
	fmt.Println("OS keyring: available")

	if _, err := keyring.GetConnectionString(); err == nil {
		fmt.Println("Connection string: stored")
	} else {
		fmt.Println("Connection string: not stored")
	}
	if _, err := keyring.GetUserID(); err == nil {
		fmt.Println("Session: logged in")
	} else {
		fmt.Println("Session: not logged in")
	}
	return nil
}

// maskPassword hides the password portion of a postgres URL for display.
func maskPassword(connStr string) string {
	idx := strings.Index(connStr, "://")
	if idx == -1 {
		return connStr
	}
	remaining := connStr[idx+3:]
	atIdx := strings.LastIndex(remaining, "@")
	if atIdx == -1 {
		return connStr
	}
	userInfo := remaining[:atIdx]
	colonIdx := strings.Index(userInfo, ":")
	if colonIdx == -1 {
		return connStr
	}
	return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + remaining[atIdx:]
}
