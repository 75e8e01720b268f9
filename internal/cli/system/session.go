package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/momentum-app/momentum/internal/cli"
	"github.com/momentum-app/momentum/internal/keyring"
)

type LoginCmd struct {
	UserID string `arg:"" help:"User identifier for the backend."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	userID := strings.TrimSpace(c.UserID)
	if userID == "" {
		return fmt.Errorf("user id cannot be empty")
	}

	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is unavailable, cannot store credentials")
	}
	if err := keyring.SetUserID(userID); err != nil {
		return fmt.Errorf("failed to store user id: %w", err)
	}

	fmt.Printf("Logged in as %s\n", userID)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteUserID(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("Not logged in.")
			return nil
		}
		return fmt.Errorf("failed to clear session: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	userID, err := keyring.GetUserID()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("Not logged in.")
			return nil
		}
		return err
	}
	fmt.Println(userID)
	return nil
}
