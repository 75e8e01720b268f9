package keyring

import (
	"errors"
	"fmt"

	"github.com/momentum-app/momentum/internal/constants"
	"github.com/zalando/go-keyring"
)

var (
	// ErrNotFound is returned when no entry is found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(entry string) (string, error) {
	value, err := keyring.Get(constants.AppName, entry)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func set(entry, value string) error {
	if value == "" {
		return errors.New("keyring value cannot be empty")
	}
	if err := keyring.Set(constants.AppName, entry, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", entry, err)
	}
	return nil
}

func del(entry string) error {
	err := keyring.Delete(constants.AppName, entry)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", entry, err)
	}
	return nil
}

// GetUserID retrieves the opaque user identifier for the current session.
// Returns ErrNotFound if no user is logged in.
func GetUserID() (string, error) {
	return get(constants.KeyringUserEntry)
}

// SetUserID stores the user identifier in the OS keyring.
func SetUserID(userID string) error {
	return set(constants.KeyringUserEntry, userID)
}

// DeleteUserID removes the user identifier from the OS keyring.
func DeleteUserID() error {
	return del(constants.KeyringUserEntry)
}

// GetConnectionString retrieves the database connection string from the OS
// keyring. Returns ErrNotFound if no credentials are stored.
func GetConnectionString() (string, error) {
	return get(constants.KeyringDatabaseEntry)
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	return set(constants.KeyringDatabaseEntry, connStr)
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	return del(constants.KeyringDatabaseEntry)
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// ErrNotFound means the keyring is reachable but empty; anything else
	// likely means it is not usable.
	return err == nil || err == keyring.ErrNotFound
}
