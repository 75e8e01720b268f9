package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetUserID(t *testing.T) {
	// Use mock keyring for testing
	gokeyring.MockInit()

	if err := SetUserID("user-a1b2c3"); err != nil {
		t.Fatalf("SetUserID() failed: %v", err)
	}

	got, err := GetUserID()
	if err != nil {
		t.Fatalf("GetUserID() failed: %v", err)
	}
	if got != "user-a1b2c3" {
		t.Errorf("GetUserID() = %q, want %q", got, "user-a1b2c3")
	}
}

func TestSetUserIDEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetUserID(""); err == nil {
		t.Error("SetUserID(\"\") should return an error")
	}
}

func TestGetUserIDNotFound(t *testing.T) {
	gokeyring.MockInit()

	// Ensure nothing is stored
	_ = DeleteUserID()

	_, err := GetUserID()
	if err != ErrNotFound {
		t.Errorf("GetUserID() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteUserID(t *testing.T) {
	gokeyring.MockInit()

	if err := SetUserID("user-a1b2c3"); err != nil {
		t.Fatalf("SetUserID() failed: %v", err)
	}
	if err := DeleteUserID(); err != nil {
		t.Fatalf("DeleteUserID() failed: %v", err)
	}

	if _, err := GetUserID(); err != ErrNotFound {
		t.Errorf("GetUserID() after delete error = %v, want %v", err, ErrNotFound)
	}
}

func TestUserIDAndConnectionStringAreSeparate(t *testing.T) {
	gokeyring.MockInit()

	if err := SetUserID("user-a1b2c3"); err != nil {
		t.Fatalf("SetUserID() failed: %v", err)
	}
	if err := SetConnectionString("postgres://momentum@localhost:5432/momentum?sslmode=disable"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	userID, err := GetUserID()
	if err != nil {
		t.Fatalf("GetUserID() failed: %v", err)
	}
	if userID != "user-a1b2c3" {
		t.Errorf("GetUserID() = %q, want %q", userID, "user-a1b2c3")
	}

	connStr, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if connStr == userID {
		t.Error("connection string entry should not collide with user id entry")
	}
}
