package identity

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	apperr "github.com/momentum-app/momentum/internal/errors"
	"github.com/momentum-app/momentum/internal/keyring"
)

func TestStaticProvider(t *testing.T) {
	id, err := Static("user-42").UserID()
	if err != nil {
		t.Fatalf("UserID() failed: %v", err)
	}
	if id != "user-42" {
		t.Errorf("UserID() = %q, want %q", id, "user-42")
	}
}

func TestStaticProviderEmpty(t *testing.T) {
	_, err := Static("").UserID()
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("UserID() error = %v, want ErrUnauthenticated", err)
	}

	_, err = Static("   ").UserID()
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("UserID() with blank id error = %v, want ErrUnauthenticated", err)
	}
}

func TestKeyringProvider(t *testing.T) {
	gokeyring.MockInit()

	if err := keyring.SetUserID("user-77"); err != nil {
		t.Fatalf("SetUserID() failed: %v", err)
	}

	id, err := NewKeyringProvider().UserID()
	if err != nil {
		t.Fatalf("UserID() failed: %v", err)
	}
	if id != "user-77" {
		t.Errorf("UserID() = %q, want %q", id, "user-77")
	}
}

func TestKeyringProviderLoggedOut(t *testing.T) {
	gokeyring.MockInit()
	_ = keyring.DeleteUserID()

	_, err := NewKeyringProvider().UserID()
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("UserID() error = %v, want ErrUnauthenticated", err)
	}
}
