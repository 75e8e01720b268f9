// Package identity supplies the stable opaque user identifier required by
// remote operations. Authentication itself happens elsewhere; this package
// only answers "who is the current session".
package identity

import (
	"errors"
	"strings"

	apperr "github.com/momentum-app/momentum/internal/errors"
	"github.com/momentum-app/momentum/internal/keyring"
)

// Provider yields the user id for the current session.
type Provider interface {
	// UserID returns the opaque user identifier, or ErrUnauthenticated
	// when no identity is available.
	UserID() (string, error)
}

// KeyringProvider reads the user id stored by `momentum login`.
type KeyringProvider struct{}

func NewKeyringProvider() *KeyringProvider {
	return &KeyringProvider{}
}

func (p *KeyringProvider) UserID() (string, error) {
	id, err := keyring.GetUserID()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", apperr.ErrUnauthenticated
		}
		return "", err
	}
	if strings.TrimSpace(id) == "" {
		return "", apperr.ErrUnauthenticated
	}
	return id, nil
}

// Static returns a fixed user id. Used for tests and the --user override.
type Static string

func (s Static) UserID() (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", apperr.ErrUnauthenticated
	}
	return string(s), nil
}
