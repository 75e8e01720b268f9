package reflection

import (
	"context"
	"errors"
	"testing"

	apperr "github.com/momentum-app/momentum/internal/errors"
	"github.com/momentum-app/momentum/internal/identity"
	"github.com/momentum-app/momentum/internal/models"
)

type fakeBackend struct {
	saved      []models.Reflection
	savedUsers []string
	listResult []models.Reflection
	saveErr    error
	listErr    error
	calls      int
}

func (b *fakeBackend) SaveReflection(ctx context.Context, userID string, r models.Reflection) error {
	b.calls++
	if b.saveErr != nil {
		return b.saveErr
	}
	b.saved = append(b.saved, r)
	b.savedUsers = append(b.savedUsers, userID)
	return nil
}

func (b *fakeBackend) Reflections(ctx context.Context, userID string) ([]models.Reflection, error) {
	b.calls++
	if b.listErr != nil {
		return nil, b.listErr
	}
	return b.listResult, nil
}

type failingIdentity struct{}

func (failingIdentity) UserID() (string, error) { return "", apperr.ErrUnauthenticated }

func TestRemoteCreate(t *testing.T) {
	backend := &fakeBackend{}
	log := NewRemoteLog(backend, identity.Static("user-1"))

	r, err := log.Create(context.Background(), "shipped", "slept late", "solid day")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if r.ID == "" {
		t.Error("expected a generated id")
	}
	if len(backend.saved) != 1 {
		t.Fatalf("expected 1 saved reflection, got %d", len(backend.saved))
	}
	if backend.savedUsers[0] != "user-1" {
		t.Errorf("saved under user %q, want user-1", backend.savedUsers[0])
	}
}

func TestRemoteCreateUnauthenticated(t *testing.T) {
	backend := &fakeBackend{}
	log := NewRemoteLog(backend, failingIdentity{})

	_, err := log.Create(context.Background(), "a", "b", "c")
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("Create() error = %v, want ErrUnauthenticated", err)
	}
	if backend.calls != 0 {
		t.Errorf("unauthenticated Create() issued %d backend calls, want 0", backend.calls)
	}
}

func TestRemoteCreateValidationBeforeIdentity(t *testing.T) {
	backend := &fakeBackend{}
	log := NewRemoteLog(backend, failingIdentity{})

	_, err := log.Create(context.Background(), "", "b", "c")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Create() error = %v, want ValidationError", err)
	}
	if backend.calls != 0 {
		t.Errorf("invalid Create() issued %d backend calls, want 0", backend.calls)
	}
}

func TestRemoteCreateTransportErrorPropagates(t *testing.T) {
	backend := &fakeBackend{saveErr: &apperr.TransportError{Err: errors.New("connection refused")}}
	log := NewRemoteLog(backend, identity.Static("user-1"))

	_, err := log.Create(context.Background(), "a", "b", "c")
	var te *apperr.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Create() error = %v, want TransportError", err)
	}
}

func TestRemoteList(t *testing.T) {
	backend := &fakeBackend{listResult: []models.Reflection{{ID: "r1"}, {ID: "r2"}}}
	log := NewRemoteLog(backend, identity.Static("user-1"))

	reflections, err := log.List(context.Background())
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(reflections) != 2 {
		t.Errorf("expected 2 reflections, got %d", len(reflections))
	}
}

func TestRemoteListUnauthenticated(t *testing.T) {
	backend := &fakeBackend{}
	log := NewRemoteLog(backend, failingIdentity{})

	_, err := log.List(context.Background())
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("List() error = %v, want ErrUnauthenticated", err)
	}
	if backend.calls != 0 {
		t.Errorf("unauthenticated List() issued %d backend calls, want 0", backend.calls)
	}
}

func TestRemoteListDegradesOnTransportError(t *testing.T) {
	backend := &fakeBackend{listErr: &apperr.TransportError{Status: 503}}
	log := NewRemoteLog(backend, identity.Static("user-1"))

	reflections, err := log.List(context.Background())
	if err != nil {
		t.Fatalf("List() must degrade on transport failure, got: %v", err)
	}
	if len(reflections) != 0 {
		t.Errorf("expected empty result, got %d entries", len(reflections))
	}
}
