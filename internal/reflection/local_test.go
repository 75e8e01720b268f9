package reflection

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	apperr "github.com/momentum-app/momentum/internal/errors"
	"github.com/momentum-app/momentum/internal/logger"
)

type fakeProvider struct {
	values   map[string]string
	writes   int
	readErr  error
	writeErr error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{values: make(map[string]string)}
}

func (p *fakeProvider) Init() error  { return nil }
func (p *fakeProvider) Load() error  { return nil }
func (p *fakeProvider) Close() error { return nil }

func (p *fakeProvider) Read(key string) (string, bool, error) {
	if p.readErr != nil {
		return "", false, p.readErr
	}
	value, ok := p.values[key]
	return value, ok, nil
}

func (p *fakeProvider) Write(key, value string) error {
	if p.writeErr != nil {
		return p.writeErr
	}
	p.values[key] = value
	p.writes++
	return nil
}

func (p *fakeProvider) GetConfigPath() string { return "fake" }

func TestMain(m *testing.M) {
	logger.InitForTest(io.Discard)
	m.Run()
}

func TestLocalCreateValidation(t *testing.T) {
	provider := newFakeProvider()
	log := NewLocalLog(provider)

	_, err := log.Create(context.Background(), "", "x", "y")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Create() error = %v, want ValidationError", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0] != "successes" {
		t.Errorf("ValidationError fields = %v, want [successes]", ve.Fields)
	}
	if provider.writes != 0 {
		t.Error("failed Create() must not write")
	}
}

func TestLocalCreateValidationNamesAllEmptyFields(t *testing.T) {
	log := NewLocalLog(newFakeProvider())

	_, err := log.Create(context.Background(), " ", "", "\t")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Create() error = %v, want ValidationError", err)
	}
	if len(ve.Fields) != 3 {
		t.Errorf("ValidationError fields = %v, want all three named", ve.Fields)
	}
}

func TestLocalCreatePrepends(t *testing.T) {
	log := NewLocalLog(newFakeProvider())
	base := time.Date(2026, 2, 10, 21, 0, 0, 0, time.UTC)
	log.now = func() time.Time { return base }

	if _, err := log.Create(context.Background(), "first", "a", "b"); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	log.now = func() time.Time { return base.Add(time.Hour) }
	if _, err := log.Create(context.Background(), "second", "a", "b"); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	reflections, err := log.List(context.Background())
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(reflections) != 2 {
		t.Fatalf("expected 2 reflections, got %d", len(reflections))
	}
	if reflections[0].Successes != "second" {
		t.Errorf("List()[0].Successes = %q, want most recent first", reflections[0].Successes)
	}
	if !reflections[0].Date.After(reflections[1].Date) {
		t.Error("expected descending dates")
	}
}

func TestLocalCreateStorageFailurePropagates(t *testing.T) {
	provider := newFakeProvider()
	provider.writeErr = &apperr.StorageError{Op: "write", Key: "reflections", Err: errors.New("disk full")}
	log := NewLocalLog(provider)

	_, err := log.Create(context.Background(), "a", "b", "c")
	var se *apperr.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("Create() error = %v, want StorageError", err)
	}

	// The failed entry must not appear in a later listing.
	provider.writeErr = nil
	reflections, err := log.List(context.Background())
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(reflections) != 0 {
		t.Error("failed Create() must not leave a partial entry behind")
	}
}

func TestLocalListDegradesOnReadError(t *testing.T) {
	provider := newFakeProvider()
	provider.readErr = &apperr.StorageError{Op: "read", Key: "reflections", Err: errors.New("io fault")}
	log := NewLocalLog(provider)

	reflections, err := log.List(context.Background())
	if err != nil {
		t.Fatalf("List() must degrade, got error: %v", err)
	}
	if len(reflections) != 0 {
		t.Errorf("expected empty result, got %d entries", len(reflections))
	}
}

func TestLocalListEmptyBeforeFirstWrite(t *testing.T) {
	log := NewLocalLog(newFakeProvider())

	reflections, err := log.List(context.Background())
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(reflections) != 0 {
		t.Errorf("expected empty log, got %d entries", len(reflections))
	}
}
