package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperr "github.com/momentum-app/momentum/internal/errors"
	"github.com/momentum-app/momentum/internal/models"
)

func TestSaveReflection(t *testing.T) {
	var got ReflectionRecord
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/reflections" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	r := models.Reflection{
		ID:           "r1",
		Date:         time.Date(2026, 2, 10, 21, 0, 0, 0, time.UTC),
		Successes:    "shipped the feature",
		Improvements: "start earlier",
		Journal:      "good day",
	}
	if err := client.SaveReflection(context.Background(), "user-1", r); err != nil {
		t.Fatalf("SaveReflection() failed: %v", err)
	}

	if got.UserID != "user-1" {
		t.Errorf("userId = %q, want user-1", got.UserID)
	}
	if got.Success != "shipped the feature" || got.Improvement != "start earlier" {
		t.Errorf("wire fields = %q/%q, want success/improvement values", got.Success, got.Improvement)
	}
}

func TestReflections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/reflections/user-1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]ReflectionRecord{
			{ID: "r2", Success: "later", Improvement: "b", Journal: "c"},
			{ID: "r1", Success: "earlier", Improvement: "b", Journal: "c"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	reflections, err := client.Reflections(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Reflections() failed: %v", err)
	}
	if len(reflections) != 2 {
		t.Fatalf("expected 2 reflections, got %d", len(reflections))
	}
	if reflections[0].ID != "r2" {
		t.Errorf("expected backend order preserved, got %q first", reflections[0].ID)
	}
	if reflections[0].Successes != "later" {
		t.Errorf("Successes = %q, want translated from success", reflections[0].Successes)
	}
}

func TestSyncHabits(t *testing.T) {
	var got HabitSnapshot
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/habits" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	habits := []models.Habit{{ID: "h1", Name: "Exercise"}}
	if err := client.SyncHabits(context.Background(), "user-1", habits); err != nil {
		t.Fatalf("SyncHabits() failed: %v", err)
	}
	if got.UserID != "user-1" || len(got.Habits) != 1 {
		t.Errorf("snapshot = %+v, want user-1 with 1 habit", got)
	}
}

func TestErrorStatusBecomesTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.SaveReflection(context.Background(), "user-1", models.Reflection{ID: "r1"})
	var te *apperr.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want TransportError", err)
	}
	if te.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", te.Status)
	}
}

func TestUnreachableBackendBecomesTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL)
	err := client.Health(context.Background())
	var te *apperr.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want TransportError", err)
	}
	if te.Err == nil {
		t.Error("expected wrapped network error")
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health() failed: %v", err)
	}
}
