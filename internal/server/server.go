// Package server is the momentum backend: a thin HTTP facade over the
// reflection and habit-snapshot document store.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	apperr "github.com/momentum-app/momentum/internal/errors"
	"github.com/momentum-app/momentum/internal/logger"
)

type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	store      *DocStore
}

type Config struct {
	Port  int
	Store *DocStore
}

func New(cfg Config) *Server {
	s := &Server{store: cfg.Store}
	s.setupRouter()
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.router,
	}
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/reflections", s.handleCreateReflection)
		r.Get("/reflections/{userID}", s.handleListReflections)
		r.Put("/reflections/{id}", s.handleUpdateReflection)
		r.Delete("/reflections/{id}", s.handleDeleteReflection)

		r.Post("/habits", s.handleSyncHabits)
		r.Get("/habits/{userID}", s.handleGetHabits)
	})

	s.router = r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	logger.Info("Backend listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// --- Handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		logger.Error("Health check failed", "error", err)
		s.respondError(w, http.StatusServiceUnavailable, "document store unreachable")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateReflection(w http.ResponseWriter, r *http.Request) {
	var doc ReflectionDoc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var missing []string
	if strings.TrimSpace(doc.UserID) == "" {
		missing = append(missing, "userId")
	}
	if strings.TrimSpace(doc.Success) == "" {
		missing = append(missing, "success")
	}
	if strings.TrimSpace(doc.Improvement) == "" {
		missing = append(missing, "improvement")
	}
	if strings.TrimSpace(doc.Journal) == "" {
		missing = append(missing, "journal")
	}
	if len(missing) > 0 {
		s.respondError(w, http.StatusBadRequest, apperr.NewValidation(missing...).Error())
		return
	}

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.Date == "" {
		doc.Date = time.Now().UTC().Format(reflectionDateFormat)
	} else {
		parsed, err := time.Parse(time.RFC3339Nano, doc.Date)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid date")
			return
		}
		doc.Date = parsed.UTC().Format(reflectionDateFormat)
	}

	if err := s.store.SaveReflection(r.Context(), doc); err != nil {
		logger.Error("Failed to store reflection", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to store reflection")
		return
	}
	s.respondJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListReflections(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	docs, err := s.store.ReflectionsByUser(r.Context(), userID)
	if err != nil {
		logger.Error("Failed to list reflections", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to list reflections")
		return
	}
	s.respondJSON(w, http.StatusOK, docs)
}

func (s *Server) handleUpdateReflection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var doc ReflectionDoc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := s.store.UpdateReflection(r.Context(), id, doc.Success, doc.Improvement, doc.Journal)
	if errors.Is(err, apperr.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "reflection not found")
		return
	}
	if err != nil {
		logger.Error("Failed to update reflection", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to update reflection")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteReflection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.store.DeleteReflection(r.Context(), id)
	if errors.Is(err, apperr.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "reflection not found")
		return
	}
	if err != nil {
		logger.Error("Failed to delete reflection", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to delete reflection")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type habitSnapshot struct {
	UserID string          `json:"userId"`
	Habits json.RawMessage `json:"habits"`
}

func (s *Server) handleSyncHabits(w http.ResponseWriter, r *http.Request) {
	var req habitSnapshot
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		s.respondError(w, http.StatusBadRequest, apperr.NewValidation("userId").Error())
		return
	}
	if len(req.Habits) == 0 {
		s.respondError(w, http.StatusBadRequest, apperr.NewValidation("habits").Error())
		return
	}

	if err := s.store.SaveHabitSnapshot(r.Context(), req.UserID, string(req.Habits)); err != nil {
		logger.Error("Failed to store habit snapshot", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to store habits")
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"status": "stored"})
}

func (s *Server) handleGetHabits(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	habits, ok, err := s.store.HabitSnapshot(r.Context(), userID)
	if err != nil {
		logger.Error("Failed to load habit snapshot", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to load habits")
		return
	}
	if !ok {
		s.respondError(w, http.StatusNotFound, "no habits synced for user")
		return
	}

	s.respondJSON(w, http.StatusOK, habitSnapshot{
		UserID: userID,
		Habits: json.RawMessage(habits),
	})
}
