// Package habit holds the authoritative in-memory habit collection for a
// session and mirrors every mutation to the local durable store.
package habit

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/momentum-app/momentum/internal/constants"
	apperr "github.com/momentum-app/momentum/internal/errors"
	"github.com/momentum-app/momentum/internal/logger"
	"github.com/momentum-app/momentum/internal/models"
	"github.com/momentum-app/momentum/internal/storage"
)

// Store owns the ordered habit list for one session. All mutating
// operations are serialized: the in-memory mutation and its write-through
// happen under one lock, so a rapid double-toggle can never persist stale
// data. The in-memory list stays authoritative when a write-through fails;
// durability is best-effort and failures are logged, not surfaced.
type Store struct {
	mu       sync.Mutex
	provider storage.Provider
	habits   []models.Habit
	seed     bool
}

// Option configures a Store.
type Option func(*Store)

// WithSeed populates an empty store with example habits on first load.
// Prototype mode only.
func WithSeed() Option {
	return func(s *Store) { s.seed = true }
}

// NewStore creates a habit store backed by the given provider.
func NewStore(provider storage.Provider, opts ...Option) *Store {
	s := &Store{provider: provider}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted collection under the "habits" key. Loading is
// fail-soft: a missing key starts the collection empty (or seeded), and a
// read or parse error leaves the in-memory list untouched with the error
// logged.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok, err := s.provider.Read(constants.StorageKeyHabits)
	if err != nil {
		logger.Error("Failed to load habits", "error", err)
		return
	}
	if !ok {
		if s.seed {
			s.habits = seedHabits()
			s.persistLocked()
		}
		return
	}

	var habits []models.Habit
	if err := json.Unmarshal([]byte(value), &habits); err != nil {
		logger.Error("Failed to parse stored habits", "error", err)
		return
	}
	s.habits = habits
}

// Add validates the input, appends a new habit with a fresh id and derived
// color, and writes the updated collection through. Returns the created
// habit.
func (s *Store) Add(input models.HabitInput) (models.Habit, error) {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Cue) == "" {
		missing = append(missing, "cue")
	}
	if strings.TrimSpace(input.Reward) == "" {
		missing = append(missing, "reward")
	}
	if !input.Category.Valid() {
		missing = append(missing, "category")
	}
	if !input.Frequency.Valid() {
		missing = append(missing, "frequency")
	}
	if len(missing) > 0 {
		return models.Habit{}, apperr.NewValidation(missing...)
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(input.Name),
		Category:  input.Category,
		Color:     input.Category.Color(),
		Cue:       strings.TrimSpace(input.Cue),
		Reward:    strings.TrimSpace(input.Reward),
		Frequency: input.Frequency,
		Progress:  0,
		Streak:    0,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.habits = append(s.habits, habit)
	s.persistLocked()
	return habit, nil
}

// Toggle flips the habit's completion between the two endpoints and adjusts
// the streak: 0→1 increments, 1→0 decrements with a floor at zero. This is
// the only mutation path for progress and streak.
func (s *Store) Toggle(id string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.habits {
		if s.habits[i].ID != id {
			continue
		}

		if s.habits[i].Progress == 1 {
			s.habits[i].Progress = 0
			if s.habits[i].Streak > 0 {
				s.habits[i].Streak--
			}
		} else {
			s.habits[i].Progress = 1
			s.habits[i].Streak++
		}

		s.persistLocked()
		return s.habits[i], nil
	}

	return models.Habit{}, apperr.ErrNotFound
}

// Remove deletes the habit with the given id and writes the updated
// collection through. Removing an unknown id is an error, not a no-op.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.habits {
		if s.habits[i].ID == id {
			s.habits = append(s.habits[:i], s.habits[i+1:]...)
			s.persistLocked()
			return nil
		}
	}

	return apperr.ErrNotFound
}

// List returns a copy of the current ordered habit list.
func (s *Store) List() []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits := make([]models.Habit, len(s.habits))
	copy(habits, s.habits)
	return habits
}

// persistLocked writes the full collection through to the provider. Called
// with s.mu held, after the in-memory mutation. Failures keep the session's
// in-memory state authoritative.
func (s *Store) persistLocked() {
	data, err := json.Marshal(s.habits)
	if err != nil {
		logger.Error("Failed to serialize habits", "error", err)
		return
	}
	if err := s.provider.Write(constants.StorageKeyHabits, string(data)); err != nil {
		logger.Error("Failed to persist habits", "error", err)
	}
}

// seedHabits returns the example habits shown before a user has created any.
func seedHabits() []models.Habit {
	return []models.Habit{
		{
			ID:        uuid.New().String(),
			Name:      "Morning Meditation",
			Category:  models.CategoryMindfulness,
			Color:     models.CategoryMindfulness.Color(),
			Cue:       "After waking up",
			Reward:    "A calm start",
			Frequency: models.FrequencyDaily,
			Progress:  0.8,
			Streak:    5,
		},
		{
			ID:        uuid.New().String(),
			Name:      "Read 30 mins",
			Category:  models.CategoryLearning,
			Color:     models.CategoryLearning.Color(),
			Cue:       "Before bed",
			Reward:    "One podcast episode",
			Frequency: models.FrequencyDaily,
			Progress:  0.6,
			Streak:    3,
		},
		{
			ID:        uuid.New().String(),
			Name:      "Exercise",
			Category:  models.CategoryHealth,
			Color:     models.CategoryHealth.Color(),
			Cue:       "After work",
			Reward:    "Smoothie",
			Frequency: models.FrequencyDaily,
			Progress:  0.4,
			Streak:    7,
		},
	}
}
