package reflection

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/momentum-app/momentum/internal/constants"
	apperr "github.com/momentum-app/momentum/internal/errors"
	"github.com/momentum-app/momentum/internal/logger"
	"github.com/momentum-app/momentum/internal/models"
	"github.com/momentum-app/momentum/internal/storage"
)

// LocalLog keeps reflections in the local durable store under the
// "reflections" key, newest first. Each create is a read-modify-write of
// the whole collection, serialized by a mutex.
type LocalLog struct {
	mu       sync.Mutex
	provider storage.Provider
	now      func() time.Time
}

func NewLocalLog(provider storage.Provider) *LocalLog {
	return &LocalLog{
		provider: provider,
		now:      time.Now,
	}
}

func (l *LocalLog) Create(ctx context.Context, successes, improvements, journal string) (models.Reflection, error) {
	if err := validate(successes, improvements, journal); err != nil {
		return models.Reflection{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.read()
	if err != nil {
		return models.Reflection{}, err
	}

	r := models.Reflection{
		ID:           uuid.New().String(),
		Date:         l.now().UTC(),
		Successes:    successes,
		Improvements: improvements,
		Journal:      journal,
	}

	updated := append([]models.Reflection{r}, existing...)
	data, err := json.Marshal(updated)
	if err != nil {
		return models.Reflection{}, &apperr.StorageError{Op: "serialize", Key: constants.StorageKeyReflections, Err: err}
	}
	if err := l.provider.Write(constants.StorageKeyReflections, string(data)); err != nil {
		return models.Reflection{}, err
	}

	return r, nil
}

func (l *LocalLog) List(ctx context.Context) ([]models.Reflection, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	reflections, err := l.read()
	if err != nil {
		logger.Error("Failed to load reflections", "error", err)
		return []models.Reflection{}, nil
	}
	return reflections, nil
}

// read returns the persisted collection; an absent key is an empty log.
func (l *LocalLog) read() ([]models.Reflection, error) {
	value, ok, err := l.provider.Read(constants.StorageKeyReflections)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Reflection{}, nil
	}

	var reflections []models.Reflection
	if err := json.Unmarshal([]byte(value), &reflections); err != nil {
		return nil, &apperr.StorageError{Op: "parse", Key: constants.StorageKeyReflections, Err: err}
	}
	return reflections, nil
}
