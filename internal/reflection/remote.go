package reflection

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperr "github.com/momentum-app/momentum/internal/errors"
	"github.com/momentum-app/momentum/internal/identity"
	"github.com/momentum-app/momentum/internal/logger"
	"github.com/momentum-app/momentum/internal/models"
)

// remoteAPI is the slice of the backend client the remote log needs.
type remoteAPI interface {
	SaveReflection(ctx context.Context, userID string, r models.Reflection) error
	Reflections(ctx context.Context, userID string) ([]models.Reflection, error)
}

// RemoteLog delegates reflections to the backend, keyed by the session's
// user id. Ordering is the backend's contract (descending by date).
type RemoteLog struct {
	client   remoteAPI
	identity identity.Provider
	now      func() time.Time
}

func NewRemoteLog(client remoteAPI, id identity.Provider) *RemoteLog {
	return &RemoteLog{
		client:   client,
		identity: id,
		now:      time.Now,
	}
}

func (l *RemoteLog) Create(ctx context.Context, successes, improvements, journal string) (models.Reflection, error) {
	if err := validate(successes, improvements, journal); err != nil {
		return models.Reflection{}, err
	}

	// Identity is required before any HTTP call goes out.
	userID, err := l.identity.UserID()
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

	if err := l.client.SaveReflection(ctx, userID, r); err != nil {
		return models.Reflection{}, err
	}
	return r, nil
}

func (l *RemoteLog) List(ctx context.Context) ([]models.Reflection, error) {
	userID, err := l.identity.UserID()
	if err != nil {
		return nil, err
	}

	reflections, err := l.client.Reflections(ctx, userID)
	if err != nil {
		var te *apperr.TransportError
		if errors.As(err, &te) {
			logger.Error("Failed to fetch reflections", "error", err)
			return []models.Reflection{}, nil
		}
		return nil, err
	}
	return reflections, nil
}
