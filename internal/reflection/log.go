// Package reflection records daily reflections. A deployment uses either
// the local variant (durable key-value store) or the remote variant
// (backend keyed by user id), never both.
package reflection

import (
	"context"
	"strings"

	apperr "github.com/momentum-app/momentum/internal/errors"
	"github.com/momentum-app/momentum/internal/models"
)

// Log is an append-only reflection collection. Reflections are immutable
// once created.
type Log interface {
	// Create validates the three fields (non-empty post-trim) and stores a
	// new reflection. Validation and authentication failures propagate, as
	// do storage/transport failures: a lost reflection is unrecoverable,
	// so silent loss is unacceptable.
	Create(ctx context.Context, successes, improvements, journal string) (models.Reflection, error)
	// List returns reflections most-recent-first. Storage and transport
	// failures degrade to an empty result with a logged error; history is
	// a non-critical read path.
	List(ctx context.Context) ([]models.Reflection, error)
}

// validate returns a ValidationError naming every empty field.
func validate(successes, improvements, journal string) error {
	var missing []string
	if strings.TrimSpace(successes) == "" {
		missing = append(missing, "successes")
	}
	if strings.TrimSpace(improvements) == "" {
		missing = append(missing, "improvements")
	}
	if strings.TrimSpace(journal) == "" {
		missing = append(missing, "journal")
	}
	if len(missing) > 0 {
		return apperr.NewValidation(missing...)
	}
	return nil
}
