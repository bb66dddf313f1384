package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// DefaultIDRetryLimit bounds the attempts made to find an unused identifier.
const DefaultIDRetryLimit = 100

// IDGenerator produces candidate session identifiers.
type IDGenerator func() string

// NewID returns a random 32-character hex identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// generateFreeID draws identifiers until one is unknown to the store.
// An identifier is taken when Retrieve returns data or fails to decode the
// record behind it; any other failure is logged and the candidate is accepted.
func generateFreeID(ctx context.Context, store Store, gen IDGenerator, limit int, log *slog.Logger) (string, error) {
	if limit <= 0 {
		limit = DefaultIDRetryLimit
	}
	for range limit {
		id := gen()
		attrs, err := store.Retrieve(ctx, id)
		switch {
		case err == nil && attrs != nil:
			continue
		case errors.Is(err, ErrDecode):
			continue
		case err != nil && !errors.Is(err, ErrNotFound):
			log.WarnContext(ctx, "session id lookup failed, accepting candidate",
				logger.Component("session"),
				logger.Operation("generate_id"),
				logger.Error(err),
			)
		}
		return id, nil
	}
	return "", fmt.Errorf("%w: %d attempts", ErrIDExhausted, limit)
}
