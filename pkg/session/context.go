package session

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

type sessionContextKey struct{}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// FromContext returns the session stored by the middleware.
// A nil session is reported as absent.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*Session)
	return sess, ok && sess != nil
}

// MustFromContext is FromContext for handlers mounted behind the middleware.
// It panics when no session is present.
func MustFromContext(ctx context.Context) *Session {
	sess, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return sess
}

// IDFromContext returns the current identifier of the session in ctx.
func IDFromContext(ctx context.Context) (string, bool) {
	sess, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return sess.ID(), true
}

// LogExtractor adds the session id to records logged with a request context.
//
//	log := logger.New(logger.WithContextExtractors(session.LogExtractor()))
func LogExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, ok := IDFromContext(ctx)
		if !ok || id == "" {
			return slog.Attr{}, false
		}
		return logger.SessionID(id), true
	}
}
