package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// ErrorHandler renders a response for a session setup or finalize failure.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler responds with 500 "Session error".
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, _ error) {
	http.Error(w, "Session error", http.StatusInternalServerError)
}

// Manager coordinates the session lifecycle of one configured backend.
type Manager struct {
	backend      Backend
	errorHandler ErrorHandler
	log          *slog.Logger
	observer     Observer
}

// New creates a manager around backend.
// It panics if backend is nil.
func New(backend Backend, opts ...Option) *Manager {
	if backend == nil {
		panic("session: backend is required")
	}

	m := &Manager{
		backend:      backend,
		errorHandler: DefaultErrorHandler,
		log:          slog.Default(),
		observer:     nopObserver{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(logger.Component("session"), logger.Backend(string(backend.Kind())))

	return m
}

// Backend returns the configured backend
func (m *Manager) Backend() Backend { return m.backend }

// Kind names the configured backend
func (m *Manager) Kind() Kind { return m.backend.Kind() }

// Generate creates a fresh session
func (m *Manager) Generate(ctx context.Context) (*Session, error) {
	return m.backend.Generate(ctx)
}

// Setup loads or creates the session for the request
func (m *Manager) Setup(ctx context.Context, r *http.Request) (*Session, error) {
	return m.backend.Setup(ctx, r)
}

// Finalize persists the session and updates the response
func (m *Manager) Finalize(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	return m.backend.Finalize(ctx, w, sess)
}

// Regenerate assigns a new identifier to the session
func (m *Manager) Regenerate(ctx context.Context, sess *Session) error {
	return m.backend.Regenerate(ctx, sess)
}
