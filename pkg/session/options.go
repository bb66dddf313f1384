package session

import "log/slog"

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithErrorHandler replaces the response rendered on session failures
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *Manager) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithLogger sets the logger used by the manager
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithObserver sets the lifecycle observer handed to backends built by NewFromConfig
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		if o != nil {
			m.observer = o
		}
	}
}
