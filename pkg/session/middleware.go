package session

import (
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// Middleware sets up the session before next runs and finalizes it before
// the response headers are sent. The session is available through
// FromContext inside next.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess, err := m.backend.Setup(ctx, r)
		if err != nil {
			m.log.WarnContext(ctx, "session setup failed", logger.Error(err))
			m.errorHandler(w, r, err)
			return
		}

		r = r.WithContext(WithSession(ctx, sess))
		fw := &finalizingWriter{ResponseWriter: w}
		fw.finalize = func() bool {
			if err := m.backend.Finalize(ctx, w, sess); err != nil {
				m.log.ErrorContext(ctx, "session finalize failed",
					logger.SessionID(sess.ID()),
					logger.Error(err),
				)
				m.errorHandler(w, r, err)
				return false
			}
			return true
		}

		next.ServeHTTP(fw, r)
		fw.finish()
	})
}

// finalizingWriter runs finalize once, right before the first header or
// body byte reaches the client. When finalize fails the handler's own
// output is dropped.
type finalizingWriter struct {
	http.ResponseWriter
	finalize func() bool
	done     bool
	failed   bool
	written  bool
}

func (w *finalizingWriter) run() {
	if w.done {
		return
	}
	w.done = true
	w.failed = !w.finalize()
}

func (w *finalizingWriter) WriteHeader(status int) {
	if w.written {
		return
	}
	w.run()
	w.written = true
	if w.failed {
		return
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *finalizingWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	if w.failed {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
func (w *finalizingWriter) Flush() {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok && !w.failed {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *finalizingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// finish finalizes a session whose handler wrote nothing.
func (w *finalizingWriter) finish() {
	if !w.written {
		w.run()
	}
}
