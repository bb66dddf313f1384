package session_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func TestMiddleware_CookieRoundTrip(t *testing.T) {
	t.Parallel()

	m := session.New(newCookieBackend(t, testSecret), session.WithLogger(logger.Discard()))

	var seen any
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.MustFromContext(r.Context())
		seen, _ = sess.Get("user_id")
		if r.URL.Path == "/login" {
			sess.Set("user_id", 42)
		}
		_, _ = io.WriteString(w, "ok")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	c := responseCookie(w)
	require.NotNil(t, c)
	assert.Nil(t, seen)

	r := httptest.NewRequest(http.MethodGet, "/profile", nil)
	r.AddCookie(c)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, 42, seen)
	assert.Nil(t, responseCookie(w), "unchanged session is not rewritten")
}

func TestMiddleware_FinalizesBeforeHeaders(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	m := session.New(newStoreBackend(t, store), session.WithLogger(logger.Discard()))

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session.MustFromContext(r.Context()).Set("k", "v")
		w.WriteHeader(http.StatusCreated)
		session.MustFromContext(r.Context()).Set("late", true)
		_, _ = io.WriteString(w, "created")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, responseCookie(w))
	assert.Equal(t, 1, store.saveCalls)
}

func TestMiddleware_FinalizesSilentHandler(t *testing.T) {
	t.Parallel()

	m := session.New(newCookieBackend(t, testSecret), session.WithLogger(logger.Discard()))
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session.MustFromContext(r.Context()).Set("flash", "hello")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, responseCookie(w))
}

func TestMiddleware_TamperedCookie(t *testing.T) {
	t.Parallel()

	signing := newCookieBackend(t, "another-secret-value")
	sess, err := signing.Generate(t.Context())
	require.NoError(t, err)
	sess.Set("user_id", 1)
	packed, err := signing.Pack(t.Context(), sess)
	require.NoError(t, err)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	t.Run("default error handler", func(t *testing.T) {
		m := session.New(newCookieBackend(t, testSecret), session.WithLogger(logger.Discard()))
		w := httptest.NewRecorder()
		m.Middleware(next).ServeHTTP(w, requestWithCookie(packed))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Session error", strings.TrimSpace(w.Body.String()))
		assert.False(t, called)
	})

	t.Run("custom error handler", func(t *testing.T) {
		var got error
		m := session.New(newCookieBackend(t, testSecret),
			session.WithLogger(logger.Discard()),
			session.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
				got = err
				w.WriteHeader(http.StatusBadRequest)
			}),
		)
		w := httptest.NewRecorder()
		m.Middleware(next).ServeHTTP(w, requestWithCookie(packed))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.ErrorIs(t, got, session.ErrTamperedCookie)
	})
}

func TestMiddleware_OverflowReplacesResponse(t *testing.T) {
	t.Parallel()

	m := session.New(
		newCookieBackend(t, testSecret, session.WithMaxCookieSize(64)),
		session.WithLogger(logger.Discard()),
	)
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session.MustFromContext(r.Context()).Set("blob", strings.Repeat("x", 512))
		_, _ = io.WriteString(w, "handler output")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "handler output")
	assert.Nil(t, responseCookie(w))
}

func TestMiddleware_Flush(t *testing.T) {
	t.Parallel()

	m := session.New(newCookieBackend(t, testSecret), session.WithLogger(logger.Discard()))
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session.MustFromContext(r.Context()).Set("k", "v")
		require.NoError(t, http.NewResponseController(w).Flush())
		_, _ = io.WriteString(w, "streamed")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, w.Flushed)
	assert.Equal(t, "streamed", w.Body.String())
	require.NotNil(t, responseCookie(w))
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	_, ok := session.FromContext(ctx)
	assert.False(t, ok)
	_, ok = session.IDFromContext(ctx)
	assert.False(t, ok)
	assert.Panics(t, func() { session.MustFromContext(ctx) })

	sess, err := newCookieBackend(t, testSecret).Generate(ctx)
	require.NoError(t, err)
	ctx = session.WithSession(ctx, sess)

	got, ok := session.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, sess, got)
	id, ok := session.IDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, sess.ID(), id)
}

func TestLogExtractor(t *testing.T) {
	t.Parallel()

	extract := session.LogExtractor()
	_, ok := extract(t.Context())
	assert.False(t, ok)

	sess, err := newCookieBackend(t, testSecret).Generate(t.Context())
	require.NoError(t, err)

	attr, ok := extract(session.WithSession(t.Context(), sess))
	require.True(t, ok)
	assert.Equal(t, "session_id", attr.Key)
	assert.Equal(t, sess.ID(), attr.Value.String())
}
