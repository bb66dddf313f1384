package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

const (
	testSecret     = "0123456789abcdef"
	testCookieName = "_session_id"
)

func newCookieBackend(t testing.TB, secret string, opts ...session.CookieOption) *session.CookieBackend {
	t.Helper()
	opts = append([]session.CookieOption{session.WithCookieLogger(logger.Discard())}, opts...)
	b, err := session.NewCookieBackend(secret, session.NewCookieTransport(cookie.New(), testCookieName), opts...)
	require.NoError(t, err)
	return b
}

func newStoreBackend(t testing.TB, store session.Store, opts ...session.StoreOption) *session.StoreBackend {
	t.Helper()
	opts = append([]session.StoreOption{session.WithStoreLogger(logger.Discard())}, opts...)
	b, err := session.NewStoreBackend(store, session.NewCookieTransport(cookie.New(), testCookieName), opts...)
	require.NoError(t, err)
	return b
}

func requestWithCookie(value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		r.AddCookie(&http.Cookie{Name: testCookieName, Value: value})
	}
	return r
}

func responseCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	return nil
}

// fakeStore records calls and can simulate failures and collisions.
type fakeStore struct {
	mu      sync.Mutex
	records map[string]*session.Attributes

	retrieveCalls int
	saveCalls     int
	deleteCalls   int

	retrieveErr error
	saveErr     error
	deleteErr   error
	alwaysTaken bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*session.Attributes)}
}

func (s *fakeStore) Retrieve(_ context.Context, id string) (*session.Attributes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retrieveCalls++
	if s.retrieveErr != nil {
		return nil, s.retrieveErr
	}
	if s.alwaysTaken {
		return session.NewAttributes(map[string]any{"taken": true}), nil
	}
	attrs, ok := s.records[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return attrs.Clone(), nil
}

func (s *fakeStore) Save(_ context.Context, id string, attrs *session.Attributes) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records[id] = attrs.Clone()
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.records, id)
	return nil
}

func (s *fakeStore) has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[id]
	return ok
}

// eventLog is an Observer that remembers every event.
type eventLog struct {
	mu     sync.Mutex
	events []session.Event
}

func (l *eventLog) Observe(_ context.Context, _ session.Kind, e session.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) count(e session.Event) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, got := range l.events {
		if got == e {
			n++
		}
	}
	return n
}

// sequence returns an IDGenerator yielding ids in order, then repeating the last.
func sequence(ids ...string) session.IDGenerator {
	var mu sync.Mutex
	i := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		id := ids[min(i, len(ids)-1)]
		i++
		return id
	}
}
