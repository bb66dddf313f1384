package session

import (
	"net/http"
	"strings"
	"time"
)

// HeaderTransport implements Transport using HTTP headers.
// It suits the store backend, where the value is a bare identifier.
type HeaderTransport struct {
	headerName string
	prefix     string
}

// NewHeaderTransport creates a new header-based transport
func NewHeaderTransport(headerName string, opts ...HeaderOption) *HeaderTransport {
	t := &HeaderTransport{
		headerName: headerName,
		prefix:     "Bearer ",
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// HeaderOption is a functional option for HeaderTransport
type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix sets a custom prefix for the header value
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) {
		t.prefix = prefix
	}
}

// Read extracts the session value from the header
func (t *HeaderTransport) Read(r *http.Request) (string, error) {
	value := r.Header.Get(t.headerName)
	if value == "" {
		return "", ErrNoValue
	}

	value = strings.TrimSpace(strings.TrimPrefix(value, t.prefix))
	if value == "" {
		return "", ErrNoValue
	}
	return value, nil
}

// Write sends the session value in the response header
func (t *HeaderTransport) Write(w http.ResponseWriter, value string, ttl time.Duration) error {
	if t.prefix != "" {
		value = t.prefix + value
	}
	w.Header().Set(t.headerName, value)

	if ttl > 0 {
		w.Header().Set(t.headerName+"-Expires", time.Now().Add(ttl).Format(time.RFC3339))
	}

	return nil
}

// Clear removes the session header from the response
func (t *HeaderTransport) Clear(w http.ResponseWriter) error {
	w.Header().Del(t.headerName)
	w.Header().Del(t.headerName + "-Expires")
	return nil
}
