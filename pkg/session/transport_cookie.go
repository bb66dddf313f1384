package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// CookieTransport implements Transport using a named cookie
type CookieTransport struct {
	cookieMgr  *cookie.Manager
	cookieName string
	options    []cookie.Option
}

// NewCookieTransport creates a cookie-based transport. Options apply on every write.
func NewCookieTransport(cookieMgr *cookie.Manager, cookieName string, opts ...cookie.Option) *CookieTransport {
	if cookieMgr == nil {
		cookieMgr = cookie.New()
	}
	return &CookieTransport{
		cookieMgr:  cookieMgr,
		cookieName: cookieName,
		options:    opts,
	}
}

// Read returns the raw cookie value
func (t *CookieTransport) Read(r *http.Request) (string, error) {
	value, err := t.cookieMgr.Get(r, t.cookieName)
	if err != nil {
		if errors.Is(err, cookie.ErrCookieNotFound) {
			return "", ErrNoValue
		}
		return "", err
	}
	return value, nil
}

// Write sets the cookie; a positive ttl becomes its Max-Age
func (t *CookieTransport) Write(w http.ResponseWriter, value string, ttl time.Duration) error {
	opts := t.options
	if ttl > 0 {
		opts = append([]cookie.Option{cookie.WithTTL(ttl)}, t.options...)
	}
	return t.cookieMgr.Set(w, t.cookieName, value, opts...)
}

// Clear expires the cookie
func (t *CookieTransport) Clear(w http.ResponseWriter) error {
	t.cookieMgr.Delete(w, t.cookieName)
	return nil
}
