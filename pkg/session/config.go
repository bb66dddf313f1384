package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/signer"
)

// Config holds session configuration
type Config struct {
	// Backend selects where attributes live: "cookie" or "store"
	Backend string `env:"SESSION_BACKEND" envDefault:"cookie" yaml:"backend"`

	// CookieName is the name of the session cookie
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"_session_id" yaml:"cookie_name"`

	// Secret signs cookie-backend payloads; at least 16 characters
	Secret string `env:"SESSION_SECRET" yaml:"secret"`

	Digest string `env:"SESSION_DIGEST" envDefault:"sha1" yaml:"digest"`
	Codec  string `env:"SESSION_CODEC" envDefault:"gob" yaml:"codec"`

	// IgnoreTamperedCookies turns a bad signature into a fresh session instead of an error
	IgnoreTamperedCookies bool `env:"SESSION_IGNORE_TAMPERED" envDefault:"false" yaml:"ignore_tampered_cookies"`

	MaxCookieSize int `env:"SESSION_MAX_COOKIE_SIZE" envDefault:"4096" yaml:"max_cookie_size"`
	IDRetryLimit  int `env:"SESSION_ID_RETRY_LIMIT" envDefault:"100" yaml:"id_retry_limit"`

	// TTL is the cookie lifetime; zero makes it a browser-session cookie
	TTL time.Duration `env:"SESSION_TTL" envDefault:"336h" yaml:"ttl"`

	// SecureCookies enables the Secure flag on session cookies (recommended for production)
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false" yaml:"secure_cookies"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		Backend:       string(KindCookie),
		CookieName:    "_session_id",
		Digest:        signer.DefaultDigest.Name,
		Codec:         "gob",
		MaxCookieSize: DefaultMaxCookieSize,
		IDRetryLimit:  DefaultIDRetryLimit,
		TTL:           14 * 24 * time.Hour,
	}
}

// Kind returns the configured backend kind
func (c Config) Kind() (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(c.Backend))); k {
	case "", KindCookie:
		return KindCookie, nil
	case KindStore:
		return KindStore, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
}

// NewFromConfig builds a Manager with a cookie transport for the configured
// backend. store is required for the store backend and ignored otherwise.
// WithLogger and WithObserver options also apply to the backend.
func NewFromConfig(cfg Config, store Store, opts ...Option) (*Manager, error) {
	settings := &Manager{observer: nopObserver{}}
	for _, opt := range opts {
		opt(settings)
	}

	kind, err := cfg.Kind()
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	codec, err := CodecByName(cfg.Codec)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	name := cfg.CookieName
	if name == "" {
		name = DefaultConfig().CookieName
	}
	transport := NewCookieTransport(cookie.New(cookie.WithSecure(cfg.SecureCookies)), name)

	var backend Backend
	switch kind {
	case KindStore:
		backend, err = NewStoreBackend(store, transport,
			WithIDRetryLimit(cfg.IDRetryLimit),
			WithStoreCodec(codec),
			WithStoreTTL(cfg.TTL),
			WithStoreLogger(settings.log),
			WithStoreObserver(settings.observer),
		)
	default:
		digest, derr := signer.LookupDigest(cfg.Digest)
		if derr != nil {
			return nil, errors.Join(ErrInvalidConfig, derr)
		}
		backend, err = NewCookieBackend(cfg.Secret, transport,
			WithDigest(digest),
			WithCodec(codec),
			WithIgnoreTampered(cfg.IgnoreTamperedCookies),
			WithMaxCookieSize(cfg.MaxCookieSize),
			WithCookieTTL(cfg.TTL),
			WithCookieLogger(settings.log),
			WithCookieObserver(settings.observer),
		)
	}
	if err != nil {
		return nil, err
	}

	return New(backend, opts...), nil
}
