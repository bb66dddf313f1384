package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/signer"
)

// DefaultMaxCookieSize is the largest packed cookie value accepted, in bytes.
const DefaultMaxCookieSize = 4096

// digestSeparator joins the encoded payload and its hex digest.
const digestSeparator = "--"

// CookieBackend keeps the whole session in a signed client cookie.
// It is immutable after construction and safe for concurrent use.
type CookieBackend struct {
	signer         *signer.Signer
	transport      Transport
	codec          Codec
	ignoreTampered bool
	maxSize        int
	ttl            time.Duration
	log            *slog.Logger
	newID          IDGenerator
	observer       Observer
}

type cookieConfig struct {
	digest         signer.Digest
	codec          Codec
	ignoreTampered bool
	maxSize        int
	ttl            time.Duration
	log            *slog.Logger
	newID          IDGenerator
	observer       Observer
}

// CookieOption configures a CookieBackend.
type CookieOption func(*cookieConfig)

// WithDigest selects the HMAC digest. Default is SHA-1.
func WithDigest(d signer.Digest) CookieOption {
	return func(c *cookieConfig) { c.digest = d }
}

// WithCodec selects the attribute codec. Default is GobCodec.
func WithCodec(codec Codec) CookieOption {
	return func(c *cookieConfig) {
		if codec != nil {
			c.codec = codec
		}
	}
}

// WithIgnoreTampered downgrades a failed signature check to a fresh session.
func WithIgnoreTampered(ignore bool) CookieOption {
	return func(c *cookieConfig) { c.ignoreTampered = ignore }
}

// WithMaxCookieSize overrides the packed value ceiling.
func WithMaxCookieSize(n int) CookieOption {
	return func(c *cookieConfig) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// WithCookieTTL sets the lifetime passed to the transport on write.
func WithCookieTTL(ttl time.Duration) CookieOption {
	return func(c *cookieConfig) { c.ttl = ttl }
}

// WithCookieLogger sets the logger for cookie failures. Default is slog.Default.
func WithCookieLogger(l *slog.Logger) CookieOption {
	return func(c *cookieConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithCookieIDGenerator replaces NewID as the source of session identifiers.
func WithCookieIDGenerator(gen IDGenerator) CookieOption {
	return func(c *cookieConfig) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// WithCookieObserver receives lifecycle events of cookie sessions.
func WithCookieObserver(o Observer) CookieOption {
	return func(c *cookieConfig) {
		if o != nil {
			c.observer = o
		}
	}
}

// NewCookieBackend creates a cookie backend signing with secret.
// The secret must hold at least signer.MinSecretLength characters.
func NewCookieBackend(secret string, transport Transport, opts ...CookieOption) (*CookieBackend, error) {
	if transport == nil {
		return nil, errors.Join(ErrInvalidConfig, ErrNoTransport)
	}

	cfg := cookieConfig{
		digest:   signer.DefaultDigest,
		codec:    GobCodec{},
		maxSize:  DefaultMaxCookieSize,
		log:      slog.Default(),
		newID:    NewID,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s, err := signer.New(secret, signer.WithDigest(cfg.digest))
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return &CookieBackend{
		signer:         s,
		transport:      transport,
		codec:          cfg.codec,
		ignoreTampered: cfg.ignoreTampered,
		maxSize:        cfg.maxSize,
		ttl:            cfg.ttl,
		log:            cfg.log.With(logger.Component("session"), logger.Backend(string(KindCookie))),
		newID:          cfg.newID,
		observer:       cfg.observer,
	}, nil
}

// Kind reports KindCookie.
func (b *CookieBackend) Kind() Kind { return KindCookie }

// Generate returns an empty session with a new identifier.
func (b *CookieBackend) Generate(ctx context.Context) (*Session, error) {
	sess := newSession(b.newID(), b, StateFresh)
	sess.needsNewCookie = true
	b.observer.Observe(ctx, KindCookie, EventCreated)
	return sess, nil
}

// Setup loads the session from the inbound cookie.
// A missing or malformed cookie yields a fresh session. A signature
// mismatch returns ErrTamperedCookie unless tampering is ignored.
func (b *CookieBackend) Setup(ctx context.Context, r *http.Request) (*Session, error) {
	value, err := b.transport.Read(r)
	if err != nil {
		if !errors.Is(err, ErrNoValue) {
			b.log.DebugContext(ctx, "session cookie unreadable", logger.Error(err))
		}
		value = ""
	}
	return b.Load(ctx, value)
}

// Load builds a session from a packed cookie value.
func (b *CookieBackend) Load(ctx context.Context, value string) (*Session, error) {
	sess := newSession(b.newID(), b, StateFresh)

	data, digest, ok := b.split(value)
	if !ok {
		b.observer.Observe(ctx, KindCookie, EventCreated)
		return sess, nil
	}

	if !b.signer.Verify(data, digest) {
		b.observer.Observe(ctx, KindCookie, EventTampered)
		if !b.ignoreTampered {
			return nil, fmt.Errorf("%w: the secret may have rotated or the cookie was forged", ErrTamperedCookie)
		}
		b.log.WarnContext(ctx, "ignoring tampered session cookie", logger.Size(len(value)))
		// Remembering the rejected value makes finalize clear it.
		sess.originalPayload = value
		return sess, nil
	}

	sess.attrs = decodeOrEmpty(ctx, b.codec, data, KindCookie, b.log, b.observer)
	sess.state = StateLoaded
	b.observer.Observe(ctx, KindCookie, EventLoaded)

	if sess.attrs.Len() == 0 {
		sess.originalPayload = value
	} else if packed, err := b.Pack(ctx, sess); err == nil {
		sess.originalPayload = packed
	} else {
		sess.originalPayload = value
	}
	return sess, nil
}

// split unescapes a cookie value into payload and digest.
func (b *CookieBackend) split(value string) (data, digest string, ok bool) {
	if strings.TrimSpace(value) == "" {
		return "", "", false
	}
	unescaped, err := url.QueryUnescape(value)
	if err != nil {
		return "", "", false
	}
	data, digest, _ = strings.Cut(unescaped, digestSeparator)
	if strings.TrimSpace(data) == "" || strings.TrimSpace(digest) == "" {
		return "", "", false
	}
	return data, digest, true
}

// Pack encodes, signs and escapes the session attributes.
// An empty session packs to the empty string.
func (b *CookieBackend) Pack(ctx context.Context, sess *Session) (string, error) {
	if sess.Len() == 0 {
		return "", nil
	}
	payload, err := b.codec.Encode(sess.attrs)
	if err != nil {
		return "", err
	}

	value := url.QueryEscape(payload + digestSeparator + b.signer.Sign(payload))
	if len(value) > b.maxSize {
		b.observer.Observe(ctx, KindCookie, EventOverflow)
		b.log.ErrorContext(ctx, "session cookie exceeds size limit",
			logger.SessionID(sess.id),
			logger.Size(len(value)),
			logger.Limit(b.maxSize),
		)
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrCookieOverflow, len(value), b.maxSize)
	}
	return value, nil
}

// Finalize writes the cookie when the packed value changed since load,
// and clears it when the session was destroyed or emptied.
func (b *CookieBackend) Finalize(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess.destroyPending {
		b.observer.Observe(ctx, KindCookie, EventDestroyed)
		return b.transport.Clear(w)
	}

	value, err := b.Pack(ctx, sess)
	if err != nil {
		return err
	}

	changed := value != sess.originalPayload
	switch {
	case changed && value == "":
		if err := b.transport.Clear(w); err != nil {
			return err
		}
	case changed || (sess.needsNewCookie && value != ""):
		if err := b.transport.Write(w, value, b.ttl); err != nil {
			return err
		}
	default:
		b.observer.Observe(ctx, KindCookie, EventSkipped)
		return nil
	}

	sess.originalPayload = value
	sess.needsNewCookie = false
	b.observer.Observe(ctx, KindCookie, EventWritten)
	return nil
}

// Regenerate replaces the identifier only.
func (b *CookieBackend) Regenerate(ctx context.Context, sess *Session) error {
	sess.setID(b.newID())
	b.observer.Observe(ctx, KindCookie, EventRegenerated)
	return nil
}
