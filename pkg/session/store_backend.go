package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// StoreBackend keeps attributes in a Store; the cookie carries only the id.
// Writes happen only when the attribute fingerprint changes.
type StoreBackend struct {
	store      Store
	transport  Transport
	codec      Codec
	retryLimit int
	ttl        time.Duration
	log        *slog.Logger
	newID      IDGenerator
	observer   Observer
}

// StoreOption configures a StoreBackend.
type StoreOption func(*StoreBackend)

// WithIDRetryLimit bounds identifier collision retries. Default is 100.
func WithIDRetryLimit(n int) StoreOption {
	return func(b *StoreBackend) {
		if n > 0 {
			b.retryLimit = n
		}
	}
}

// WithStoreCodec selects the codec used to fingerprint attributes.
func WithStoreCodec(codec Codec) StoreOption {
	return func(b *StoreBackend) {
		if codec != nil {
			b.codec = codec
		}
	}
}

// WithStoreTTL sets the lifetime passed to the transport on write.
func WithStoreTTL(ttl time.Duration) StoreOption {
	return func(b *StoreBackend) { b.ttl = ttl }
}

// WithStoreLogger sets the logger for store failures. Default is slog.Default.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(b *StoreBackend) {
		if l != nil {
			b.log = l
		}
	}
}

// WithStoreIDGenerator replaces NewID as the source of candidate identifiers.
func WithStoreIDGenerator(gen IDGenerator) StoreOption {
	return func(b *StoreBackend) {
		if gen != nil {
			b.newID = gen
		}
	}
}

// WithStoreObserver receives lifecycle events of store sessions.
func WithStoreObserver(o Observer) StoreOption {
	return func(b *StoreBackend) {
		if o != nil {
			b.observer = o
		}
	}
}

// NewStoreBackend creates a backend persisting into store.
func NewStoreBackend(store Store, transport Transport, opts ...StoreOption) (*StoreBackend, error) {
	if store == nil {
		return nil, errors.Join(ErrInvalidConfig, ErrNoStore)
	}
	if transport == nil {
		return nil, errors.Join(ErrInvalidConfig, ErrNoTransport)
	}

	b := &StoreBackend{
		store:      store,
		transport:  transport,
		codec:      GobCodec{},
		retryLimit: DefaultIDRetryLimit,
		log:        slog.Default(),
		newID:      NewID,
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.With(logger.Component("session"), logger.Backend(string(KindStore)))

	return b, nil
}

// Kind reports KindStore.
func (b *StoreBackend) Kind() Kind { return KindStore }

// Generate returns an empty session under an identifier unknown to the store.
func (b *StoreBackend) Generate(ctx context.Context) (*Session, error) {
	id, err := generateFreeID(ctx, b.store, b.newID, b.retryLimit, b.log)
	if err != nil {
		return nil, err
	}
	sess := newSession(id, b, StateFresh)
	sess.needsNewCookie = true
	sess.fingerprint = b.fingerprintOrEmpty(ctx, sess)
	b.observer.Observe(ctx, KindStore, EventCreated)
	return sess, nil
}

// Setup loads the session named by the inbound identifier.
// A store failure is logged and treated as a missing record.
func (b *StoreBackend) Setup(ctx context.Context, r *http.Request) (*Session, error) {
	id, err := b.transport.Read(r)
	if err != nil || strings.TrimSpace(id) == "" {
		return b.Generate(ctx)
	}

	attrs, err := b.store.Retrieve(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		b.observer.Observe(ctx, KindStore, EventStoreError)
		b.log.WarnContext(ctx, "session retrieve failed, starting empty",
			logger.SessionID(id),
			logger.Error(err),
		)
		attrs = nil
	}

	sess := newSession(id, b, StateFresh)
	if err == nil && attrs != nil {
		sess.attrs.Merge(attrs)
		sess.state = StateLoaded
		b.observer.Observe(ctx, KindStore, EventLoaded)
	} else {
		b.observer.Observe(ctx, KindStore, EventCreated)
	}

	sess.fingerprint = b.fingerprintOrEmpty(ctx, sess)
	return sess, nil
}

// Finalize saves changed attributes and writes the id cookie when needed.
// Store failures are logged and never abort the response.
func (b *StoreBackend) Finalize(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess.destroyPending {
		if err := b.store.Delete(ctx, sess.id); err != nil {
			b.storeFailed(ctx, "session delete failed", sess.id, err)
		}
		b.observer.Observe(ctx, KindStore, EventDestroyed)
		return b.transport.Clear(w)
	}

	fp, err := b.fingerprint(sess.attrs)
	if err != nil {
		return err
	}

	if fp != sess.fingerprint {
		if err := b.store.Save(ctx, sess.id, sess.attrs); err != nil {
			b.storeFailed(ctx, "session save failed", sess.id, err)
		} else {
			sess.fingerprint = fp
			b.observer.Observe(ctx, KindStore, EventWritten)
		}
	} else {
		b.observer.Observe(ctx, KindStore, EventSkipped)
	}

	if sess.needsNewCookie {
		if err := b.transport.Write(w, sess.id, b.ttl); err != nil {
			return err
		}
		sess.needsNewCookie = false
	}
	return nil
}

// Regenerate moves the attributes to a new identifier and persists them
// immediately. A new identifier is secured before the old record is
// deleted, so a failed draw leaves the session untouched.
func (b *StoreBackend) Regenerate(ctx context.Context, sess *Session) error {
	id, err := generateFreeID(ctx, b.store, b.newID, b.retryLimit, b.log)
	if err != nil {
		return err
	}

	if err := b.store.Delete(ctx, sess.id); err != nil {
		b.storeFailed(ctx, "session delete failed during regenerate", sess.id, err)
	}
	sess.setID(id)
	sess.needsNewCookie = true

	if err := b.store.Save(ctx, id, sess.attrs); err != nil {
		b.storeFailed(ctx, "session save failed during regenerate", id, err)
	} else if fp, err := b.fingerprint(sess.attrs); err == nil {
		sess.fingerprint = fp
	}

	b.observer.Observe(ctx, KindStore, EventRegenerated)
	return nil
}

// fingerprint digests the encoded attributes. Equal digests are taken as
// equal attributes.
func (b *StoreBackend) fingerprint(attrs *Attributes) (string, error) {
	encoded, err := b.codec.Encode(attrs)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(encoded))
	return hex.EncodeToString(sum[:]), nil
}

func (b *StoreBackend) fingerprintOrEmpty(ctx context.Context, sess *Session) string {
	fp, err := b.fingerprint(sess.attrs)
	if err != nil {
		b.log.WarnContext(ctx, "session fingerprint failed", logger.SessionID(sess.id), logger.Error(err))
		return ""
	}
	return fp
}

func (b *StoreBackend) storeFailed(ctx context.Context, msg, id string, err error) {
	b.observer.Observe(ctx, KindStore, EventStoreError)
	b.log.WarnContext(ctx, msg, logger.SessionID(id), logger.Error(err))
}
