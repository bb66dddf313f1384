package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// DefaultSessionPrefix namespaces session keys.
const DefaultSessionPrefix = "session:"

// SessionStore implements session.Store on top of Redis strings.
// Each record is the codec text of the attributes stored at prefix+id.
type SessionStore struct {
	client redis.UniversalClient
	codec  session.Codec
	prefix string
	ttl    time.Duration
}

// StoreOption configures a SessionStore.
type StoreOption func(*SessionStore)

func WithPrefix(prefix string) StoreOption {
	return func(s *SessionStore) { s.prefix = prefix }
}

// WithTTL sets the key expiration refreshed on every save. Zero keeps keys forever.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *SessionStore) { s.ttl = ttl }
}

func WithCodec(codec session.Codec) StoreOption {
	return func(s *SessionStore) {
		if codec != nil {
			s.codec = codec
		}
	}
}

// NewSessionStore wraps client. Works with single, sentinel and cluster clients.
func NewSessionStore(client redis.UniversalClient, opts ...StoreOption) *SessionStore {
	s := &SessionStore{
		client: client,
		codec:  session.GobCodec{},
		prefix: DefaultSessionPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSessionStoreFromConfig applies the session fields of cfg.
func NewSessionStoreFromConfig(client redis.UniversalClient, cfg Config, opts ...StoreOption) *SessionStore {
	base := []StoreOption{WithPrefix(cfg.SessionPrefix), WithTTL(cfg.SessionTTL)}
	return NewSessionStore(client, append(base, opts...)...)
}

// Key returns the Redis key holding the session id.
func (s *SessionStore) Key(id string) string {
	return s.prefix + id
}

func (s *SessionStore) Retrieve(ctx context.Context, id string) (*session.Attributes, error) {
	val, err := s.client.Get(ctx, s.Key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, errors.Join(ErrStoreFailed, err)
	}
	return s.codec.Decode(val)
}

func (s *SessionStore) Save(ctx context.Context, id string, attrs *session.Attributes) error {
	text, err := s.codec.Encode(attrs)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.Key(id), text, s.ttl).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.Key(id)).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

// Ping reports whether the server answers, for readiness probes.
func (s *SessionStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}
