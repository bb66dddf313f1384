package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// DB is the subset of *pgxpool.Pool the session store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	retrieveSessionQuery = `SELECT data FROM sessions WHERE id = $1 AND (expires_at IS NULL OR expires_at > now())`
	saveSessionQuery     = `INSERT INTO sessions (id, data, expires_at, updated_at) VALUES ($1, $2, $3, now())
ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at, updated_at = now()`
	deleteSessionQuery = `DELETE FROM sessions WHERE id = $1`
	deleteExpiredQuery = `DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= now()`
	pingQuery          = `SELECT to_regclass('sessions')::text`
)

// SessionStore implements session.Store over the sessions table created by Migrate.
type SessionStore struct {
	db    DB
	codec session.Codec
	ttl   time.Duration
	now   func() time.Time
}

// StoreOption configures a SessionStore.
type StoreOption func(*SessionStore)

// WithTTL sets expires_at to now+ttl on every save. Zero stores no expiry.
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

func NewSessionStore(db DB, opts ...StoreOption) *SessionStore {
	s := &SessionStore{
		db:    db,
		codec: session.GobCodec{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Retrieve returns the unexpired attributes for id or session.ErrNotFound.
func (s *SessionStore) Retrieve(ctx context.Context, id string) (*session.Attributes, error) {
	var data string
	if err := s.db.QueryRow(ctx, retrieveSessionQuery, id).Scan(&data); err != nil {
		if IsNotFoundError(err) {
			return nil, session.ErrNotFound
		}
		return nil, errors.Join(ErrStoreFailed, err)
	}
	return s.codec.Decode(data)
}

// Save upserts the attributes for id.
func (s *SessionStore) Save(ctx context.Context, id string, attrs *session.Attributes) error {
	data, err := s.codec.Encode(attrs)
	if err != nil {
		return err
	}

	var expiresAt *time.Time
	if s.ttl > 0 {
		t := s.now().Add(s.ttl)
		expiresAt = &t
	}

	if _, err := s.db.Exec(ctx, saveSessionQuery, id, data, expiresAt); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, deleteSessionQuery, id); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

// DeleteExpired removes every row whose expires_at has passed.
func (s *SessionStore) DeleteExpired(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, deleteExpiredQuery); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

// Ping checks the connection and that the sessions table exists.
func (s *SessionStore) Ping(ctx context.Context) error {
	var table string
	if err := s.db.QueryRow(ctx, pingQuery).Scan(&table); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}

var _ session.StoreWithCleanup = (*SessionStore)(nil)
