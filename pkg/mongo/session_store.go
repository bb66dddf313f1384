package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

type sessionDocument struct {
	ID        string     `bson:"_id"`
	Data      string     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
	UpdatedAt time.Time  `bson:"updated_at"`
}

// SessionStore implements session.Store on a MongoDB collection.
// Documents carry the codec text of the attributes under "data".
type SessionStore struct {
	coll  *mongo.Collection
	codec session.Codec
	ttl   time.Duration
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

func NewSessionStore(coll *mongo.Collection, opts ...StoreOption) *SessionStore {
	s := &SessionStore{
		coll:  coll,
		codec: session.GobCodec{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureIndexes creates the TTL index that lets the server purge expired documents.
func (s *SessionStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

// Retrieve returns the attributes for id. Documents past expires_at are
// reported missing even before the TTL monitor removes them.
func (s *SessionStore) Retrieve(ctx context.Context, id string) (*session.Attributes, error) {
	var doc sessionDocument
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, session.ErrNotFound
		}
		return nil, errors.Join(ErrStoreFailed, err)
	}
	if doc.ExpiresAt != nil && time.Now().After(*doc.ExpiresAt) {
		return nil, session.ErrNotFound
	}
	return s.codec.Decode(doc.Data)
}

// Save upserts the document for id.
func (s *SessionStore) Save(ctx context.Context, id string, attrs *session.Attributes) error {
	data, err := s.codec.Encode(attrs)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	doc := sessionDocument{ID: id, Data: data, UpdatedAt: now}
	if s.ttl > 0 {
		expiresAt := now.Add(s.ttl)
		doc.ExpiresAt = &expiresAt
	}

	_, err = s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

// Ping checks the deployment holding the sessions collection.
func (s *SessionStore) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, nil); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}
