package signer

import (
	"crypto/hmac"
	"encoding/hex"
	"fmt"
	"strings"
)

// MinSecretLength is the shortest secret New accepts.
const MinSecretLength = 16

// Signer computes and verifies HMAC digests over serialized payloads.
// It is immutable after construction and safe for concurrent use.
type Signer struct {
	secret []byte
	digest Digest
}

// Option configures a Signer.
type Option func(*Signer)

// WithDigest sets the hash used as the HMAC primitive.
// A digest without a constructor is ignored.
func WithDigest(d Digest) Option {
	return func(s *Signer) {
		if d.New != nil {
			s.digest = d
		}
	}
}

// New validates the secret and returns a Signer.
// A blank secret or one shorter than MinSecretLength bytes is rejected.
func New(secret string, opts ...Option) (*Signer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrNoSecret
	}
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: secret has %d chars, need at least %d", ErrSecretTooShort, len(secret), MinSecretLength)
	}

	s := &Signer{
		secret: []byte(secret),
		digest: DefaultDigest,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Digest returns the configured digest.
func (s *Signer) Digest() Digest {
	return s.digest
}

// Sign returns the lowercase hex HMAC of payload.
func (s *Signer) Sign(payload string) string {
	return Sign([]byte(payload), s.secret, s.digest)
}

// Verify reports whether digest is the HMAC of payload under the signer's secret.
func (s *Signer) Verify(payload, digest string) bool {
	return EqualString(s.Sign(payload), digest)
}

// Sign computes the lowercase hex HMAC of payload with secret using d.
func Sign(payload, secret []byte, d Digest) string {
	if d.New == nil {
		d = DefaultDigest
	}
	mac := hmac.New(d.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether digest matches the HMAC of payload with secret using d.
func Verify(payload, secret []byte, digest string, d Digest) bool {
	return EqualString(Sign(payload, secret, d), digest)
}
