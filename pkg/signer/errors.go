package signer

import "errors"

var (
	ErrNoSecret       = errors.New("signer.no_secret")
	ErrSecretTooShort = errors.New("signer.secret_too_short")
	ErrUnknownDigest  = errors.New("signer.unknown_digest")
)
