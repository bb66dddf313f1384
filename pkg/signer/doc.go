// Package signer provides keyed message digests for tamper-evident payloads.
//
// A Signer holds an immutable secret and a Digest. Sign returns the lowercase
// hexadecimal HMAC of a payload; Verify recomputes it and compares the two in
// constant time with Equal, which never stops at the first differing byte.
//
//	s, err := signer.New(os.Getenv("SESSION_SECRET"), signer.WithDigest(signer.SHA256))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	digest := s.Sign(payload)
//	ok := s.Verify(payload, digest)
//
// # Digests
//
// sha1 is the default. sha256, sha384, sha512, sha3-256 and blake2b-256 are
// available through LookupDigest, which is how configuration strings are
// resolved.
//
// # Error Handling
//
// New fails with ErrNoSecret for blank secrets and ErrSecretTooShort for
// secrets under MinSecretLength bytes. LookupDigest fails with
// ErrUnknownDigest.
//
// Signing provides integrity only; payloads stay readable by the client.
package signer
