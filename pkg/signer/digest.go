package signer

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"slices"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Digest names a hash function used as the HMAC primitive.
type Digest struct {
	Name string
	New  func() hash.Hash
}

var (
	SHA1    = Digest{Name: "sha1", New: sha1.New}
	SHA256  = Digest{Name: "sha256", New: sha256.New}
	SHA384  = Digest{Name: "sha384", New: sha512.New384}
	SHA512  = Digest{Name: "sha512", New: sha512.New}
	SHA3256 = Digest{Name: "sha3-256", New: sha3.New256}
	// BLAKE2b256 is unkeyed here; the key is supplied by HMAC.
	BLAKE2b256 = Digest{Name: "blake2b-256", New: newBlake2b256}
)

// DefaultDigest is the digest used when none is configured.
var DefaultDigest = SHA1

var digests = map[string]Digest{
	SHA1.Name:       SHA1,
	SHA256.Name:     SHA256,
	SHA384.Name:     SHA384,
	SHA512.Name:     SHA512,
	SHA3256.Name:    SHA3256,
	BLAKE2b256.Name: BLAKE2b256,
}

// LookupDigest resolves a digest by its case-insensitive name.
// An empty name resolves to DefaultDigest.
func LookupDigest(name string) (Digest, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultDigest, nil
	}
	d, ok := digests[name]
	if !ok {
		return Digest{}, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownDigest, name, strings.Join(DigestNames(), ", "))
	}
	return d, nil
}

// DigestNames returns the registered digest names in sorted order.
func DigestNames() []string {
	names := make([]string, 0, len(digests))
	for name := range digests {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func newBlake2b256() hash.Hash {
	// New256 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New256(nil)
	return h
}
