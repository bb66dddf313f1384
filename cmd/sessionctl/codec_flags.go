package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/session"
	"github.com/dmitrymomot/sessionkit/pkg/signer"
)

// backendFlags are the cookie backend settings shared by sign and inspect.
type backendFlags struct {
	secret         string
	digest         string
	codec          string
	maxSize        int
	ignoreTampered bool
}

func (f *backendFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.secret, "secret", os.Getenv("SESSION_SECRET"), "Signing secret, at least 16 characters (default $SESSION_SECRET)")
	cmd.Flags().StringVar(&f.digest, "digest", signer.DefaultDigest.Name, "HMAC digest: "+strings.Join(signer.DigestNames(), ", "))
	cmd.Flags().StringVar(&f.codec, "codec", "gob", "Attribute codec: gob or json")
	cmd.Flags().IntVar(&f.maxSize, "max-size", session.DefaultMaxCookieSize, "Maximum packed cookie size in bytes")
}

func (f *backendFlags) backend() (*session.CookieBackend, error) {
	digest, err := signer.LookupDigest(f.digest)
	if err != nil {
		return nil, err
	}
	codec, err := session.CodecByName(f.codec)
	if err != nil {
		return nil, err
	}
	return session.NewCookieBackend(f.secret,
		session.NewCookieTransport(cookie.New(), session.DefaultConfig().CookieName),
		session.WithDigest(digest),
		session.WithCodec(codec),
		session.WithMaxCookieSize(f.maxSize),
		session.WithIgnoreTampered(f.ignoreTampered),
		session.WithCookieLogger(logger.Discard()),
	)
}

// parseValue turns a command-line value into an int, bool or string.
func parseValue(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
