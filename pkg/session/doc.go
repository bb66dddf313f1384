// Package session persists HTTP session attributes across requests through
// one of two interchangeable backends sharing a single lifecycle.
//
// The cookie backend packs every attribute into the client cookie. The
// payload is encoded by a Codec, signed with an HMAC over a server secret and
// URL-escaped as "<payload>--<hex digest>". A payload whose digest does not
// verify is never trusted: Setup fails with ErrTamperedCookie, or yields a
// fresh session when WithIgnoreTampered is set. Packed values larger than the
// size ceiling (4096 bytes by default) fail with ErrCookieOverflow.
//
// The store backend keeps attributes in a Store and sends only the session
// identifier to the client. It fingerprints the attributes at load time and
// writes to the store only when the fingerprint changes. New identifiers are
// probed against the store and retried up to a fixed ceiling before failing
// with ErrIDExhausted.
//
// # Architecture
//
//	┌────────┐   value   ┌────────────┐
//	│ Client │ ────────► │  Transport │
//	└────────┘           └────────────┘
//	       ▲                   │
//	       │                   ▼
//	┌─────────────────────────────────┐
//	│     Manager  ──►  Backend       │
//	└─────────────────────────────────┘
//	       │ cookie: sign / verify
//	       │ store:  retrieve / save / delete
//	       ▼
//	┌────────┐
//	│ Store  │ (memory, redis, postgres, mongo)
//	└────────┘
//
// Every request runs Setup, lets the handler mutate the Session, then runs
// Finalize once. Regenerate replaces the identifier, for instance after login.
//
// # Usage
//
//	backend, err := session.NewCookieBackend(secret,
//	    session.NewCookieTransport(cookie.New(), "_session_id"),
//	)
//	if err != nil {
//	    return err
//	}
//	manager := session.New(backend)
//
//	mux.Handle("/", manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	    sess := session.MustFromContext(r.Context())
//	    sess.Set("user_id", 42)
//	})))
//
// Store-backed sessions:
//
//	store := session.NewMemoryStore(24*time.Hour, time.Minute)
//	backend, err := session.NewStoreBackend(store,
//	    session.NewHeaderTransport("X-Session-ID"),
//	)
//
// # Configuration
//
// Config carries the SESSION_* environment variables. NewFromConfig selects
// the backend, digest and codec by name and wires a cookie transport.
//
// # Error Handling
//
//   - ErrTamperedCookie  – signature mismatch on the inbound cookie
//   - ErrCookieOverflow  – packed cookie larger than the ceiling
//   - ErrIDExhausted     – no free identifier within the retry limit
//   - ErrInvalidConfig   – blank or short secret, unknown backend or codec
//
// Undecodable payloads and store failures are logged and recovered as empty
// sessions; they never abort a request.
package session
