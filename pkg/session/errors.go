package session

import "errors"

var (
	// ErrInvalidConfig indicates a backend cannot be built from its configuration
	ErrInvalidConfig = errors.New("session.invalid_config")

	// ErrTamperedCookie indicates the cookie digest does not match its payload
	ErrTamperedCookie = errors.New("session.tampered_cookie")

	// ErrCookieOverflow indicates the packed cookie exceeds the size ceiling
	ErrCookieOverflow = errors.New("session.cookie_overflow")

	// ErrIDExhausted indicates no free identifier was found within the retry limit
	ErrIDExhausted = errors.New("session.id_exhausted")

	// ErrNotFound indicates the store holds no record for an identifier
	ErrNotFound = errors.New("session.not_found")

	// ErrEncode indicates attributes could not be serialized
	ErrEncode = errors.New("session.encode_failed")

	// ErrDecode indicates a payload could not be deserialized
	ErrDecode = errors.New("session.decode_failed")

	// ErrUnknownCodec indicates an unsupported codec name
	ErrUnknownCodec = errors.New("session.unknown_codec")

	// ErrUnknownBackend indicates an unsupported backend name
	ErrUnknownBackend = errors.New("session.unknown_backend")

	// ErrNoStore indicates a store backend was built without a store
	ErrNoStore = errors.New("session.no_store")

	// ErrNoTransport indicates a backend was built without a transport
	ErrNoTransport = errors.New("session.no_transport")

	// ErrNoValue indicates the request carries no session value
	ErrNoValue = errors.New("session.no_value")
)

// ErrNoBackend indicates a session is not bound to a backend
var ErrNoBackend = errors.New("session.no_backend")
