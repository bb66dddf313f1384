package session

import (
	"net/http"
	"time"
)

// Transport carries the session value between client and server.
// For the cookie backend the value is the packed session; for the store
// backend it is the identifier.
type Transport interface {
	// Read extracts the session value from the request, or ErrNoValue
	Read(r *http.Request) (string, error)

	// Write sends the session value in the response
	Write(w http.ResponseWriter, value string, ttl time.Duration) error

	// Clear instructs the client to drop the session value
	Clear(w http.ResponseWriter) error
}
