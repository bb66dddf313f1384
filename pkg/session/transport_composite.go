package session

import (
	"errors"
	"net/http"
	"time"
)

// CompositeTransport tries multiple transports in order
type CompositeTransport struct {
	transports []Transport
}

// NewCompositeTransport creates a composite transport that tries multiple transports
func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	return &CompositeTransport{
		transports: transports,
	}
}

// Read returns the value from the first transport that has one
func (t *CompositeTransport) Read(r *http.Request) (string, error) {
	for _, transport := range t.transports {
		value, err := transport.Read(r)
		if err == nil && value != "" {
			return value, nil
		}
	}
	return "", ErrNoValue
}

// Write sends the value via all configured transports
func (t *CompositeTransport) Write(w http.ResponseWriter, value string, ttl time.Duration) error {
	var errs []error
	for _, transport := range t.transports {
		if err := transport.Write(w, value, ttl); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Clear removes the value from all configured transports
func (t *CompositeTransport) Clear(w http.ResponseWriter) error {
	var errs []error
	for _, transport := range t.transports {
		if err := transport.Clear(w); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
