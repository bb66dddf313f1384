package session

import "context"

// Store persists session attributes by identifier.
// Implementations must be safe for concurrent use and must not retain
// the attributes passed to Save or share those returned from Retrieve.
type Store interface {
	// Retrieve returns the attributes stored under id, or ErrNotFound.
	// A nil result with a nil error is also treated as absent.
	Retrieve(ctx context.Context, id string) (*Attributes, error)

	// Save replaces the attributes stored under id.
	Save(ctx context.Context, id string, attrs *Attributes) error

	// Delete removes the record for id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// StoreWithCleanup is an optional interface for stores that expire records themselves
type StoreWithCleanup interface {
	Store
	// DeleteExpired removes every record past its expiry
	DeleteExpired(ctx context.Context) error
}
