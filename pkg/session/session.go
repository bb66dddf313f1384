package session

import "context"

// State records how a session entered the request.
type State int

const (
	// StateFresh marks a session that was generated or replaced an unusable one.
	StateFresh State = iota
	// StateLoaded marks a session restored from a cookie or a store record.
	StateLoaded
)

func (s State) String() string {
	if s == StateLoaded {
		return "loaded"
	}
	return "fresh"
}

// Session is the per-request view of session attributes plus control flags.
// A Session belongs to exactly one in-flight request and is not safe for
// concurrent use.
type Session struct {
	id             string
	attrs          *Attributes
	state          State
	destroyPending bool
	needsNewCookie bool
	backend        Backend

	// originalPayload is the packed cookie value observed at load time.
	originalPayload string
	// fingerprint is the digest of the attributes last read from or written to the store.
	fingerprint string
}

func newSession(id string, backend Backend, state State) *Session {
	return &Session{
		id:      id,
		attrs:   &Attributes{},
		state:   state,
		backend: backend,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// State reports whether the session was loaded or freshly created.
func (s *Session) State() State { return s.state }

// Kind names the backend that owns the session.
func (s *Session) Kind() Kind {
	if s == nil || s.backend == nil {
		return ""
	}
	return s.backend.Kind()
}

// Get retrieves a value from session attributes
func (s *Session) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return s.attrs.Get(key)
}

// GetString retrieves a string value from session attributes
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an integer value, accepting the numeric types codecs produce.
func (s *Session) GetInt(key string) (int, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetBool retrieves a bool value from session attributes
func (s *Session) GetBool(key string) (bool, bool) {
	val, ok := s.Get(key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Set stores a value in session attributes
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	s.attrs.Set(key, value)
}

// Delete removes a value from session attributes
func (s *Session) Delete(key string) {
	if s == nil {
		return
	}
	s.attrs.Delete(key)
}

// Has reports whether key is set.
func (s *Session) Has(key string) bool { return s != nil && s.attrs.Has(key) }

// Keys returns the attribute keys in insertion order.
func (s *Session) Keys() []string {
	if s == nil {
		return nil
	}
	return s.attrs.Keys()
}

// Len returns the number of attributes.
func (s *Session) Len() int {
	if s == nil {
		return 0
	}
	return s.attrs.Len()
}

// Clear removes all attributes without scheduling destruction.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.attrs.Clear()
}

// Attributes returns a copy of the current attributes.
func (s *Session) Attributes() *Attributes {
	if s == nil {
		return &Attributes{}
	}
	return s.attrs.Clone()
}

// Destroy clears the attributes and schedules removal at finalize.
func (s *Session) Destroy() {
	if s == nil {
		return
	}
	s.attrs.Clear()
	s.destroyPending = true
}

// IsDestroyed reports whether Destroy was called on this request.
func (s *Session) IsDestroyed() bool { return s != nil && s.destroyPending }

// NeedsNewCookie reports whether finalize must write the cookie even if
// the attributes did not change.
func (s *Session) NeedsNewCookie() bool { return s != nil && s.needsNewCookie }

// MarkNewCookie forces the outbound cookie to be written at finalize.
func (s *Session) MarkNewCookie() {
	if s == nil {
		return
	}
	s.needsNewCookie = true
}

// Regenerate replaces the session identifier through the owning backend.
func (s *Session) Regenerate(ctx context.Context) error {
	if s == nil || s.backend == nil {
		return ErrNoBackend
	}
	return s.backend.Regenerate(ctx, s)
}

// setID assigns a new identifier, flagging the cookie for rewrite on change.
func (s *Session) setID(id string) {
	if s.id != id {
		s.id = id
		s.needsNewCookie = true
	}
}
