// Package cookie reads, writes and deletes HTTP cookies with shared default
// attributes.
//
// A Manager is created once with default Options (Path "/", HttpOnly and
// SameSite=Lax unless overridden) and used by session transports to read the
// inbound session cookie, set a new value on the response, or expire it.
// Values are written as given: escaping and signing belong to the caller.
//
//	man := cookie.New(cookie.WithSecure(true))
//	_ = man.Set(w, "_session_id", id, cookie.WithMaxAge(3600))
//	id, err := man.Get(r, "_session_id")
//	man.Delete(w, "_session_id")
//
// # Configuration
//
// Config can be populated from environment variables with caarlos0/env and
// passed to NewFromConfig. Only non-zero fields are applied.
//
// # Error Handling
//
// Get returns ErrCookieNotFound when the cookie is absent. Set returns
// ErrEmptyName for an empty cookie name.
package cookie
