package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// Kind identifies a session backend.
type Kind string

const (
	KindCookie Kind = "cookie"
	KindStore  Kind = "store"
)

// Backend loads and persists sessions for one storage strategy.
// Implementations are *CookieBackend and *StoreBackend.
type Backend interface {
	Kind() Kind
	// Generate creates a fresh session with a new identifier.
	Generate(ctx context.Context) (*Session, error)
	// Setup restores the session carried by the request or creates a fresh one.
	Setup(ctx context.Context, r *http.Request) (*Session, error)
	// Finalize persists or destroys the session and updates the response.
	Finalize(ctx context.Context, w http.ResponseWriter, sess *Session) error
	// Regenerate assigns a new identifier to the session.
	Regenerate(ctx context.Context, sess *Session) error
}

// Event names a lifecycle occurrence reported to an Observer.
type Event string

const (
	EventCreated      Event = "created"
	EventLoaded       Event = "loaded"
	EventTampered     Event = "tampered"
	EventDecodeFailed Event = "decode_failed"
	EventWritten      Event = "written"
	EventSkipped      Event = "skipped"
	EventDestroyed    Event = "destroyed"
	EventRegenerated  Event = "regenerated"
	EventOverflow     Event = "overflow"
	EventStoreError   Event = "store_error"
)

// Events lists every event a backend may report.
func Events() []Event {
	return []Event{
		EventCreated, EventLoaded, EventTampered, EventDecodeFailed, EventWritten,
		EventSkipped, EventDestroyed, EventRegenerated, EventOverflow, EventStoreError,
	}
}

// Observer receives lifecycle events. Implementations must be safe for
// concurrent use.
type Observer interface {
	Observe(ctx context.Context, backend Kind, event Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, backend Kind, event Event)

func (f ObserverFunc) Observe(ctx context.Context, backend Kind, event Event) {
	f(ctx, backend, event)
}

type nopObserver struct{}

func (nopObserver) Observe(context.Context, Kind, Event) {}

type multiObserver []Observer

func (m multiObserver) Observe(ctx context.Context, backend Kind, event Event) {
	for _, o := range m {
		o.Observe(ctx, backend, event)
	}
}

// Observers fans events out to every non-nil observer in order.
func Observers(observers ...Observer) Observer {
	kept := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			kept = append(kept, o)
		}
	}
	switch len(kept) {
	case 0:
		return nopObserver{}
	case 1:
		return kept[0]
	}
	return kept
}

// decodeOrEmpty decodes text, substituting empty attributes on failure.
func decodeOrEmpty(ctx context.Context, codec Codec, text string, kind Kind, log *slog.Logger, observer Observer) *Attributes {
	attrs, err := codec.Decode(text)
	if err != nil {
		observer.Observe(ctx, kind, EventDecodeFailed)
		log.WarnContext(ctx, "discarding undecodable session payload", logger.Error(err))
		return &Attributes{}
	}
	return attrs
}
