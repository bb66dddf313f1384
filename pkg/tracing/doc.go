// Package tracing connects sessionkit to OpenTelemetry.
//
// Middleware opens a server span for every request and Observer turns
// session lifecycle events into events on that span, so a single trace shows
// whether the session was loaded, rewritten or rejected as tampered.
//
//	r.Use(tracing.Middleware())
//	manager, err := session.NewFromConfig(cfg, store,
//		session.WithObserver(session.Observers(collector, tracing.NewObserver())),
//	)
//
// Without a configured provider the global no-op tracer is used.
package tracing
