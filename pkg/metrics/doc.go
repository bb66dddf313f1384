// Package metrics exports session lifecycle events to Prometheus.
//
// A Collector is a session.Observer: pass it to a backend with
// session.WithCookieObserver, session.WithStoreObserver or, through
// NewFromConfig, session.WithObserver.
//
//	reg := prometheus.NewRegistry()
//	collector := metrics.New(metrics.WithRegistry(reg))
//	manager, err := session.NewFromConfig(cfg, store, session.WithObserver(collector))
//
// Collector.Middleware additionally records request durations.
package metrics
