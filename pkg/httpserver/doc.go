// Package httpserver runs an http.Server with environment-driven timeouts,
// graceful shutdown on context cancellation and health-check handlers.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	r.Get("/healthz", httpserver.HealthCheckHandler(log, store.Ping))
//	if err := srv.Run(ctx, r); err != nil {
//		return err
//	}
//
// Run binds the listener before returning control to the start hooks, so an
// Addr of ":0" resolves to a concrete port readable through Server.Addr.
// Listen errors wrap ErrStart and shutdown errors wrap ErrShutdown.
package httpserver
