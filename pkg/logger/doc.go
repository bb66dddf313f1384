// Package logger builds *slog.Logger instances from functional options and
// provides attribute helpers so session components log with consistent keys.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// handler with NewContextHandler, which runs registered ContextExtractor
// callbacks on every record (for example to add a request id).
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "sessionctl"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.WarnContext(ctx, "session store unavailable",
//	    logger.Component("session"),
//	    logger.SessionID(id),
//	    logger.Error(err),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed without a nil check. Discard returns a logger that drops everything,
// which is what tests usually want.
package logger
