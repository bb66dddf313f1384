package pg

import "context"

// logger receives goose progress and failures during Migrate.
type logger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}
