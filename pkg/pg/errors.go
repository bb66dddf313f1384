package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	ErrEmptyConnectionString    = errors.New("pg: connection string is empty, set PG_CONN_URL")
	ErrFailedToParseDBConfig    = errors.New("pg: invalid connection string")
	ErrFailedToOpenDBConnection = errors.New("pg: unable to connect after retries")
	ErrMigrationsDirNotFound    = errors.New("pg: migrations directory not found")
	ErrFailedToApplyMigrations  = errors.New("pg: failed to apply migrations")
	ErrHealthcheckFailed        = errors.New("pg: sessions table unavailable")
	ErrStoreFailed              = errors.New("pg: session store operation failed")
)

// IsNotFoundError reports whether err means the query matched no row.
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrNoRows)
}
