// Package pg stores sessions in PostgreSQL through pgx/v5.
//
// Connect opens a *pgxpool.Pool with retries, Migrate applies the embedded
// goose migration that creates the sessions table, and SessionStore
// implements session.Store against that table: one row per session holding
// the codec text of its attributes and an optional expires_at. Expired rows
// are invisible to Retrieve and removed by DeleteExpired.
//
// # Usage
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    return err
//	}
//
//	store := pg.NewSessionStore(pool, pg.WithTTL(cfg.SessionTTL))
//
// SessionStore.Ping doubles as a readiness probe.
package pg
