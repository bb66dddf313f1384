// Package redis connects to Redis and persists store-backed sessions in it.
//
// Connect parses a redis:// URL and pings with retries. SessionStore
// implements session.Store on any redis.UniversalClient: each session is one
// string key, prefix+id, holding the codec text of its attributes, with the
// configured TTL refreshed on every save. A missing key maps to
// session.ErrNotFound.
//
// # Usage
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := redis.NewSessionStoreFromConfig(client, cfg)
//	backend, err := session.NewStoreBackend(store, transport)
//
// SessionStore.Ping doubles as a readiness probe.
package redis
