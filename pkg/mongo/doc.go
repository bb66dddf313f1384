// Package mongo stores sessions in MongoDB using the official v2 driver.
//
// New connects with retries and pings the deployment. SessionStore keeps one
// document per session, keyed by the session id, holding the codec text of
// its attributes and an optional expires_at. EnsureIndexes installs a TTL
// index so the server purges expired documents; Retrieve also hides them
// until the TTL monitor runs.
//
// # Usage
//
//	client, err := mongo.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Disconnect(context.Background())
//
//	coll := client.Database(cfg.Database).Collection(cfg.SessionCollection)
//	store := mongo.NewSessionStore(coll, mongo.WithTTL(cfg.SessionTTL))
//	if err := store.EnsureIndexes(ctx); err != nil {
//	    return err
//	}
//
// SessionStore.Ping doubles as a readiness probe.
package mongo
