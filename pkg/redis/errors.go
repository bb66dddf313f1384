package redis

import "errors"

var (
	ErrEmptyConnectionURL           = errors.New("redis: connection URL is empty, set REDIS_URL")
	ErrFailedToParseRedisConnString = errors.New("redis: invalid connection URL")
	ErrRedisNotReady                = errors.New("redis: server not ready after retries")
	ErrHealthcheckFailed            = errors.New("redis: ping failed")
	ErrStoreFailed                  = errors.New("redis: session store operation failed")
)
