package mongo

import "errors"

var (
	ErrEmptyConnectionURL     = errors.New("mongo: connection URL is empty, set MONGODB_URL")
	ErrFailedToConnectToMongo = errors.New("mongo: unable to connect after retries")
	ErrHealthcheckFailed      = errors.New("mongo: ping failed")
	ErrStoreFailed            = errors.New("mongo: session store operation failed")
)
