package redis

import "errors"

var (
	// ErrFailedToParseRedisConnString is returned for malformed
	// connection URLs.
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")

	// ErrRedisNotReady is returned when the server does not answer a
	// ping within the configured retry budget.
	ErrRedisNotReady = errors.New("redis did not become ready within the given time period")

	// ErrEmptyConnectionURL is returned when no connection URL is
	// configured.
	ErrEmptyConnectionURL = errors.New("empty redis connection URL")

	// ErrHealthcheckFailed is returned by the Healthcheck probe when the
	// server does not answer a ping.
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)
