package ratelimiter

import "errors"

var (
	// ErrInvalidConfig reports unusable bucket parameters or a nil store.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidTokenCount reports a non-positive token request.
	ErrInvalidTokenCount = errors.New("invalid token count")
	// ErrContextCancelled reports that the caller's context ended before
	// the attempt was made.
	ErrContextCancelled = errors.New("context cancelled")
	// ErrStoreUnavailable wraps storage backend failures.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrRateLimitExceeded is a sentinel consumers can map to HTTP 429.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)
