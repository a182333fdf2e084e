// Package ratelimiter implements token bucket rate limiting with
// pluggable storage backends.
//
// A bucket holds at most Capacity tokens and gains RefillRate tokens
// every RefillInterval. Each attempt consumes tokens; once the bucket is
// empty, further attempts are rejected and keep digging the bucket into
// deficit, so abusive clients do not recover faster by hammering.
//
// # Usage
//
//	store := ratelimiter.NewMemoryStore()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       100,
//		RefillRate:     10,
//		RefillInterval: time.Second,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := limiter.Allow(ctx, "user:123")
//	if err != nil {
//		// storage failure, decide whether to fail open or closed
//	}
//	if !result.Allowed() {
//		retryIn := result.RetryAfter()
//		// reject with 429 and a Retry-After header
//	}
//
// AllowN consumes several tokens at once for batch operations, Status
// inspects a bucket without consuming, and Reset clears one key.
//
// # Stores
//
// MemoryStore keeps buckets in process memory and suits a single
// instance; start its cleanup loop to drop idle buckets:
//
//	go store.Start(ctx)
//	defer store.Stop()
//
// RedisStore shares buckets across instances using one atomic Lua script
// per attempt:
//
//	store, err := ratelimiter.NewRedisStore(redisClient)
//
// Result carries Limit, Remaining, and ResetAt, which map directly onto
// the conventional X-RateLimit-* response headers.
package ratelimiter
