// Package redis initializes go-redis clients with connection
// verification, for session stores, rate limiter backends, and caches.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store, err := session.NewRedisStore[UserData](client)
//	if err != nil {
//		return err
//	}
//	sessions := session.NewManager[UserData](store)
//
// Connect fails fast on a malformed URL, then retries pings with
// exponential backoff until the server answers or the connect timeout
// expires, smoothing over container start ordering.
//
// Healthcheck returns a probe for readiness endpoints; it accepts any
// UniversalClient, so cluster and sentinel clients wired elsewhere can
// share it.
package redis
