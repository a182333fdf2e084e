// Package session provides generic server-side sessions with pluggable
// storage. A session carries an application-defined payload (the Data
// type parameter), a stable ID, and a rotating client token.
//
// # Lifecycle
//
// The Manager owns the lifecycle. Sessions start anonymous, authenticate
// with a token rotation, and are persisted through Store which also
// extends the expiration of active sessions:
//
//	type Cart struct {
//		Items []string `json:"items"`
//	}
//
//	store := session.NewMemoryStore[Cart]()
//	manager := session.NewManager(store, session.WithTTL(12*time.Hour))
//
//	sess, err := manager.New(session.NewSessionParams{IP: "192.0.2.1"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Login: rotates the token, binds the user, persists.
//	sess, err = manager.Authenticate(ctx, sess, userID)
//
//	// Mutate the payload; Store only writes when something changed.
//	sess.SetData(Cart{Items: []string{"sku-1"}})
//	sess, err = manager.Store(ctx, sess)
//
// Token rotation on authentication prevents session fixation: a token
// captured before login stops resolving the moment the user signs in.
//
// # Stores
//
// Three Store implementations ship with the package:
//
//   - MemoryStore: process-local map, for tests and single instances.
//   - RedisStore: JSON records with native TTL, for multi-instance setups.
//   - PostgresStore: JSONB rows, when sessions must survive cache flushes.
//
// Memory and Postgres need periodic cleanup:
//
//	go func() {
//		for range time.Tick(time.Hour) {
//			if _, err := manager.CleanupExpired(ctx); err != nil {
//				logger.Error("session cleanup failed", slog.Any("error", err))
//			}
//		}
//	}()
//
// # Touch throttling
//
// Store extends the expiration of an active session, but only when
// TouchInterval has elapsed since the last update. This keeps a busy
// client from turning every request into a store write while still
// implementing an idle timeout.
//
// The sessiontransport package connects managers to HTTP via signed
// cookies; the middleware package loads sessions into request scope.
package session
