// Package health provides liveness and readiness handlers for service
// health probes.
//
//	mux.Get("/health/live", health.Liveness)
//	mux.Get("/health/ready", health.Readiness(log,
//		pg.Healthcheck(pool),
//		redis.Healthcheck(client),
//	))
//	mux.Get("/ping", health.Ping)
//
// Readiness checks follow the func(context.Context) error signature, which
// the database integrations expose directly.
package health
