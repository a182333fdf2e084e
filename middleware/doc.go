// Package middleware provides request middleware and router hooks for
// the concerns most services need: request IDs, client IPs, logging,
// CORS, rate limiting, body limits, security headers, language
// negotiation, and sessions.
//
// A middleware runs before the handler. Returning nil passes the request
// on; returning a response short-circuits the route:
//
//	mux.Use(
//		middleware.RequestID(),
//		middleware.ClientIP(),
//		middleware.Logging(log),
//		middleware.BodyLimit(),
//	)
//	mux.OnBeforeRespond(middleware.SessionPersist(transport, sessionKey, log))
//	mux.OnAfterRespond(middleware.ResponseLogger(log))
//
// Each middleware has a zero-config constructor and a WithConfig variant.
// Config structs share two conventions: a Skip func exempting matching
// requests, and panics at wiring time for required settings, so
// misconfiguration fails at startup rather than per request.
//
// # Context values
//
// Middleware publish what they compute through typed accessors:
// RequestIDFromContext, ClientIPFromContext, LanguageFromContext,
// SessionFromContext. Accessors return the zero value when the
// middleware did not run for the route. Values follow the router's
// scoping, so a group's Language override shadows the server-wide one
// for routes inside the group.
//
// # Ordering
//
// Middleware run in registration order. RequestID and ClientIP should
// come first since logging and rate limiting read their values. Response
// headers set by middleware stay mutable until the handler writes, which
// is why CORS and security headers can decorate upfront and still let a
// later middleware fail the request.
package middleware
