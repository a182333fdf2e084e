package middleware

import (
	"github.com/google/uuid"

	"github.com/mrCamelCode/potami/core/handler"
	"github.com/mrCamelCode/potami/core/reqctx"
)

// DefaultRequestIDHeader is the response header carrying the request ID.
const DefaultRequestIDHeader = "X-Request-ID"

var requestIDKey = reqctx.NewKey("")

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip bypasses the middleware for matching requests.
	Skip func(ctx handler.Context) bool

	// Generator produces request IDs. Defaults to UUID v4.
	Generator func() string

	// HeaderName is the header the ID is read from and written to.
	// Defaults to DefaultRequestIDHeader.
	HeaderName string

	// TrustInbound reuses an inbound header value instead of generating a
	// fresh ID. Enable only behind a proxy that sets or strips the header,
	// otherwise clients control the IDs in your logs.
	TrustInbound bool
}

// RequestID assigns a UUID to every request, exposes it through
// RequestIDFromContext, and echoes it in the X-Request-ID response header.
func RequestID() handler.Middleware {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig is RequestID with custom settings.
func RequestIDWithConfig(cfg RequestIDConfig) handler.Middleware {
	if cfg.Generator == nil {
		cfg.Generator = uuid.NewString
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultRequestIDHeader
	}

	return func(ctx handler.Context, set reqctx.Setter) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return nil
		}

		var id string
		if cfg.TrustInbound {
			id = ctx.Request().Header.Get(cfg.HeaderName)
		}
		if id == "" {
			id = cfg.Generator()
		}

		reqctx.Set(set, requestIDKey, id)
		ctx.ResponseWriter().Header().Set(cfg.HeaderName, id)
		return nil
	}
}

// RequestIDFromContext returns the request's ID, or "" when the middleware
// did not run for this route.
func RequestIDFromContext(ctx handler.Context) string {
	return reqctx.Value(ctx.Values(), requestIDKey)
}
