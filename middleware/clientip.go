package middleware

import (
	"github.com/mrCamelCode/potami/core/handler"
	"github.com/mrCamelCode/potami/core/reqctx"
	"github.com/mrCamelCode/potami/core/response"
	"github.com/mrCamelCode/potami/pkg/clientip"
)

var clientIPKey = reqctx.NewKey("")

// ClientIPConfig configures the client IP middleware.
type ClientIPConfig struct {
	// Skip bypasses the middleware for matching requests.
	Skip func(ctx handler.Context) bool

	// Validate rejects requests by IP. Returning an error renders 403 with
	// the error attached; use it for allowlists on admin surfaces.
	Validate func(ctx handler.Context, ip string) error

	// TrustProxy reads proxy headers (CF-Connecting-IP, X-Forwarded-For,
	// X-Real-IP) before falling back to the socket address. Enable only
	// behind infrastructure that sets them, otherwise clients can spoof
	// their IP. Defaults to true because the extractor validates that
	// header values parse as IPs.
	TrustProxy *bool
}

// ClientIP resolves the request's originating IP once and exposes it
// through ClientIPFromContext.
func ClientIP() handler.Middleware {
	return ClientIPWithConfig(ClientIPConfig{})
}

// ClientIPWithConfig is ClientIP with custom settings.
func ClientIPWithConfig(cfg ClientIPConfig) handler.Middleware {
	trustProxy := cfg.TrustProxy == nil || *cfg.TrustProxy

	return func(ctx handler.Context, set reqctx.Setter) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return nil
		}

		var ip string
		if trustProxy {
			ip = clientip.GetIP(ctx.Request())
		} else {
			ip = clientip.FromRemoteAddr(ctx.Request())
		}

		if cfg.Validate != nil {
			if err := cfg.Validate(ctx, ip); err != nil {
				return response.Error(response.ErrForbidden.WithError(err))
			}
		}

		reqctx.Set(set, clientIPKey, ip)
		return nil
	}
}

// ClientIPFromContext returns the resolved client IP, or "" when the
// middleware did not run for this route.
func ClientIPFromContext(ctx handler.Context) string {
	return reqctx.Value(ctx.Values(), clientIPKey)
}
