package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/mrCamelCode/potami/core/handler"
	"github.com/mrCamelCode/potami/core/reqctx"
	"github.com/mrCamelCode/potami/core/response"
)

// CORSConfig configures cross-origin resource sharing.
type CORSConfig struct {
	// Skip bypasses the middleware for matching requests.
	Skip func(ctx handler.Context) bool

	// AllowOrigins lists exact origins, or ["*"] for any. Defaults to ["*"].
	AllowOrigins []string

	// AllowOriginFunc decides per origin, overriding AllowOrigins. It
	// returns the value for Access-Control-Allow-Origin and whether the
	// origin is allowed.
	AllowOriginFunc func(origin string) (string, bool)

	// AllowMethods for preflight responses. Defaults to
	// GET, HEAD, PUT, PATCH, POST, DELETE.
	AllowMethods []string

	// AllowHeaders for preflight responses. Defaults to a list covering
	// content negotiation, Authorization, and X-Request-ID.
	AllowHeaders []string

	// ExposeHeaders the browser may read from actual responses.
	ExposeHeaders []string

	// AllowCredentials permits cookies and Authorization headers. With a
	// wildcard origin the request's own origin is reflected instead of
	// "*", which browsers reject for credentialed requests.
	AllowCredentials bool

	// MaxAge is how long browsers may cache preflight results, in seconds.
	MaxAge int
}

func (cfg CORSConfig) withDefaults() CORSConfig {
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"*"}
	}
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet, http.MethodHead, http.MethodPut,
			http.MethodPatch, http.MethodPost, http.MethodDelete,
		}
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{
			"Accept", "Accept-Language", "Content-Language",
			"Content-Type", "Origin", "Authorization", "X-Request-ID",
		}
	}
	return cfg
}

// CORS allows any origin without credentials. Use CORSWithConfig in
// production and name your origins.
func CORS() handler.Middleware {
	return CORSWithConfig(CORSConfig{})
}

// CORSWithConfig handles preflight requests and decorates actual
// responses with CORS headers.
func CORSWithConfig(cfg CORSConfig) handler.Middleware {
	cfg = cfg.withDefaults()

	allowMethods := strings.Join(cfg.AllowMethods, ", ")
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ", ")

	return func(ctx handler.Context, set reqctx.Setter) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return nil
		}

		r := ctx.Request()
		origin := r.Header.Get("Origin")
		if origin == "" {
			// Same-origin or non-browser request.
			return nil
		}

		h := ctx.ResponseWriter().Header()
		h.Add("Vary", "Origin")
		allowOrigin, allowed := cfg.resolveOrigin(origin)

		if isPreflight(r) {
			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")

			method := r.Header.Get("Access-Control-Request-Method")
			if !allowed || !slices.Contains(cfg.AllowMethods, method) {
				return response.Status(http.StatusForbidden)
			}

			h.Set("Access-Control-Allow-Origin", allowOrigin)
			h.Set("Access-Control-Allow-Methods", allowMethods)
			if r.Header.Get("Access-Control-Request-Headers") != "" {
				h.Set("Access-Control-Allow-Headers", allowHeaders)
			}
			if cfg.AllowCredentials && allowOrigin != "*" {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if cfg.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			}
			return response.NoContent()
		}

		if !allowed {
			// The browser enforces the missing headers; the request
			// itself still runs.
			return nil
		}

		h.Set("Access-Control-Allow-Origin", allowOrigin)
		if cfg.AllowCredentials && allowOrigin != "*" {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
		if exposeHeaders != "" {
			h.Set("Access-Control-Expose-Headers", exposeHeaders)
		}
		return nil
	}
}

// resolveOrigin maps a request origin to the Access-Control-Allow-Origin
// value and whether the origin is allowed at all.
func (cfg CORSConfig) resolveOrigin(origin string) (string, bool) {
	if cfg.AllowOriginFunc != nil {
		return cfg.AllowOriginFunc(origin)
	}
	if slices.Contains(cfg.AllowOrigins, "*") {
		if cfg.AllowCredentials {
			return origin, true
		}
		return "*", true
	}
	if slices.Contains(cfg.AllowOrigins, origin) {
		return origin, true
	}
	return "", false
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}

// AllowOriginWildcard returns an AllowOriginFunc matching origins against
// patterns with a single "*" wildcard, such as "https://*.example.com".
// The wildcard must match at least one character. Patterns without a
// wildcard match exactly.
func AllowOriginWildcard(patterns ...string) func(origin string) (string, bool) {
	return func(origin string) (string, bool) {
		for _, pattern := range patterns {
			if matchOriginPattern(pattern, origin) {
				return origin, true
			}
		}
		return "", false
	}
}

func matchOriginPattern(pattern, origin string) bool {
	prefix, suffix, wildcard := strings.Cut(pattern, "*")
	if !wildcard {
		return strings.EqualFold(pattern, origin)
	}
	if len(origin) <= len(prefix)+len(suffix) {
		return false
	}
	lower := strings.ToLower(origin)
	if !strings.HasPrefix(lower, strings.ToLower(prefix)) ||
		!strings.HasSuffix(lower, strings.ToLower(suffix)) {
		return false
	}
	// The wildcard must not escape the host part, otherwise a path or
	// query ending in the suffix would slip through.
	middle := lower[len(prefix) : len(lower)-len(suffix)]
	return !strings.ContainsAny(middle, "/?#")
}

// AllowOriginSubdomain returns an AllowOriginFunc accepting the apex
// domain and any subdomain of it, on any scheme and port.
//
//	cors := middleware.CORSWithConfig(middleware.CORSConfig{
//		AllowOriginFunc: middleware.AllowOriginSubdomain("example.com"),
//	})
func AllowOriginSubdomain(domain string) func(origin string) (string, bool) {
	domain = strings.ToLower(domain)

	return func(origin string) (string, bool) {
		host := originHost(origin)
		if host == "" {
			return "", false
		}
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return origin, true
		}
		return "", false
	}
}

// originHost extracts the lowercase hostname from an origin value,
// dropping the scheme and port.
func originHost(origin string) string {
	rest, ok := strings.CutPrefix(origin, "https://")
	if !ok {
		rest, ok = strings.CutPrefix(origin, "http://")
	}
	if !ok || rest == "" {
		return ""
	}
	host := strings.ToLower(rest)
	if strings.HasPrefix(host, "[") {
		// Bracketed IPv6 hosts keep their brackets; strip only the port.
		if end := strings.Index(host, "]"); end >= 0 {
			return host[:end+1]
		}
		return ""
	}
	if idx := strings.LastIndexByte(host, ':'); idx >= 0 {
		host = host[:idx]
	}
	return host
}
