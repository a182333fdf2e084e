package middleware

import (
	"github.com/mrCamelCode/potami/core/handler"
	"github.com/mrCamelCode/potami/core/reqctx"
)

// SecurityHeadersConfig holds browser security header values. Empty
// fields emit no header, so a config lists exactly what it sends.
type SecurityHeadersConfig struct {
	// Skip bypasses the middleware for matching requests.
	Skip func(ctx handler.Context) bool

	ContentSecurityPolicy     string
	XFrameOptions             string
	XContentTypeOptions       string
	XSSProtection             string
	ReferrerPolicy            string
	PermissionsPolicy         string
	StrictTransportSecurity   string
	CrossOriginOpenerPolicy   string
	CrossOriginResourcePolicy string
	CrossOriginEmbedderPolicy string

	// CustomHeaders are sent verbatim alongside the named ones.
	CustomHeaders map[string]string

	// IsDevelopment drops Strict-Transport-Security so localhost over
	// plain HTTP keeps working.
	IsDevelopment bool
}

// StrictSecurity locks everything down. Suits APIs and apps that serve
// no third-party content.
func StrictSecurity() SecurityHeadersConfig {
	return SecurityHeadersConfig{
		ContentSecurityPolicy:     "default-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'",
		XFrameOptions:             "DENY",
		XContentTypeOptions:       "nosniff",
		XSSProtection:             "0",
		ReferrerPolicy:            "no-referrer",
		PermissionsPolicy:         "camera=(), microphone=(), geolocation=(), payment=()",
		StrictTransportSecurity:   "max-age=63072000; includeSubDomains; preload",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-origin",
		CrossOriginEmbedderPolicy: "require-corp",
	}
}

// BalancedSecurity suits typical web apps: inline styles and HTTPS
// images allowed, framing restricted to the same origin.
func BalancedSecurity() SecurityHeadersConfig {
	return SecurityHeadersConfig{
		ContentSecurityPolicy:     "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:",
		XFrameOptions:             "SAMEORIGIN",
		XContentTypeOptions:       "nosniff",
		XSSProtection:             "0",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		PermissionsPolicy:         "camera=(), microphone=(), geolocation=()",
		StrictTransportSecurity:   "max-age=31536000; includeSubDomains",
		CrossOriginOpenerPolicy:   "same-origin-allow-popups",
		CrossOriginResourcePolicy: "same-site",
	}
}

// RelaxedSecurity sends only the headers that never break embedding or
// third-party content. A starting point for sites serving widgets.
func RelaxedSecurity() SecurityHeadersConfig {
	return SecurityHeadersConfig{
		XFrameOptions:           "SAMEORIGIN",
		XContentTypeOptions:     "nosniff",
		XSSProtection:           "0",
		ReferrerPolicy:          "strict-origin-when-cross-origin",
		StrictTransportSecurity: "max-age=31536000",
	}
}

// DevelopmentSecurity is BalancedSecurity without HSTS, for local work
// over plain HTTP.
func DevelopmentSecurity() SecurityHeadersConfig {
	cfg := BalancedSecurity()
	cfg.IsDevelopment = true
	return cfg
}

// SecurityHeaders applies the BalancedSecurity profile.
func SecurityHeaders() handler.Middleware {
	return SecurityHeadersWithConfig(BalancedSecurity())
}

// SecurityHeadersStrict applies the StrictSecurity profile.
func SecurityHeadersStrict() handler.Middleware {
	return SecurityHeadersWithConfig(StrictSecurity())
}

// SecurityHeadersRelaxed applies the RelaxedSecurity profile.
func SecurityHeadersRelaxed() handler.Middleware {
	return SecurityHeadersWithConfig(RelaxedSecurity())
}

// SecurityHeadersWithConfig sets the configured security headers on
// every response. Headers are resolved once at wiring time.
func SecurityHeadersWithConfig(cfg SecurityHeadersConfig) handler.Middleware {
	headers := cfg.buildHeaders()

	return func(ctx handler.Context, set reqctx.Setter) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return nil
		}

		h := ctx.ResponseWriter().Header()
		for name, value := range headers {
			h.Set(name, value)
		}
		return nil
	}
}

func (cfg SecurityHeadersConfig) buildHeaders() map[string]string {
	h := make(map[string]string)
	set := func(name, value string) {
		if value != "" {
			h[name] = value
		}
	}

	set("Content-Security-Policy", cfg.ContentSecurityPolicy)
	set("X-Frame-Options", cfg.XFrameOptions)
	set("X-Content-Type-Options", cfg.XContentTypeOptions)
	set("X-XSS-Protection", cfg.XSSProtection)
	set("Referrer-Policy", cfg.ReferrerPolicy)
	set("Permissions-Policy", cfg.PermissionsPolicy)
	if !cfg.IsDevelopment {
		set("Strict-Transport-Security", cfg.StrictTransportSecurity)
	}
	set("Cross-Origin-Opener-Policy", cfg.CrossOriginOpenerPolicy)
	set("Cross-Origin-Resource-Policy", cfg.CrossOriginResourcePolicy)
	set("Cross-Origin-Embedder-Policy", cfg.CrossOriginEmbedderPolicy)
	for name, value := range cfg.CustomHeaders {
		set(name, value)
	}
	return h
}
