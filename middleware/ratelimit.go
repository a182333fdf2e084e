package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/mrCamelCode/potami/core/handler"
	"github.com/mrCamelCode/potami/core/reqctx"
	"github.com/mrCamelCode/potami/core/response"
	"github.com/mrCamelCode/potami/pkg/clientip"
	"github.com/mrCamelCode/potami/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limit middleware.
type RateLimitConfig struct {
	// Skip bypasses the limiter for matching requests.
	Skip func(ctx handler.Context) bool

	// Limiter is required.
	Limiter ratelimiter.RateLimiter

	// KeyFunc selects the bucket for a request. Defaults to the client IP,
	// preferring the value the ClientIP middleware resolved.
	KeyFunc func(ctx handler.Context) string

	// OnLimit renders the rejection. Defaults to 429 with a retry_after
	// detail in seconds.
	OnLimit func(ctx handler.Context, result ratelimiter.Result) handler.Response

	// DisableHeaders suppresses the X-RateLimit-* and Retry-After headers.
	DisableHeaders bool
}

// RateLimit throttles requests per client IP using the given limiter and
// reports quota through X-RateLimit-* headers.
func RateLimit(limiter ratelimiter.RateLimiter) handler.Middleware {
	return RateLimitWithConfig(RateLimitConfig{Limiter: limiter})
}

// RateLimitWithConfig is RateLimit with custom settings. It panics when
// no limiter is configured, since a missing limiter is a wiring mistake
// that would otherwise silently admit everything.
func RateLimitWithConfig(cfg RateLimitConfig) handler.Middleware {
	if cfg.Limiter == nil {
		panic("middleware: rate limit requires a limiter")
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(ctx handler.Context) string {
			if ip := ClientIPFromContext(ctx); ip != "" {
				return ip
			}
			return clientip.GetIP(ctx.Request())
		}
	}
	if cfg.OnLimit == nil {
		cfg.OnLimit = func(ctx handler.Context, result ratelimiter.Result) handler.Response {
			httpErr := response.ErrTooManyRequests
			if retry := retryAfterSeconds(result); retry > 0 {
				httpErr = httpErr.WithDetails(map[string]any{"retry_after": retry})
			}
			return response.Error(httpErr)
		}
	}

	return func(ctx handler.Context, set reqctx.Setter) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return nil
		}

		result, err := cfg.Limiter.Allow(ctx, cfg.KeyFunc(ctx))
		if err != nil {
			return response.Error(response.ErrInternalServerError.WithError(err))
		}

		if !cfg.DisableHeaders {
			setRateLimitHeaders(ctx.ResponseWriter().Header(), result)
		}
		if !result.Allowed() {
			return cfg.OnLimit(ctx, result)
		}
		return nil
	}
}

func setRateLimitHeaders(h http.Header, result ratelimiter.Result) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(max(result.Remaining, 0)))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

	if !result.Allowed() {
		if retry := retryAfterSeconds(result); retry > 0 {
			h.Set("Retry-After", strconv.Itoa(retry))
		}
	}
}

// retryAfterSeconds rounds the wait up so clients never retry early.
func retryAfterSeconds(result ratelimiter.Result) int {
	retry := result.RetryAfter()
	if retry <= 0 {
		return 0
	}
	return int(math.Ceil(retry.Seconds()))
}
