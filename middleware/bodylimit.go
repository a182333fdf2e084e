package middleware

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/mrCamelCode/potami/core/handler"
	"github.com/mrCamelCode/potami/core/reqctx"
	"github.com/mrCamelCode/potami/core/response"
)

// Byte size units for limit configuration.
const (
	KB int64 = 1 << 10
	MB int64 = 1 << 20
	GB int64 = 1 << 30
)

// DefaultBodyLimit caps request bodies at 4MB.
const DefaultBodyLimit = 4 * MB

// BodyLimitConfig configures request body size enforcement.
type BodyLimitConfig struct {
	// Skip bypasses the limit for matching requests.
	Skip func(ctx handler.Context) bool

	// MaxSize in bytes. Defaults to DefaultBodyLimit.
	MaxSize int64

	// ContentTypeLimit overrides MaxSize per media type, keyed by the bare
	// type such as "multipart/form-data".
	ContentTypeLimit map[string]int64

	// OnLimit renders the rejection. Defaults to 413 with the limit and,
	// when declared, the offending size in the details.
	OnLimit func(ctx handler.Context, contentLength, maxSize int64) handler.Response
}

// BodyLimit rejects request bodies larger than DefaultBodyLimit.
func BodyLimit() handler.Middleware {
	return BodyLimitWithConfig(BodyLimitConfig{})
}

// BodyLimitWithSize rejects request bodies larger than maxSize bytes.
func BodyLimitWithSize(maxSize int64) handler.Middleware {
	return BodyLimitWithConfig(BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig enforces the body size cap two ways: requests
// declaring an oversized Content-Length are rejected before any reading,
// and the body is wrapped so chunked uploads cannot exceed the cap either.
func BodyLimitWithConfig(cfg BodyLimitConfig) handler.Middleware {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultBodyLimit
	}
	if cfg.OnLimit == nil {
		cfg.OnLimit = func(ctx handler.Context, contentLength, maxSize int64) handler.Response {
			details := map[string]any{"limit": maxSize}
			if contentLength > 0 {
				details["size"] = contentLength
			}
			return response.Error(response.ErrRequestEntityTooLarge.
				WithMessage(fmt.Sprintf("request body exceeds %s", formatBytes(maxSize))).
				WithDetails(details))
		}
	}

	return func(ctx handler.Context, set reqctx.Setter) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return nil
		}

		r := ctx.Request()
		maxSize := cfg.limitFor(r)

		if r.ContentLength > maxSize {
			return cfg.OnLimit(ctx, r.ContentLength, maxSize)
		}
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(ctx.ResponseWriter(), r.Body, maxSize)
		}
		return nil
	}
}

func (cfg BodyLimitConfig) limitFor(r *http.Request) int64 {
	if len(cfg.ContentTypeLimit) == 0 {
		return cfg.MaxSize
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return cfg.MaxSize
	}
	if limit, ok := cfg.ContentTypeLimit[mediaType]; ok && limit > 0 {
		return limit
	}
	return cfg.MaxSize
}

func formatBytes(n int64) string {
	switch {
	case n >= GB:
		return fmt.Sprintf("%.1fGB", float64(n)/float64(GB))
	case n >= MB:
		return fmt.Sprintf("%.1fMB", float64(n)/float64(MB))
	case n >= KB:
		return fmt.Sprintf("%.1fKB", float64(n)/float64(KB))
	default:
		return fmt.Sprintf("%dB", n)
	}
}
