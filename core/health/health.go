package health

import (
	"context"
	"io"
	"log/slog"

	"github.com/mrCamelCode/potami/core/handler"
	"github.com/mrCamelCode/potami/core/logger"
	"github.com/mrCamelCode/potami/core/response"
)

// Liveness reports that the process is running. Always 200 "ALIVE", no
// dependency checks.
func Liveness(handler.Context) handler.Response {
	return response.String("ALIVE")
}

// Ping returns 204 without a body, for high-frequency probes.
func Ping(handler.Context) handler.Response {
	return response.NoContent()
}

// Readiness verifies service dependencies. Every check must pass for a
// 200 "READY"; the first failure is logged and answered with 503.
func Readiness(log *slog.Logger, checks ...func(context.Context) error) handler.HandlerFunc {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return func(ctx handler.Context) handler.Response {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component("health"),
					logger.Error(err),
				)
				return response.Error(response.ErrServiceUnavailable)
			}
		}
		return response.String("READY")
	}
}
