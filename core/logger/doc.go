// Package logger builds structured slog loggers with environment
// presets, context attribute extraction, and a set of attribute helpers
// shared across the framework.
//
// # Creating loggers
//
// New assembles a *slog.Logger from options. The presets cover the usual
// environments and can be combined with finer-grained options:
//
//	// text output at debug level
//	log := logger.New(logger.WithDevelopment("myapp"))
//
//	// JSON output at info level
//	log := logger.New(logger.WithProduction("myapp"))
//
//	// custom combination
//	log := logger.New(
//		logger.WithJSONFormatter(),
//		logger.WithLevel(slog.LevelWarn),
//		logger.WithOutput(os.Stderr),
//		logger.WithAttr(slog.String("service", "billing")),
//	)
//
// NewFromConfig builds the same logger from an environment-loadable
// Config (LOG_LEVEL, LOG_FORMAT, APP_NAME, APP_ENV).
//
// SetAsDefault installs a logger as the slog default so package-level
// slog calls route through it.
//
// # Context attributes
//
// Extractors pull request-scoped values into every record logged through
// the Context variants:
//
//	log := logger.New(
//		logger.WithProduction("myapp"),
//		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//			if id, ok := ctx.Value(requestIDKey).(string); ok {
//				return logger.RequestID(id), true
//			}
//			return slog.Attr{}, false
//		}),
//	)
//
//	log.InfoContext(ctx, "processing request") // carries request_id
//
// # Attribute helpers
//
// The helpers keep attribute keys consistent across packages and are nil
// safe, so error values can be passed without checking:
//
//	log.Info("request served",
//		logger.Method(r.Method),
//		logger.Path(r.URL.Path),
//		logger.StatusCode(status),
//		logger.Latency(elapsed),
//		logger.Error(err), // dropped when err is nil
//	)
package logger
