package middleware

import (
	"log/slog"
	"strings"
	"time"

	"github.com/mrCamelCode/potami/core/handler"
	"github.com/mrCamelCode/potami/core/logger"
	"github.com/mrCamelCode/potami/core/reqctx"
	"github.com/mrCamelCode/potami/core/router"
)

// DefaultSlowThreshold marks responses slower than this as warnings.
const DefaultSlowThreshold = 5 * time.Second

// defaultSensitiveHeaders are redacted when header logging is on.
var defaultSensitiveHeaders = []string{
	"Authorization",
	"Cookie",
	"Set-Cookie",
	"X-Api-Key",
	"X-Auth-Token",
	"X-Csrf-Token",
}

// LoggingConfig configures request and response logging. The same config
// feeds both LoggingWithConfig and ResponseLoggerWithConfig so a pair can
// share skip rules and the logger.
type LoggingConfig struct {
	// Skip silences logging for matching requests, health probes usually.
	Skip func(ctx handler.Context) bool

	// Logger to write entries to. Defaults to slog.Default().
	Logger *slog.Logger

	// Level for request entries and successful response entries.
	// Failures escalate regardless. Defaults to Info.
	Level slog.Level

	// SlowThreshold promotes slower responses to warnings.
	// Defaults to DefaultSlowThreshold.
	SlowThreshold time.Duration

	// LogHeaders includes request headers in request entries, with
	// SensitiveHeaders redacted.
	LogHeaders bool

	// SensitiveHeaders replaces the default redaction list.
	SensitiveHeaders []string

	// Component tags every entry. Defaults to "http".
	Component string
}

func (cfg LoggingConfig) withDefaults() LoggingConfig {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowThreshold <= 0 {
		cfg.SlowThreshold = DefaultSlowThreshold
	}
	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = defaultSensitiveHeaders
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}
	return cfg
}

// Logging emits one entry when a request arrives. Pair it with
// ResponseLogger for the completion entry.
func Logging(log *slog.Logger) handler.Middleware {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig is Logging with custom settings.
func LoggingWithConfig(cfg LoggingConfig) handler.Middleware {
	cfg = cfg.withDefaults()

	return func(ctx handler.Context, set reqctx.Setter) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return nil
		}

		r := ctx.Request()
		attrs := []slog.Attr{
			logger.Component(cfg.Component),
			logger.Event("request_started"),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
		}
		if q := r.URL.RawQuery; q != "" {
			attrs = append(attrs, slog.String("query", q))
		}
		if id := RequestIDFromContext(ctx); id != "" {
			attrs = append(attrs, logger.RequestID(id))
		}
		if ip := ClientIPFromContext(ctx); ip != "" {
			attrs = append(attrs, logger.ClientIP(ip))
		}
		if ua := r.UserAgent(); ua != "" {
			attrs = append(attrs, logger.UserAgent(ua))
		}
		if r.ContentLength > 0 {
			attrs = append(attrs, logger.BytesIn(r.ContentLength))
		}
		if cfg.LogHeaders {
			attrs = append(attrs, slog.Any("headers", redactHeaders(r.Header, cfg.SensitiveHeaders)))
		}

		cfg.Logger.LogAttrs(ctx, cfg.Level, "request started", attrs...)
		return nil
	}
}

// ResponseLogger emits one entry after the response is written, with the
// status, byte count, and latency the router measured. Register it via
// Mux.OnAfterRespond.
func ResponseLogger(log *slog.Logger) router.AfterRespondHook {
	return ResponseLoggerWithConfig(LoggingConfig{Logger: log})
}

// ResponseLoggerWithConfig is ResponseLogger with custom settings.
func ResponseLoggerWithConfig(cfg LoggingConfig) router.AfterRespondHook {
	cfg = cfg.withDefaults()

	return func(ctx handler.Context, stat router.RequestStat) {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return
		}

		r := ctx.Request()
		attrs := []slog.Attr{
			logger.Component(cfg.Component),
			logger.Event("request_completed"),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.StatusCode(stat.Status),
			logger.BytesOut(stat.BytesWritten),
			logger.Latency(stat.Duration),
		}
		if id := RequestIDFromContext(ctx); id != "" {
			attrs = append(attrs, logger.RequestID(id))
		}
		if ip := ClientIPFromContext(ctx); ip != "" {
			attrs = append(attrs, logger.ClientIP(ip))
		}

		level := cfg.Level
		switch {
		case stat.Status >= 500:
			level = slog.LevelError
		case stat.Status >= 400:
			level = slog.LevelWarn
		case stat.Duration > cfg.SlowThreshold:
			level = slog.LevelWarn
			attrs = append(attrs, slog.Bool("slow", true))
		}

		cfg.Logger.LogAttrs(ctx, level, "request completed", attrs...)
	}
}

// redactHeaders flattens a header map for logging, masking sensitive
// values.
func redactHeaders(h map[string][]string, sensitive []string) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if isSensitiveHeader(name, sensitive) {
			out[name] = "[REDACTED]"
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

func isSensitiveHeader(name string, sensitive []string) bool {
	for _, s := range sensitive {
		if strings.EqualFold(name, s) {
			return true
		}
	}
	return false
}
