package logger

import (
	"log/slog"
	"strings"
)

// Config holds logger settings loadable from the environment.
type Config struct {
	// Level is the minimum level recorded: debug, info, warn, or error.
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// Format selects the output encoding: text or json.
	Format string `env:"LOG_FORMAT" envDefault:"text"`
	// App is tagged on every record when set.
	App string `env:"APP_NAME" envDefault:""`
	// Env is tagged on every record when set.
	Env string `env:"APP_ENV" envDefault:""`
}

// NewFromConfig creates a logger from configuration. Options are applied
// after the config values and override them.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	configOpts := make([]Option, 0, len(opts)+3)

	configOpts = append(configOpts, WithLevel(ParseLevel(cfg.Level)))

	if strings.EqualFold(cfg.Format, "json") {
		configOpts = append(configOpts, WithJSONFormatter())
	}

	var attrs []slog.Attr
	if cfg.App != "" {
		attrs = append(attrs, slog.String("app", cfg.App))
	}
	if cfg.Env != "" {
		attrs = append(attrs, slog.String("env", cfg.Env))
	}
	if len(attrs) > 0 {
		configOpts = append(configOpts, WithAttr(attrs...))
	}

	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}

// ParseLevel maps a level name to its slog value. Unknown names fall back
// to info so a typo in the environment never silences logging.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
