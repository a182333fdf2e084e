package session

import "time"

// Config maps session manager settings to environment variables.
type Config struct {
	// TTL is the idle lifetime of a session.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	// TouchInterval throttles expiration extensions; zero extends on
	// every request.
	TouchInterval time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"5m"`
}

// NewManagerFromConfig creates a Manager from environment configuration.
// A zero TTL keeps the manager's default; a zero TouchInterval is passed
// through, since it means extend-on-every-request.
func NewManagerFromConfig[Data any](store Store[Data], cfg Config, opts ...Option) *Manager[Data] {
	base := make([]Option, 0, len(opts)+2)
	if cfg.TTL > 0 {
		base = append(base, WithTTL(cfg.TTL))
	}
	base = append(base, WithTouchInterval(cfg.TouchInterval))
	return NewManager(store, append(base, opts...)...)
}
