package simple

import (
	"time"

	"github.com/mrCamelCode/potami/core/cookie"
	"github.com/mrCamelCode/potami/core/server"
	"github.com/mrCamelCode/potami/core/session"
	"github.com/mrCamelCode/potami/core/sessiontransport"
)

// Session store backends selectable via SESSION_STORE.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config aggregates every section the app needs; config.Load fills it
// from the environment in one call. Database sections are loaded lazily,
// only when SESSION_STORE selects their backend.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"potami-simple"`
	Env     string `env:"APP_ENV" envDefault:"development"`

	// SessionStore selects the session backend: memory, redis, or postgres.
	SessionStore string `env:"SESSION_STORE" envDefault:"memory"`

	// SessionCleanupInterval is how often expired sessions are purged.
	// Zero disables the cleanup loop.
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`

	// Languages are negotiated against Accept-Language; the first entry
	// is the fallback.
	Languages []string `env:"APP_LANGUAGES" envDefault:"en"`

	// RateLimitRequests per RateLimitWindow, keyed by client IP.
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"120"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	Server           server.Config
	Cookie           cookie.Config
	Session          session.Config
	SessionTransport sessiontransport.CookieConfig
}

// applyDefaults fills the zero values a hand-built Config would miss, so
// NewWithConfig behaves like the env path.
func (c *Config) applyDefaults() {
	if c.AppName == "" {
		c.AppName = "potami-simple"
	}
	if c.SessionStore == "" {
		c.SessionStore = StoreMemory
	}
	if len(c.Languages) == 0 {
		c.Languages = []string{"en"}
	}
	if c.RateLimitRequests <= 0 {
		c.RateLimitRequests = 120
	}
	if c.RateLimitWindow <= 0 {
		c.RateLimitWindow = time.Minute
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}
