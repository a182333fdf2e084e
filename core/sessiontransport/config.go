package sessiontransport

import (
	"github.com/mrCamelCode/potami/core/cookie"
	"github.com/mrCamelCode/potami/core/session"
)

// CookieConfig maps cookie transport settings to environment variables.
type CookieConfig struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"__session"`
}

// NewCookieFromConfig creates a cookie transport from environment
// configuration; the managers are wired by the caller.
func NewCookieFromConfig[Data any](cfg CookieConfig, sessions *session.Manager[Data], cookies *cookie.Manager) *Cookie[Data] {
	name := cfg.CookieName
	if name == "" {
		name = "__session"
	}
	return NewCookie(sessions, cookies, name)
}
