package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"
)

const (
	// MaxCookieSize is the default size cap for a serialized cookie header.
	// Browsers commonly truncate or drop cookies above 4KB.
	MaxCookieSize = 4096

	// minSecretLength guarantees enough key material for both
	// HMAC-SHA256 signing and AES-256 encryption.
	minSecretLength = 32
)

// Manager issues and reads HTTP cookies with a shared set of default
// attributes and a list of secrets for signing and encryption.
//
// The first secret is used for all new cookies; the remaining secrets are
// consulted only when verifying or decrypting, which allows zero-downtime
// key rotation: prepend the new secret and keep the old one until all
// cookies issued under it have expired.
type Manager struct {
	secrets  []string
	defaults Options
}

// New creates a cookie manager. At least one secret of minSecretLength
// characters is required; empty entries are dropped. Options set the
// default attributes applied to every cookie the manager writes.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d",
				ErrSecretTooShort, i, len(s), minSecretLength)
		}
	}

	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxSize:  MaxCookieSize,
	}

	return &Manager{
		secrets:  secrets,
		defaults: applyOptions(defaults, opts),
	}, nil
}

// Set writes a plain cookie. The manager's default attributes apply unless
// overridden by opts. Returns ErrCookieTooLarge if the serialized cookie
// exceeds the configured size cap.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	options := applyOptions(m.defaults, opts)

	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	}

	if header := c.String(); options.MaxSize > 0 && len(header) > options.MaxSize {
		return ErrCookieTooLarge{Name: name, Size: len(header), Max: options.MaxSize}
	}

	http.SetCookie(w, c)
	return nil
}

// Get returns the raw value of the named request cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires the named cookie. The attributes must match the ones the
// cookie was set with (path and domain in particular), so the manager's
// defaults are used.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	})
}
