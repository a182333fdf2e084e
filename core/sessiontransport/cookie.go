package sessiontransport

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mrCamelCode/potami/core/cookie"
	"github.com/mrCamelCode/potami/core/handler"
	"github.com/mrCamelCode/potami/core/session"
	"github.com/mrCamelCode/potami/pkg/clientip"
	"github.com/mrCamelCode/potami/pkg/fingerprint"
)

// Cookie carries sessions over a signed HTTP cookie holding the session
// token. It pairs a session.Manager (server-side state) with a
// cookie.Manager (client-side token).
type Cookie[Data any] struct {
	sessions *session.Manager[Data]
	cookies  *cookie.Manager
	name     string
}

// NewCookie creates a cookie-based session transport writing the token
// under the given cookie name.
func NewCookie[Data any](sessions *session.Manager[Data], cookies *cookie.Manager, name string) *Cookie[Data] {
	return &Cookie[Data]{
		sessions: sessions,
		cookies:  cookies,
		name:     name,
	}
}

// Load resolves the request's session. A missing, tampered, or stale
// cookie yields a fresh anonymous session instead of an error, so callers
// always have a session to work with. The error path is reserved for
// failures creating that fallback.
func (c *Cookie[Data]) Load(ctx handler.Context) (session.Session[Data], error) {
	token, err := c.cookies.GetSigned(ctx.Request(), c.name)
	if err != nil {
		return c.newAnonymous(ctx)
	}

	sess, err := c.sessions.GetByToken(ctx, token)
	if err != nil {
		return c.newAnonymous(ctx)
	}
	return sess, nil
}

// Save persists the session and syncs the cookie. Deleted sessions are
// removed from the store and the cookie is expired; live sessions are
// touched and written back only when modified, with the cookie lifetime
// following the (possibly extended) session expiration.
func (c *Cookie[Data]) Save(ctx handler.Context, sess session.Session[Data]) error {
	stored, err := c.sessions.Store(ctx, sess)
	if errors.Is(err, session.ErrNotAuthenticated) {
		c.cookies.Delete(ctx.ResponseWriter(), c.name)
		return nil
	}
	if err != nil {
		return err
	}
	return c.writeCookie(ctx, stored)
}

// Authenticate logs the current visitor in as userID: the session token
// rotates, the store is updated, and the new token replaces the cookie.
// Optional data replaces the session payload in the same step.
func (c *Cookie[Data]) Authenticate(ctx handler.Context, userID uuid.UUID, data ...Data) (session.Session[Data], error) {
	current, err := c.Load(ctx)
	if err != nil {
		return session.Session[Data]{}, err
	}

	authed, err := c.sessions.Authenticate(ctx, current, userID, data...)
	if err != nil {
		return session.Session[Data]{}, err
	}

	if err := c.writeCookie(ctx, authed); err != nil {
		return session.Session[Data]{}, err
	}
	return authed, nil
}

// Logout replaces the current session with a fresh anonymous one and
// points the cookie at it.
func (c *Cookie[Data]) Logout(ctx handler.Context) (session.Session[Data], error) {
	current, err := c.Load(ctx)
	if err != nil {
		return session.Session[Data]{}, err
	}

	anon, err := c.sessions.Logout(ctx, current)
	if err != nil {
		return session.Session[Data]{}, err
	}

	if err := c.writeCookie(ctx, anon); err != nil {
		return session.Session[Data]{}, err
	}
	return anon, nil
}

// Delete removes the current session from the store and expires the
// cookie, leaving the visitor with nothing until the next Load.
func (c *Cookie[Data]) Delete(ctx handler.Context) error {
	current, err := c.Load(ctx)
	if err != nil {
		return err
	}

	if err := c.sessions.Delete(ctx, current.ID); err != nil {
		return err
	}

	c.cookies.Delete(ctx.ResponseWriter(), c.name)
	return nil
}

func (c *Cookie[Data]) newAnonymous(ctx handler.Context) (session.Session[Data], error) {
	r := ctx.Request()
	return c.sessions.New(session.NewSessionParams{
		Fingerprint: fingerprint.Cookie(r),
		IP:          clientip.GetIP(r),
		UserAgent:   r.Header.Get("User-Agent"),
	})
}

// writeCookie signs the token into the session cookie with a lifetime
// matching the session. Secure/SameSite/Path come from the cookie
// manager's defaults so deployment config stays in one place.
func (c *Cookie[Data]) writeCookie(ctx handler.Context, sess session.Session[Data]) error {
	until := time.Until(sess.ExpiresAt)
	if until <= 0 {
		return fmt.Errorf("%w: expired %s ago", session.ErrExpired, (-until).Round(time.Millisecond))
	}

	return c.cookies.SetSigned(ctx.ResponseWriter(), c.name, sess.Token,
		cookie.WithHTTPOnly(true),
		cookie.WithMaxAge(int(until.Seconds())),
	)
}
