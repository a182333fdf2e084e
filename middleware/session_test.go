package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrCamelCode/potami/core/cookie"
	"github.com/mrCamelCode/potami/core/handler"
	"github.com/mrCamelCode/potami/core/reqctx"
	"github.com/mrCamelCode/potami/core/response"
	"github.com/mrCamelCode/potami/core/router"
	"github.com/mrCamelCode/potami/core/session"
	"github.com/mrCamelCode/potami/core/sessiontransport"
	"github.com/mrCamelCode/potami/middleware"
)

type profile struct {
	Theme string `json:"theme"`
}

type sessionApp struct {
	mux       *router.Mux
	transport *sessiontransport.Cookie[profile]
	key       *reqctx.Key[*session.Session[profile]]
}

func newSessionApp(t *testing.T) *sessionApp {
	t.Helper()

	cookies, err := cookie.New([]string{"sessions-are-signed-with-this-32-char-secret"})
	require.NoError(t, err)

	transport := sessiontransport.NewCookie(
		session.NewManager[profile](session.NewMemoryStore[profile]()),
		cookies,
		"sid",
	)
	key := middleware.NewSessionKey[profile]()

	mux := router.New()
	mux.Use(middleware.Session(transport, key))
	mux.OnBeforeRespond(middleware.SessionPersist(transport, key, nil))

	return &sessionApp{mux: mux, transport: transport, key: key}
}

// send performs a request carrying the given session cookie and returns
// the recorder plus the cookie to use next, either the rotated one from
// Set-Cookie or the one sent.
func (a *sessionApp) send(t *testing.T, method, path string, sid *http.Cookie) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()

	r := httptest.NewRequest(method, path, nil)
	if sid != nil {
		r.AddCookie(sid)
	}
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, r)

	next := sid
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sid" {
			next = c
		}
	}
	return rec, next
}

func TestSession(t *testing.T) {
	t.Parallel()

	t.Run("every visitor gets a session", func(t *testing.T) {
		t.Parallel()

		app := newSessionApp(t)

		var got *session.Session[profile]
		app.mux.Get("/", func(ctx handler.Context) handler.Response {
			got = middleware.SessionFromContext(ctx, app.key)
			return response.NoContent()
		})

		rec, sid := app.send(t, http.MethodGet, "/", nil)

		require.NotNil(t, got)
		assert.NotEqual(t, uuid.Nil, got.ID)
		assert.False(t, got.IsAuthenticated())
		require.NotNil(t, sid, "anonymous session should set a cookie")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("same session across requests", func(t *testing.T) {
		t.Parallel()

		app := newSessionApp(t)

		var seen []uuid.UUID
		app.mux.Get("/", func(ctx handler.Context) handler.Response {
			seen = append(seen, middleware.SessionFromContext(ctx, app.key).ID)
			return response.NoContent()
		})

		_, sid := app.send(t, http.MethodGet, "/", nil)
		app.send(t, http.MethodGet, "/", sid)

		require.Len(t, seen, 2)
		assert.Equal(t, seen[0], seen[1])
	})

	t.Run("handler mutations persist through the hook", func(t *testing.T) {
		t.Parallel()

		app := newSessionApp(t)

		app.mux.Post("/theme", func(ctx handler.Context) handler.Response {
			middleware.SessionFromContext(ctx, app.key).SetData(profile{Theme: "dark"})
			return response.NoContent()
		})

		var got profile
		app.mux.Get("/theme", func(ctx handler.Context) handler.Response {
			got = middleware.SessionFromContext(ctx, app.key).Data
			return response.NoContent()
		})

		_, sid := app.send(t, http.MethodPost, "/theme", nil)
		app.send(t, http.MethodGet, "/theme", sid)

		assert.Equal(t, "dark", got.Theme)
	})

	t.Run("authenticate through the session pointer", func(t *testing.T) {
		t.Parallel()

		app := newSessionApp(t)
		userID := uuid.New()

		app.mux.Post("/login", func(ctx handler.Context) handler.Response {
			sess := middleware.SessionFromContext(ctx, app.key)
			if err := sess.Authenticate(userID, profile{Theme: "dark"}); err != nil {
				return response.Error(err)
			}
			return response.NoContent()
		})

		var got *session.Session[profile]
		app.mux.Get("/me", func(ctx handler.Context) handler.Response {
			got = middleware.SessionFromContext(ctx, app.key)
			return response.NoContent()
		})

		_, anon := app.send(t, http.MethodGet, "/me", nil)
		_, authed := app.send(t, http.MethodPost, "/login", anon)
		require.NotNil(t, authed)
		assert.NotEqual(t, anon.Value, authed.Value, "token must rotate on login")

		app.send(t, http.MethodGet, "/me", authed)

		require.NotNil(t, got)
		assert.True(t, got.IsAuthenticated())
		assert.Equal(t, userID, got.UserID)
		assert.Equal(t, "dark", got.Data.Theme)
	})

	t.Run("logout destroys the session", func(t *testing.T) {
		t.Parallel()

		app := newSessionApp(t)
		userID := uuid.New()

		app.mux.Post("/login", func(ctx handler.Context) handler.Response {
			sess := middleware.SessionFromContext(ctx, app.key)
			if err := sess.Authenticate(userID); err != nil {
				return response.Error(err)
			}
			return response.NoContent()
		})
		app.mux.Post("/logout", func(ctx handler.Context) handler.Response {
			middleware.SessionFromContext(ctx, app.key).Logout()
			return response.NoContent()
		})

		var got *session.Session[profile]
		app.mux.Get("/me", func(ctx handler.Context) handler.Response {
			got = middleware.SessionFromContext(ctx, app.key)
			return response.NoContent()
		})

		_, anon := app.send(t, http.MethodGet, "/me", nil)
		_, authed := app.send(t, http.MethodPost, "/login", anon)
		authedID := got

		rec, _ := app.send(t, http.MethodPost, "/logout", authed)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		logoutCookie := sidFromRecorder(rec)
		require.NotNil(t, logoutCookie, "logout should expire the cookie")
		assert.Negative(t, logoutCookie.MaxAge)

		// The old token no longer resolves; the visitor starts over.
		app.send(t, http.MethodGet, "/me", authed)
		require.NotNil(t, got)
		assert.False(t, got.IsAuthenticated())
		if authedID != nil {
			assert.NotEqual(t, authedID.ID, got.ID)
		}
	})

	t.Run("session accessor is nil without middleware", func(t *testing.T) {
		t.Parallel()

		key := middleware.NewSessionKey[profile]()
		mux := router.New()

		var got *session.Session[profile]
		mux.Get("/", func(ctx handler.Context) handler.Response {
			got = middleware.SessionFromContext(ctx, key)
			return response.NoContent()
		})

		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Nil(t, got)
	})
}

func sidFromRecorder(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	return nil
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	login := func(t *testing.T, app *sessionApp) *http.Cookie {
		t.Helper()

		app.mux.Post("/login", func(ctx handler.Context) handler.Response {
			sess := middleware.SessionFromContext(ctx, app.key)
			if err := sess.Authenticate(uuid.New()); err != nil {
				return response.Error(err)
			}
			return response.NoContent()
		})
		_, sid := app.send(t, http.MethodPost, "/login", nil)
		require.NotNil(t, sid)
		return sid
	}

	t.Run("anonymous visitors get unauthorized", func(t *testing.T) {
		t.Parallel()

		app := newSessionApp(t)
		app.mux.Group("/account", func(r router.Router) {
			r.Use(middleware.RequireAuth(app.key))
			r.Get("/", func(ctx handler.Context) handler.Response {
				return response.String("secret")
			})
		})

		rec, _ := app.send(t, http.MethodGet, "/account", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("authenticated sessions pass", func(t *testing.T) {
		t.Parallel()

		app := newSessionApp(t)
		app.mux.Group("/account", func(r router.Router) {
			r.Use(middleware.RequireAuth(app.key))
			r.Get("/", func(ctx handler.Context) handler.Response {
				return response.String("secret")
			})
		})

		sid := login(t, app)
		rec, _ := app.send(t, http.MethodGet, "/account", sid)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "secret", rec.Body.String())
	})

	t.Run("custom denial redirects to login", func(t *testing.T) {
		t.Parallel()

		app := newSessionApp(t)
		app.mux.Group("/account", func(r router.Router) {
			r.Use(middleware.RequireAuth(app.key, func(ctx handler.Context) handler.Response {
				return response.RedirectSeeOther("/login")
			}))
			r.Get("/", func(ctx handler.Context) handler.Response {
				return response.String("secret")
			})
		})

		rec, _ := app.send(t, http.MethodGet, "/account", nil)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})
}

func TestRequireGuest(t *testing.T) {
	t.Parallel()

	app := newSessionApp(t)
	app.mux.Post("/login", func(ctx handler.Context) handler.Response {
		sess := middleware.SessionFromContext(ctx, app.key)
		if err := sess.Authenticate(uuid.New()); err != nil {
			return response.Error(err)
		}
		return response.NoContent()
	})
	app.mux.Group("/signup", func(r router.Router) {
		r.Use(middleware.RequireGuest(app.key))
		r.Get("/", func(ctx handler.Context) handler.Response {
			return response.String("signup form")
		})
	})

	rec, _ := app.send(t, http.MethodGet, "/signup", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "guests may sign up")

	_, sid := app.send(t, http.MethodPost, "/login", nil)
	rec, _ = app.send(t, http.MethodGet, "/signup", sid)
	assert.Equal(t, http.StatusForbidden, rec.Code, "authenticated users may not")
}
