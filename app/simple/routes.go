package simple

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrCamelCode/potami/core/binder"
	"github.com/mrCamelCode/potami/core/handler"
	"github.com/mrCamelCode/potami/core/health"
	"github.com/mrCamelCode/potami/core/response"
	"github.com/mrCamelCode/potami/core/router"
	"github.com/mrCamelCode/potami/core/session"
	"github.com/mrCamelCode/potami/integration/database/pg"
	"github.com/mrCamelCode/potami/integration/database/redis"
	"github.com/mrCamelCode/potami/middleware"
)

// buildRouter assembles the middleware chain and registers all routes.
func (app *App) buildRouter() *router.Mux {
	mux := router.New(
		router.WithLogger(app.log),
		router.WithErrorHandler(response.JSONErrorHandler),
		router.WithMiddleware(
			middleware.RequestID(),
			middleware.ClientIP(),
			middleware.Logging(app.log),
			middleware.SecurityHeaders(),
			middleware.CORS(),
			middleware.BodyLimit(),
			middleware.RateLimit(app.limiter),
			middleware.Language(app.cfg.Languages...),
			middleware.Session(app.transport, app.sessionKey),
		),
	)

	mux.OnBeforeRespond(middleware.SessionPersist(app.transport, app.sessionKey, app.log))
	mux.OnAfterRespond(middleware.ResponseLogger(app.log))

	app.registerRoutes(mux)
	return mux
}

func (app *App) registerRoutes(mux *router.Mux) {
	mux.Get("/", app.handleHome)

	mux.Get("/health/live", health.Liveness)
	mux.Get("/health/ready", health.Readiness(app.log, app.healthchecks()...))

	mux.Group("/auth", func(r router.Router) {
		r.Use(middleware.RequireGuest(app.sessionKey))
		r.Post("/login", app.handleLogin)
	})

	mux.Group("/me", func(r router.Router) {
		r.Use(middleware.RequireAuth(app.sessionKey))
		r.Get("/", app.handleProfile)
		r.Put("/", app.handleUpdateProfile)
		r.Post("/logout", app.handleLogout)
	})
}

// healthchecks returns readiness probes for the connections the app
// opened. A memory-store app has none and is always ready.
func (app *App) healthchecks() []func(context.Context) error {
	var checks []func(context.Context) error
	if app.db != nil {
		checks = append(checks, pg.Healthcheck(app.db))
	}
	if app.redis != nil {
		checks = append(checks, redis.Healthcheck(app.redis))
	}
	return checks
}

func (app *App) handleHome(ctx handler.Context) handler.Response {
	return response.JSON(map[string]string{
		"app":      app.cfg.AppName,
		"language": middleware.LanguageFromContext(ctx),
	})
}

type loginRequest struct {
	Name string `json:"name"`
}

type profileResponse struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Language  string    `json:"language"`
	RequestID string    `json:"request_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (app *App) handleLogin(ctx handler.Context) handler.Response {
	var req loginRequest
	if err := binder.JSON()(ctx.Request(), &req); err != nil {
		return response.Error(response.ErrBadRequest.WithError(err))
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return response.Error(response.ErrBadRequest.WithMessage("name is required"))
	}

	sess := middleware.SessionFromContext(ctx, app.sessionKey)
	if err := sess.Authenticate(uuid.New(), SessionData{Name: req.Name}); err != nil {
		return response.Error(err)
	}

	return response.JSONWithStatus(app.profile(ctx, sess), http.StatusCreated)
}

func (app *App) handleProfile(ctx handler.Context) handler.Response {
	sess := middleware.SessionFromContext(ctx, app.sessionKey)
	return response.JSON(app.profile(ctx, sess))
}

func (app *App) handleUpdateProfile(ctx handler.Context) handler.Response {
	var req loginRequest
	if err := binder.JSON()(ctx.Request(), &req); err != nil {
		return response.Error(response.ErrBadRequest.WithError(err))
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return response.Error(response.ErrBadRequest.WithMessage("name is required"))
	}

	sess := middleware.SessionFromContext(ctx, app.sessionKey)
	sess.SetData(SessionData{Name: req.Name})

	return response.JSON(app.profile(ctx, sess))
}

func (app *App) handleLogout(ctx handler.Context) handler.Response {
	sess := middleware.SessionFromContext(ctx, app.sessionKey)
	sess.Logout()
	return response.NoContent()
}

func (app *App) profile(ctx handler.Context, sess *session.Session[SessionData]) profileResponse {
	return profileResponse{
		UserID:    sess.UserID.String(),
		Name:      sess.Data.Name,
		Language:  middleware.LanguageFromContext(ctx),
		RequestID: middleware.RequestIDFromContext(ctx),
		ExpiresAt: sess.ExpiresAt,
	}
}
