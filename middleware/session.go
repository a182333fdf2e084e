package middleware

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mrCamelCode/potami/core/handler"
	"github.com/mrCamelCode/potami/core/logger"
	"github.com/mrCamelCode/potami/core/reqctx"
	"github.com/mrCamelCode/potami/core/response"
	"github.com/mrCamelCode/potami/core/router"
	"github.com/mrCamelCode/potami/core/session"
	"github.com/mrCamelCode/potami/core/sessiontransport"
)

// NewSessionKey creates the context key a Session middleware and its
// SessionPersist hook share. Declare it once at wiring level:
//
//	var sessionKey = middleware.NewSessionKey[UserData]()
func NewSessionKey[Data any]() *reqctx.Key[*session.Session[Data]] {
	return reqctx.NewKey[*session.Session[Data]](nil)
}

// SessionConfig configures the session middleware.
type SessionConfig[Data any] struct {
	// Skip bypasses session loading for matching requests.
	Skip func(ctx handler.Context) bool

	// Transport loads and saves sessions. Required.
	Transport *sessiontransport.Cookie[Data]

	// Key is the context key the session is stored under. Required.
	Key *reqctx.Key[*session.Session[Data]]

	// Logger records load failures. Defaults to a discarded logger.
	Logger *slog.Logger
}

// Session loads the request's session through the transport and stores a
// pointer to it under key. Handlers mutate the session through that
// pointer; a SessionPersist hook with the same key writes it back before
// the response goes out.
//
//	mux.Use(middleware.Session(transport, sessionKey))
//	mux.OnBeforeRespond(middleware.SessionPersist(transport, sessionKey, log))
//
// Every visitor gets a session: the transport falls back to a fresh
// anonymous one when the request carries no valid token.
func Session[Data any](transport *sessiontransport.Cookie[Data], key *reqctx.Key[*session.Session[Data]]) handler.Middleware {
	return SessionWithConfig(SessionConfig[Data]{Transport: transport, Key: key})
}

// SessionWithConfig is Session with custom settings. It panics without a
// transport or key, since sessions cannot work at all without them.
func SessionWithConfig[Data any](cfg SessionConfig[Data]) handler.Middleware {
	if cfg.Transport == nil {
		panic("middleware: session requires a transport")
	}
	if cfg.Key == nil {
		panic("middleware: session requires a context key")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(ctx handler.Context, set reqctx.Setter) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return nil
		}

		sess, err := cfg.Transport.Load(ctx)
		if err != nil {
			// Load degrades to an anonymous session on its own; an error
			// means even that could not be created.
			cfg.Logger.ErrorContext(ctx, "session load failed", logger.Error(err))
			return response.Error(err)
		}

		reqctx.Set(set, cfg.Key, &sess)
		return nil
	}
}

// SessionFromContext returns the request's session, or nil when no
// session middleware ran for this route.
func SessionFromContext[Data any](ctx handler.Context, key *reqctx.Key[*session.Session[Data]]) *session.Session[Data] {
	return reqctx.Value(ctx.Values(), key)
}

// SessionPersist returns a before-respond hook that writes the loaded
// session back through the transport. The transport skips unmodified
// sessions, expires the cookie for logged-out ones, and extends it for
// touched ones. Requests that never loaded a session are ignored.
//
// Save failures are logged, not surfaced: the response is already
// committed from the handler's point of view, and the client retries
// with its old token next request.
func SessionPersist[Data any](transport *sessiontransport.Cookie[Data], key *reqctx.Key[*session.Session[Data]], log *slog.Logger) router.BeforeRespondHook {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(ctx handler.Context) {
		sess := reqctx.Value(ctx.Values(), key)
		if sess == nil || sess.ID == uuid.Nil {
			return
		}
		if err := transport.Save(ctx, *sess); err != nil {
			log.ErrorContext(ctx, "session save failed",
				logger.Error(err),
				logger.ID("session_id", sess.ID),
			)
		}
	}
}

// RequireAuth rejects requests whose session is missing or anonymous.
// Register it after the Session middleware that fills key. The default
// rejection is 401; pass onDenied to render something else, a login
// redirect typically.
func RequireAuth[Data any](key *reqctx.Key[*session.Session[Data]], onDenied ...handler.HandlerFunc) handler.Middleware {
	return func(ctx handler.Context, set reqctx.Setter) handler.Response {
		sess := reqctx.Value(ctx.Values(), key)
		if sess != nil && sess.IsAuthenticated() {
			return nil
		}
		if len(onDenied) > 0 {
			return onDenied[0](ctx)
		}
		return response.Error(response.ErrUnauthorized)
	}
}

// RequireGuest rejects requests from authenticated sessions, keeping
// login and signup pages away from logged-in users. The default
// rejection is 403; pass onDenied to render something else, a redirect
// to the dashboard typically.
func RequireGuest[Data any](key *reqctx.Key[*session.Session[Data]], onDenied ...handler.HandlerFunc) handler.Middleware {
	return func(ctx handler.Context, set reqctx.Setter) handler.Response {
		sess := reqctx.Value(ctx.Values(), key)
		if sess == nil || !sess.IsAuthenticated() {
			return nil
		}
		if len(onDenied) > 0 {
			return onDenied[0](ctx)
		}
		return response.Error(response.ErrForbidden)
	}
}
