// Package router provides an HTTP mux built around a flat middleware
// pipeline and per-request scoped values.
//
// Requests flow through up to three stages before the terminal handler:
// entry middleware registered on the mux, then the middleware of each
// group the matched route belongs to (outermost first), then the handler
// itself. Middleware are plain functions that either return nil to pass
// the request along or return a response to short-circuit the rest of
// the pipeline. There is no wrapping and no next() to call.
//
// # Routing
//
// Patterns are plain path segments. A {name} segment captures one path
// segment as a parameter and a trailing * captures the rest of the path
// under the parameter "*":
//
//	m := router.New()
//	m.Get("/users/{id}", getUser)       // /users/42
//	m.Get("/static/*", serveFile)       // /static/css/app.css
//	m.Method(http.MethodGet, "/ping", ping)
//
// Routes are evaluated in registration order, so register more specific
// patterns before overlapping parameterized ones. Matching is
// case-sensitive and ignores a trailing slash. A path that matches a
// pattern with the wrong method produces 405 with an Allow header;
// anything else produces 404. Invalid patterns, unknown methods, and
// duplicate registrations panic during setup.
//
// # Pipeline and scoped values
//
// Every request owns a private value registry. Middleware receive a
// setter bound to the scope of their stage and handlers receive a
// read-only getter, so a handler can never write values:
//
//	var currentUser = reqctx.NewKey[string]("anonymous")
//
//	m.Use(func(ctx handler.Context, set reqctx.Setter) handler.Response {
//		reqctx.Set(set, currentUser, resolveUser(ctx.Request()))
//		return nil // continue the pipeline
//	})
//
//	m.Get("/me", func(ctx handler.Context) handler.Response {
//		user := reqctx.Value(ctx.Values(), currentUser)
//		return response.String("hello, " + user)
//	})
//
// Groups give a route subtree its own middleware and its own value
// scope. Values written by a group's middleware are visible to that
// group's handlers and nested groups, but never to siblings:
//
//	m.Group("/api", func(api router.Router) {
//		api.Use(requireAPIKey)
//		api.Get("/status", status)
//		api.Group("/admin", func(admin router.Router) {
//			admin.Use(requireAdmin)
//			admin.Get("/stats", stats)
//		})
//	})
//
// The prefix may be empty to group routes by middleware alone. Values
// written at an outer scope remain readable from inner scopes, while a
// write at an inner scope shadows the outer value for that subtree only.
//
// # Short-circuiting
//
// A middleware that returns a non-nil response ends the pipeline; later
// stages and the handler never run, but the response is still rendered
// through the usual path, so hooks observe it:
//
//	func requireAPIKey(ctx handler.Context, set reqctx.Setter) handler.Response {
//		if ctx.Request().Header.Get("X-API-Key") == "" {
//			return response.Error(response.ErrUnauthorized)
//		}
//		return nil
//	}
//
// # Hooks
//
// Hooks observe the request lifecycle without participating in routing.
// Before-respond hooks run after the pipeline produced a response and
// before it is written, which is the last chance to set headers or
// cookies. After-respond hooks run once the response is on the wire and
// receive a RequestStat with the status, size, and duration. Error hooks
// observe every error routed to the error handler:
//
//	m.OnAfterRespond(func(ctx handler.Context, stat router.RequestStat) {
//		log.Info("request", "path", ctx.Request().URL.Path, "status", stat.Status)
//	})
//
// # Errors and panics
//
// Handlers report failures by returning a response whose render fails or
// by returning an error response directly. A handler that returns nil is
// itself an error. All failures, including panics recovered from any
// stage, flow through the mux error handler; panics arrive wrapped in an
// error implementing PanicError, which exposes the original value and
// stack. The default error handler writes plain text with a sensible
// status; use WithErrorHandler to install a structured one.
package router
