// Package handler defines the contracts shared by the router, middleware,
// and application handlers: the request Context, the Response closure, the
// flat Middleware stage, and the ErrorHandler.
//
// # Core Types
//
// Handlers return a Response closure instead of writing directly, which keeps
// business logic separate from rendering and lets the router run lifecycle
// hooks between the two:
//
//	// Response renders the HTTP response
//	type Response func(w http.ResponseWriter, r *http.Request) error
//
//	// Terminal handler: read-only access to request-scoped values
//	type HandlerFunc func(ctx Context) Response
//
//	// Pipeline stage: may read and write request-scoped values
//	type Middleware func(ctx Context, set reqctx.Setter) Response
//
//	// Renders pipeline errors
//	type ErrorHandler func(ctx Context, err error)
//
// # Context Interface
//
// The Context interface extends Go's standard context.Context with
// HTTP-specific methods:
//
//	type Context interface {
//		context.Context                      // Standard context methods
//		Request() *http.Request              // Access to HTTP request
//		ResponseWriter() http.ResponseWriter // Access to response writer
//		Param(key string) string             // Get path parameters
//		Values() reqctx.Getter               // Read request-scoped values
//	}
//
// Values returns a view bound to the scope of the pipeline stage: entry
// middleware and their contexts resolve at the root scope, group middleware
// and terminal handlers resolve at the matched group's scope with fallback
// toward the root.
//
// # Basic Handler Implementation
//
//	func helloHandler(ctx handler.Context) handler.Response {
//		name := ctx.Param("name")
//		if name == "" {
//			name = "World"
//		}
//
//		return func(w http.ResponseWriter, r *http.Request) error {
//			w.Header().Set("Content-Type", "text/plain")
//			w.WriteHeader(http.StatusOK)
//			_, err := w.Write([]byte("Hello, " + name + "!"))
//			return err
//		}
//	}
//
// # Middleware Implementation
//
// Middleware run in registration order. A stage that returns nil passes
// control onward; a stage that returns a Response ends the pipeline and the
// response is rendered immediately:
//
//	var currentUser = reqctx.NewKey[*User](nil)
//
//	func authMiddleware(ctx handler.Context, set reqctx.Setter) handler.Response {
//		token := ctx.Request().Header.Get("Authorization")
//		user, err := validateToken(token)
//		if err != nil {
//			return response.Error(response.ErrUnauthorized)
//		}
//
//		reqctx.Set(set, currentUser, user)
//		return nil
//	}
//
// The setter writes at the scope the middleware is registered on, so a group
// can override a globally registered value for its own handlers without
// leaking the override to sibling groups.
//
// # Reading Values In Handlers
//
// Handlers read through ctx.Values(); there is no setter in reach, so a
// late write that nothing could observe is impossible rather than merely
// discouraged:
//
//	func profileHandler(ctx handler.Context) handler.Response {
//		user := reqctx.Value(ctx.Values(), currentUser)
//		if user == nil {
//			return response.Error(response.ErrUnauthorized)
//		}
//		return response.JSON(user)
//	}
//
// # Error Handling
//
// Errors returned by Response closures, nil handler responses, and recovered
// panics are routed to the router's ErrorHandler. Applications customize
// rendering by supplying their own:
//
//	func errorHandler(ctx handler.Context, err error) {
//		slog.Error("request failed", slog.Any("error", err))
//		response.JSONErrorHandler(ctx, err)
//	}
package handler
