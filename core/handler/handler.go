package handler

import (
	"net/http"

	"github.com/mrCamelCode/potami/core/reqctx"
)

// Response is a function that renders HTTP responses.
// It sets headers, status code, and writes the response body.
// Rendering errors are handled by the framework's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is a terminal request handler. It receives the request context
// with read-only access to request-scoped values and returns the response to
// render. A nil Response is treated as an error by the router.
type HandlerFunc func(ctx Context) Response

// Middleware is a single pipeline stage running before the terminal handler.
// The setter writes request-scoped values at the scope of the stage the
// middleware is registered on: the root scope for entry middleware, the
// group's scope for group middleware. Returning nil passes control to the
// next stage; returning a Response short-circuits the pipeline and renders
// it immediately.
type Middleware func(ctx Context, set reqctx.Setter) Response

// ErrorHandler handles errors during request processing: failed responses,
// nil handler responses, recovered panics, and unmatched routes.
type ErrorHandler func(ctx Context, err error)
