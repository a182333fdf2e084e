package handler

import (
	"context"
	"net/http"

	"github.com/mrCamelCode/potami/core/reqctx"
)

// Context carries a single request through the pipeline. It extends the
// request's standard context with access to the raw request/response pair,
// routing parameters, and a read view of the request-scoped values bound to
// the scope of the current pipeline stage.
//
// Writes to request-scoped values flow exclusively through the reqctx.Setter
// handed to middleware; handlers cannot write by construction.
type Context interface {
	context.Context

	// Request returns the underlying HTTP request.
	Request() *http.Request

	// ResponseWriter returns the response writer for the request.
	ResponseWriter() http.ResponseWriter

	// Param returns the value of a named path parameter captured during
	// routing, or an empty string when no such parameter exists.
	Param(key string) string

	// Values returns a read view of the request's scoped values, bound to
	// the scope path of the pipeline stage the context was handed to.
	Values() reqctx.Getter
}
