package router

import (
	"net/http"
	"time"

	"github.com/mrCamelCode/potami/core/reqctx"
)

// Context is the request context implementation created by the mux for
// each incoming request. It satisfies handler.Context and carries the
// matched path parameters plus a read view over the request's value
// registry. The view is rebound by the mux as the request moves through
// pipeline stages, so middleware and handlers always observe values
// resolved against their own scope.
type Context struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
	values reqctx.Getter
}

// NewContext builds a Context directly. The mux constructs contexts
// itself; this constructor exists for tests and for adapters that drive
// handlers outside the mux.
func NewContext(w http.ResponseWriter, r *http.Request, params map[string]string, values reqctx.Getter) *Context {
	return &Context{
		w:      w,
		r:      r,
		params: params,
		values: values,
	}
}

// Request returns the underlying HTTP request.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the response writer for this request.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the value of a path parameter captured during route
// matching, or an empty string when the parameter is not present.
func (c *Context) Param(key string) string {
	if c.params == nil {
		return ""
	}
	return c.params[key]
}

// Values returns the read view over the request's context values, bound
// to the scope of the pipeline stage currently executing.
func (c *Context) Values() reqctx.Getter {
	return c.values
}

// Deadline implements context.Context by delegating to the request context.
func (c *Context) Deadline() (time.Time, bool) {
	return c.r.Context().Deadline()
}

// Done implements context.Context by delegating to the request context.
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err implements context.Context by delegating to the request context.
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value implements context.Context by delegating to the request context.
func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}
