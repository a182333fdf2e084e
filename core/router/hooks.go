package router

import (
	"time"

	"github.com/mrCamelCode/potami/core/handler"
)

// RequestStat summarizes a completed request for after-respond hooks.
type RequestStat struct {
	// Status is the HTTP status code sent to the client. It is zero when
	// the connection was hijacked before a status line was written.
	Status int
	// BytesWritten counts response body bytes.
	BytesWritten int64
	// Duration covers the full pipeline, from the first entry middleware
	// to the last byte of the response.
	Duration time.Duration
}

// BeforeRespondHook runs after the pipeline has produced a response and
// before that response is written. Hooks that must set headers or
// cookies, such as session persistence, belong here.
type BeforeRespondHook func(ctx handler.Context)

// AfterRespondHook runs once the response has been written. The response
// can no longer be changed at this point; use these hooks for request
// logging and metrics.
type AfterRespondHook func(ctx handler.Context, stat RequestStat)

// ErrorHook observes every error routed to the error handler, including
// recovered panics. Hooks run before the error handler renders its
// response and must not write to the client themselves.
type ErrorHook func(ctx handler.Context, err error)
