package router

import (
	"log/slog"

	"github.com/mrCamelCode/potami/core/handler"
)

// Option configures a Mux during creation.
type Option func(*Mux)

// WithErrorHandler sets a custom error handler for the mux.
func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(m *Mux) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithMiddleware adds entry middleware to the mux.
func WithMiddleware(middlewares ...handler.Middleware) Option {
	return func(m *Mux) {
		m.entry = append(m.entry, middlewares...)
	}
}

// WithLogger sets a custom logger for the mux. The logger only reports
// conditions the mux cannot route to the error handler, such as panics
// raised after the response has been written.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mux) {
		if logger != nil {
			m.logger = logger
		}
	}
}
