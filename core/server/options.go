package server

import (
	"crypto/tls"
	"log/slog"
	"time"
)

// Option configures a Server before it starts.
type Option func(*Server)

// WithLogger sets the logger for lifecycle events. A nil logger keeps the
// default discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log == nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.log = log
	}
}

// WithTLS serves HTTPS using the given TLS configuration. The config must
// carry certificates or a GetCertificate callback.
func WithTLS(config *tls.Config) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.tlsConfig = config
	}
}

// WithShutdownTimeout sets the maximum time Stop waits for in-flight
// requests.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.shutdown = timeout
	}
}

// WithReadTimeout sets the maximum duration for reading a request.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.readTimeout = timeout
	}
}

// WithWriteTimeout sets the maximum duration for writing a response.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.writeTimeout = timeout
	}
}

// WithIdleTimeout sets how long keep-alive connections stay open.
func WithIdleTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.idleTimeout = timeout
	}
}

// WithMaxHeaderBytes caps the size of request headers.
func WithMaxHeaderBytes(n int) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.maxHeaderBytes = n
	}
}
