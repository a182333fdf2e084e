package server

import "time"

const (
	// DefaultReadTimeout bounds reading the full request, including the body.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout bounds writing the response.
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout bounds how long keep-alive connections stay open.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout bounds waiting for in-flight requests during Stop.
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultMaxHeaderBytes caps the size of request headers.
	DefaultMaxHeaderBytes = 1 << 20 // 1 MB
)
