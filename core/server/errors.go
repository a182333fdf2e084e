package server

import "errors"

var (
	// Lifecycle errors
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrMissingAddress       = errors.New("server address is required")
	ErrShutdownFailed       = errors.New("graceful shutdown failed")

	// TLS configuration errors
	ErrEmptyCertPath         = errors.New("certificate or key file path cannot be empty")
	ErrEmptyServerName       = errors.New("server name cannot be empty")
	ErrInvalidTLSVersion     = errors.New("invalid TLS version")
	ErrInvalidClientAuthType = errors.New("invalid client auth type")
	ErrFailedLoadCert        = errors.New("failed to load certificate")
)
