package session

import "errors"

var (
	// ErrNotFound indicates no session exists for the given id or token.
	ErrNotFound = errors.New("session not found")

	// ErrExpired indicates the session exists but is past its expiration.
	ErrExpired = errors.New("session has expired")

	// ErrNotAuthenticated signals the transport that the session was
	// deleted and client-side state (the cookie) must be cleared.
	ErrNotAuthenticated = errors.New("session not authenticated")

	// ErrMissingIP indicates a session was created without a client IP.
	ErrMissingIP = errors.New("client IP address is required")

	// ErrTokenGeneration indicates the random token source failed.
	ErrTokenGeneration = errors.New("failed to generate session token")

	// ErrSaveSession wraps store failures during save.
	ErrSaveSession = errors.New("failed to save session")

	// ErrDeleteSession wraps store failures during delete.
	ErrDeleteSession = errors.New("failed to delete session")

	// ErrStoreUnavailable wraps backend connectivity failures.
	ErrStoreUnavailable = errors.New("session store unavailable")
)
