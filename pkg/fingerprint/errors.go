package fingerprint

import "errors"

var (
	// ErrInvalidFingerprint indicates a stored value that does not match
	// the versioned fingerprint format.
	ErrInvalidFingerprint = errors.New("invalid fingerprint format")

	// ErrMismatch indicates the request does not match the stored
	// fingerprint. Either the client legitimately changed or its session
	// token is being replayed from somewhere else.
	ErrMismatch = errors.New("fingerprint mismatch")
)
