package config

import "errors"

var (
	// ErrNilConfig is returned when Load receives a nil pointer.
	ErrNilConfig = errors.New("nil config pointer")
	// ErrParseFailed wraps env parsing failures, including missing
	// required variables.
	ErrParseFailed = errors.New("failed to parse config from environment")
)
