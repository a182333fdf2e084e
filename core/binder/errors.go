package binder

import "errors"

var (
	// ErrMissingContentType indicates a body binder ran against a
	// request without a Content-Type header.
	ErrMissingContentType = errors.New("missing content type")

	// ErrUnsupportedMediaType indicates the Content-Type does not match
	// what the binder parses.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrBodyTooLarge indicates the request body exceeds the binder's
	// size cap.
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrFailedToParseJSON indicates malformed JSON or a schema mismatch.
	ErrFailedToParseJSON = errors.New("failed to parse JSON request body")

	// ErrFailedToParseForm indicates malformed form data.
	ErrFailedToParseForm = errors.New("failed to parse form data")

	// ErrFailedToParseQuery indicates a query parameter failed conversion.
	ErrFailedToParseQuery = errors.New("failed to parse query parameters")

	// ErrFailedToParsePath indicates a route parameter failed conversion.
	ErrFailedToParsePath = errors.New("failed to parse path parameters")
)
