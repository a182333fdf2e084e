package response

import (
	"errors"
	"net/http"

	"github.com/mrCamelCode/potami/core/handler"
)

// statusCode is implemented by errors that carry their own HTTP status.
type statusCode interface {
	StatusCode() int
}

// convertToHTTPError maps any error to an HTTPError: an HTTPError passes
// through unchanged, an error implementing statusCode picks the predefined
// error for its status, everything else becomes a 500 with the original
// error recorded as the cause.
func convertToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	if sc, ok := err.(statusCode); ok {
		status = sc.StatusCode()
	}

	baseErr, ok := httpErrorsByStatus[status]
	if !ok {
		baseErr = ErrInternalServerError
	}
	return baseErr.WithError(err)
}

// ErrorHandler renders errors as plain text. It is the router's default.
func ErrorHandler(ctx handler.Context, err error) {
	httpErr := convertToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler renders errors as structured JSON bodies.
func JSONErrorHandler(ctx handler.Context, err error) {
	httpErr := convertToHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}
