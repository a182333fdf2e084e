package response

import "net/http"

// HTTPError is a structured error response that implements the error
// interface. The router's error handlers render it with its Status; any
// other error is first converted to one of the predefined values below.
type HTTPError struct {
	Status  int            `json:"-"`                 // HTTP status code (not in JSON)
	Code    string         `json:"code"`              // Machine-readable error code
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Optional context
}

// NewHTTPError creates an error with a custom message and 500 status.
func NewHTTPError(message string) HTTPError {
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_server_error",
		Message: message,
	}
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode reports the HTTP status for the error. It satisfies the
// statusCode contract used by the error handlers.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of the error with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

// WithError returns a copy of the error recording err as its cause.
func (e HTTPError) WithError(err error) HTTPError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

func httpError(status int, code string) HTTPError {
	return HTTPError{Status: status, Code: code, Message: http.StatusText(status)}
}

// Predefined HTTP errors with http.StatusText defaults.
var (
	// 4xx client errors
	ErrBadRequest            = httpError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized          = httpError(http.StatusUnauthorized, "unauthorized")
	ErrPaymentRequired       = httpError(http.StatusPaymentRequired, "payment_required")
	ErrForbidden             = httpError(http.StatusForbidden, "forbidden")
	ErrNotFound              = httpError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed      = httpError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrNotAcceptable         = httpError(http.StatusNotAcceptable, "not_acceptable")
	ErrRequestTimeout        = httpError(http.StatusRequestTimeout, "request_timeout")
	ErrConflict              = httpError(http.StatusConflict, "conflict")
	ErrGone                  = httpError(http.StatusGone, "gone")
	ErrRequestEntityTooLarge = httpError(http.StatusRequestEntityTooLarge, "request_entity_too_large")
	ErrUnsupportedMediaType  = httpError(http.StatusUnsupportedMediaType, "unsupported_media_type")
	ErrUnprocessableEntity   = httpError(http.StatusUnprocessableEntity, "unprocessable_entity")
	ErrTooManyRequests       = httpError(http.StatusTooManyRequests, "too_many_requests")

	// 5xx server errors
	ErrInternalServerError = httpError(http.StatusInternalServerError, "internal_server_error")
	ErrNotImplemented      = httpError(http.StatusNotImplemented, "not_implemented")
	ErrBadGateway          = httpError(http.StatusBadGateway, "bad_gateway")
	ErrServiceUnavailable  = httpError(http.StatusServiceUnavailable, "service_unavailable")
	ErrGatewayTimeout      = httpError(http.StatusGatewayTimeout, "gateway_timeout")
)

// httpErrorsByStatus maps status codes to their predefined HTTPError values.
var httpErrorsByStatus = map[int]HTTPError{
	http.StatusBadRequest:            ErrBadRequest,
	http.StatusUnauthorized:          ErrUnauthorized,
	http.StatusPaymentRequired:       ErrPaymentRequired,
	http.StatusForbidden:             ErrForbidden,
	http.StatusNotFound:              ErrNotFound,
	http.StatusMethodNotAllowed:      ErrMethodNotAllowed,
	http.StatusNotAcceptable:         ErrNotAcceptable,
	http.StatusRequestTimeout:        ErrRequestTimeout,
	http.StatusConflict:              ErrConflict,
	http.StatusGone:                  ErrGone,
	http.StatusRequestEntityTooLarge: ErrRequestEntityTooLarge,
	http.StatusUnsupportedMediaType:  ErrUnsupportedMediaType,
	http.StatusUnprocessableEntity:   ErrUnprocessableEntity,
	http.StatusTooManyRequests:       ErrTooManyRequests,
	http.StatusInternalServerError:   ErrInternalServerError,
	http.StatusNotImplemented:        ErrNotImplemented,
	http.StatusBadGateway:            ErrBadGateway,
	http.StatusServiceUnavailable:    ErrServiceUnavailable,
	http.StatusGatewayTimeout:        ErrGatewayTimeout,
}
