package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// Binder populates v from one source of request data. Binders compose:
// apply several in sequence to fill a struct from path, query, and body.
type Binder func(r *http.Request, v any) error

// Bind applies binders in order, stopping at the first failure.
func Bind(r *http.Request, v any, binders ...Binder) error {
	for _, bind := range binders {
		if err := bind(r, v); err != nil {
			return err
		}
	}
	return nil
}

// requestMediaType extracts the normalized media type from Content-Type,
// without parameters like charset or boundary.
func requestMediaType(r *http.Request) (string, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return "", ErrMissingContentType
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}
	return mt, nil
}
