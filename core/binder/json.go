package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxJSONSize caps JSON request bodies at 1MB.
const DefaultMaxJSONSize int64 = 1 << 20

// JSONOption adjusts JSON binder behavior.
type JSONOption func(*jsonSettings)

type jsonSettings struct {
	maxSize      int64
	allowUnknown bool
}

// WithMaxBodySize overrides the body size cap.
func WithMaxBodySize(n int64) JSONOption {
	return func(s *jsonSettings) {
		s.maxSize = n
	}
}

// WithAllowUnknownFields accepts JSON fields absent from the target
// struct. The default rejects them to surface client typos early.
func WithAllowUnknownFields() JSONOption {
	return func(s *jsonSettings) {
		s.allowUnknown = true
	}
}

// JSON binds an application/json body into v. The body must be a single
// JSON value within the size cap; unknown fields are rejected unless
// WithAllowUnknownFields is set.
//
//	var req CreateUserRequest
//	if err := binder.JSON()(ctx.Request(), &req); err != nil {
//		return response.Error(response.ErrBadRequest.WithError(err))
//	}
func JSON(opts ...JSONOption) Binder {
	settings := jsonSettings{maxSize: DefaultMaxJSONSize}
	for _, opt := range opts {
		opt(&settings)
	}

	return func(r *http.Request, v any) error {
		mt, err := requestMediaType(r)
		if err != nil {
			return err
		}
		if mt != "application/json" {
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mt)
		}

		// Read one byte past the cap so an oversized body is
		// distinguishable from one that exactly fits.
		body, err := io.ReadAll(io.LimitReader(r.Body, settings.maxSize+1))
		if err != nil {
			return fmt.Errorf("%w: reading body: %v", ErrFailedToParseJSON, err)
		}
		if int64(len(body)) > settings.maxSize {
			return fmt.Errorf("%w: body exceeds %d bytes", ErrBodyTooLarge, settings.maxSize)
		}

		dec := json.NewDecoder(bytes.NewReader(body))
		if !settings.allowUnknown {
			dec.DisallowUnknownFields()
		}

		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
			}
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}

		// A second value after the first is a smuggling attempt or a
		// confused client; either way, reject.
		if dec.More() {
			return fmt.Errorf("%w: trailing data after JSON value", ErrFailedToParseJSON)
		}
		return nil
	}
}
