package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mrCamelCode/potami/core/handler"
)

// ErrStreamingUnsupported is returned when the underlying ResponseWriter
// cannot flush, which every streaming response requires.
var ErrStreamingUnsupported = errors.New("response: streaming unsupported by the underlying writer")

// Stream hands the response body to fn for chunked writing. Headers are
// committed before fn runs, so errors it returns can no longer change
// the status code; they surface to the error path for logging only.
func Stream(fn func(w io.Writer) error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		flusher, ok := w.(http.Flusher)
		if !ok {
			return ErrStreamingUnsupported
		}

		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)

		if err := fn(w); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}
}

type streamSettings struct {
	onError func(context.Context, error)
}

// StreamOption configures channel-driven streaming responses.
type StreamOption func(*streamSettings)

// WithStreamErrorHandler observes per-item encoding failures, which are
// otherwise skipped silently to keep the stream alive.
func WithStreamErrorHandler(fn func(context.Context, error)) StreamOption {
	return func(s *streamSettings) {
		s.onError = fn
	}
}

// StreamJSON streams each item from the channel as one line of
// newline-delimited JSON (application/x-ndjson). The response ends when
// the channel closes or the client disconnects. Items that fail to
// encode are dropped, reported through WithStreamErrorHandler.
func StreamJSON(items <-chan any, opts ...StreamOption) handler.Response {
	var settings streamSettings
	for _, opt := range opts {
		opt(&settings)
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		flusher, ok := w.(http.Flusher)
		if !ok {
			return ErrStreamingUnsupported
		}

		w.Header().Set("Content-Type", "application/x-ndjson")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(http.StatusOK)

		enc := json.NewEncoder(w)
		for {
			select {
			case <-r.Context().Done():
				return nil
			case item, ok := <-items:
				if !ok {
					return nil
				}
				if err := enc.Encode(item); err != nil {
					if settings.onError != nil {
						settings.onError(r.Context(), fmt.Errorf("encode stream item: %w", err))
					}
					continue
				}
				flusher.Flush()
			}
		}
	}
}
