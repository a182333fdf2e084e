package response

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mrCamelCode/potami/core/handler"
)

// DefaultSSEKeepAlive is how often an idle event stream emits a comment
// frame to keep intermediaries from closing the connection.
const DefaultSSEKeepAlive = 30 * time.Second

type sseSettings struct {
	eventName string
	eventID   string
	idGen     func(any) string
	retry     time.Duration
	keepAlive time.Duration
	onError   func(context.Context, error)
}

// SSEOption configures a server-sent events response.
type SSEOption func(*sseSettings)

// WithSSEEventName labels every frame with an event name clients can
// subscribe to via addEventListener.
func WithSSEEventName(name string) SSEOption {
	return func(s *sseSettings) {
		s.eventName = name
	}
}

// WithSSEEventID stamps every frame with a fixed id.
func WithSSEEventID(id string) SSEOption {
	return func(s *sseSettings) {
		s.eventID = id
	}
}

// WithSSEEventIDGenerator derives each frame's id from its payload,
// overriding WithSSEEventID.
func WithSSEEventIDGenerator(fn func(data any) string) SSEOption {
	return func(s *sseSettings) {
		s.idGen = fn
	}
}

// WithSSERetry advertises the reconnection delay clients should use
// after a dropped connection.
func WithSSERetry(d time.Duration) SSEOption {
	return func(s *sseSettings) {
		s.retry = d
	}
}

// WithSSEKeepAlive overrides the keep-alive interval. Zero or negative
// disables keep-alive frames entirely.
func WithSSEKeepAlive(interval time.Duration) SSEOption {
	return func(s *sseSettings) {
		s.keepAlive = interval
	}
}

// WithSSEErrorHandler observes frame write failures, which otherwise end
// or skip silently.
func WithSSEErrorHandler(fn func(context.Context, error)) SSEOption {
	return func(s *sseSettings) {
		s.onError = fn
	}
}

// SSE streams each value from the channel as a server-sent event. The
// stream runs until the channel closes or the client disconnects. Values
// of type string and []byte pass through verbatim; everything else is
// JSON-encoded.
func SSE(events <-chan any, opts ...SSEOption) handler.Response {
	settings := sseSettings{keepAlive: DefaultSSEKeepAlive}
	for _, opt := range opts {
		opt(&settings)
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		flusher, ok := w.(http.Flusher)
		if !ok {
			return ErrStreamingUnsupported
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		// The retry directive is part of the event stream itself, not an
		// HTTP header.
		if settings.retry > 0 {
			if _, err := fmt.Fprintf(w, "retry: %d\n\n", settings.retry.Milliseconds()); err != nil {
				settings.report(r.Context(), fmt.Errorf("write retry directive: %w", err))
				return nil
			}
		}
		if _, err := io.WriteString(w, ": connected\n\n"); err != nil {
			settings.report(r.Context(), fmt.Errorf("write open frame: %w", err))
			return nil
		}
		flusher.Flush()

		var keepAlive *time.Ticker
		var keepAliveC <-chan time.Time
		if settings.keepAlive > 0 {
			keepAlive = time.NewTicker(settings.keepAlive)
			keepAliveC = keepAlive.C
			defer keepAlive.Stop()
		}

		for {
			select {
			case <-r.Context().Done():
				return nil

			case <-keepAliveC:
				if _, err := io.WriteString(w, ": keepalive\n\n"); err != nil {
					settings.report(r.Context(), fmt.Errorf("write keepalive: %w", err))
					return nil
				}
				flusher.Flush()

			case data, ok := <-events:
				if !ok {
					return nil
				}
				if keepAlive != nil {
					keepAlive.Reset(settings.keepAlive)
				}
				if err := settings.writeFrame(w, data); err != nil {
					// A single bad payload should not kill the stream.
					settings.report(r.Context(), fmt.Errorf("write event: %w", err))
					continue
				}
				flusher.Flush()
			}
		}
	}
}

func (s sseSettings) report(ctx context.Context, err error) {
	if s.onError != nil {
		s.onError(ctx, err)
	}
}

// writeFrame emits one event: optional name and id lines, then the data
// line terminated by a blank line.
func (s sseSettings) writeFrame(w io.Writer, data any) error {
	if s.eventName != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", s.eventName); err != nil {
			return err
		}
	}

	id := s.eventID
	if s.idGen != nil {
		id = s.idGen(data)
	}
	if id != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", id); err != nil {
			return err
		}
	}

	var payload string
	switch v := data.(type) {
	case string:
		payload = v
	case []byte:
		payload = string(v)
	default:
		encoded, err := json.Marshal(data)
		if err != nil {
			return err
		}
		payload = string(encoded)
	}

	_, err := fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}
