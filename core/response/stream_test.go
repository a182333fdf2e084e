package response_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrCamelCode/potami/core/response"
)

// noFlushWriter hides the recorder's Flush method so the writer no
// longer satisfies http.Flusher.
type noFlushWriter struct {
	http.ResponseWriter
}

func TestStream(t *testing.T) {
	t.Parallel()

	t.Run("writes chunks", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/stream", nil)

		resp := response.Stream(func(w io.Writer) error {
			for i := range 3 {
				fmt.Fprintf(w, "chunk %d\n", i)
			}
			return nil
		})

		require.NoError(t, resp(w, req))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "chunk 0\nchunk 1\nchunk 2\n", w.Body.String())
		assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	})

	t.Run("propagates writer errors", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/stream", nil)

		wantErr := errors.New("source dried up")
		err := response.Stream(func(io.Writer) error { return wantErr })(w, req)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("requires a flusher", func(t *testing.T) {
		t.Parallel()

		w := noFlushWriter{httptest.NewRecorder()}
		req := httptest.NewRequest(http.MethodGet, "/stream", nil)

		err := response.Stream(func(io.Writer) error { return nil })(w, req)
		assert.ErrorIs(t, err, response.ErrStreamingUnsupported)
	})
}

func TestStreamJSON(t *testing.T) {
	t.Parallel()

	type row struct {
		N int `json:"n"`
	}

	t.Run("emits newline-delimited json", func(t *testing.T) {
		t.Parallel()

		items := make(chan any, 2)
		items <- row{N: 1}
		items <- row{N: 2}
		close(items)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/stream", nil)

		require.NoError(t, response.StreamJSON(items)(w, req))
		assert.Equal(t, "application/x-ndjson", w.Header().Get("Content-Type"))

		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		require.Len(t, lines, 2)
		assert.JSONEq(t, `{"n":1}`, lines[0])
		assert.JSONEq(t, `{"n":2}`, lines[1])
	})

	t.Run("skips unencodable items and keeps going", func(t *testing.T) {
		t.Parallel()

		items := make(chan any, 3)
		items <- row{N: 1}
		items <- make(chan int) // channels cannot marshal
		items <- row{N: 2}
		close(items)

		var reported error
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/stream", nil)

		resp := response.StreamJSON(items, response.WithStreamErrorHandler(func(_ context.Context, err error) {
			reported = err
		}))
		require.NoError(t, resp(w, req))

		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		assert.Len(t, lines, 2)
		assert.Error(t, reported)
	})

	t.Run("stops when the client disconnects", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// Unbuffered and never fed: only the context can end the stream.
		items := make(chan any)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/stream", nil).WithContext(ctx)

		require.NoError(t, response.StreamJSON(items)(w, req))
	})

	t.Run("requires a flusher", func(t *testing.T) {
		t.Parallel()

		w := noFlushWriter{httptest.NewRecorder()}
		req := httptest.NewRequest(http.MethodGet, "/stream", nil)

		err := response.StreamJSON(make(chan any))(w, req)
		assert.ErrorIs(t, err, response.ErrStreamingUnsupported)
	})
}
