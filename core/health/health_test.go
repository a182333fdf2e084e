package health_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrCamelCode/potami/core/health"
	"github.com/mrCamelCode/potami/core/router"
)

func TestLiveness(t *testing.T) {
	t.Parallel()

	mux := router.New()
	mux.Get("/health/live", health.Liveness)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
}

func TestPing(t *testing.T) {
	t.Parallel()

	mux := router.New()
	mux.Get("/ping", health.Ping)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	discard := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("ready when all checks pass", func(t *testing.T) {
		t.Parallel()

		var called int
		check := func(context.Context) error {
			called++
			return nil
		}

		mux := router.New()
		mux.Get("/ready", health.Readiness(discard, check, check))

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "READY", rec.Body.String())
		assert.Equal(t, 2, called)
	})

	t.Run("first failing check answers 503", func(t *testing.T) {
		t.Parallel()

		var reached bool
		mux := router.New()
		mux.Get("/ready", health.Readiness(discard,
			func(context.Context) error { return errors.New("connection refused") },
			func(context.Context) error { reached = true; return nil },
		))

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.False(t, reached, "later checks should not run after a failure")
	})

	t.Run("failure is logged", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		log := slog.New(slog.NewTextHandler(&buf, nil))

		mux := router.New()
		mux.Get("/ready", health.Readiness(log,
			func(context.Context) error { return errors.New("pool exhausted") },
		))

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, buf.String(), "readiness check failed")
		assert.Contains(t, buf.String(), "pool exhausted")
	})

	t.Run("no checks behaves as liveness", func(t *testing.T) {
		t.Parallel()

		mux := router.New()
		mux.Get("/ready", health.Readiness(nil))

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "READY", rec.Body.String())
	})
}
