package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrCamelCode/potami/core/handler"
	"github.com/mrCamelCode/potami/core/response"
	"github.com/mrCamelCode/potami/core/router"
	"github.com/mrCamelCode/potami/middleware"
)

func corsMux(cfg middleware.CORSConfig) *router.Mux {
	mux := router.New()
	mux.Use(middleware.CORSWithConfig(cfg))
	mux.Get("/data", func(ctx handler.Context) handler.Response {
		return response.String("ok")
	})
	return mux
}

func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("no origin header means no cors headers", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		corsMux(middleware.CORSConfig{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows any origin", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/data", nil)
		r.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		corsMux(middleware.CORSConfig{}).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Values("Vary"), "Origin")
	})

	t.Run("credentials with wildcard reflects the origin", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/data", nil)
		r.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		corsMux(middleware.CORSConfig{AllowCredentials: true}).ServeHTTP(rec, r)

		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("named origins admit exact matches only", func(t *testing.T) {
		t.Parallel()

		cfg := middleware.CORSConfig{AllowOrigins: []string{"https://app.example.com"}}

		r := httptest.NewRequest(http.MethodGet, "/data", nil)
		r.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		corsMux(cfg).ServeHTTP(rec, r)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

		r = httptest.NewRequest(http.MethodGet, "/data", nil)
		r.Header.Set("Origin", "https://evil.example.net")
		rec = httptest.NewRecorder()
		corsMux(cfg).ServeHTTP(rec, r)

		// The handler still runs; the browser enforces the missing header.
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("expose headers advertised on actual responses", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/data", nil)
		r.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		corsMux(middleware.CORSConfig{
			ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Remaining"},
		}).ServeHTTP(rec, r)

		assert.Equal(t, "X-Request-ID, X-RateLimit-Remaining", rec.Header().Get("Access-Control-Expose-Headers"))
	})
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	preflight := func(origin, method string) *http.Request {
		r := httptest.NewRequest(http.MethodOptions, "/data", nil)
		r.Header.Set("Origin", origin)
		r.Header.Set("Access-Control-Request-Method", method)
		return r
	}

	t.Run("allowed preflight answers no content", func(t *testing.T) {
		t.Parallel()

		handlerRan := false
		mux := router.New()
		mux.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{"https://app.example.com"},
			MaxAge:       600,
		}))
		mux.Options("/data", func(ctx handler.Context) handler.Response {
			handlerRan = true
			return response.NoContent()
		})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, preflight("https://app.example.com", http.MethodPost))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.False(t, handlerRan, "preflight should short-circuit")
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
		assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
		assert.ElementsMatch(t,
			[]string{"Origin", "Access-Control-Request-Method", "Access-Control-Request-Headers"},
			rec.Header().Values("Vary"),
		)
	})

	t.Run("requested headers echoed when asked", func(t *testing.T) {
		t.Parallel()

		r := preflight("https://app.example.com", http.MethodPost)
		r.Header.Set("Access-Control-Request-Headers", "content-type, authorization")
		rec := httptest.NewRecorder()
		corsMux(middleware.CORSConfig{}).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("disallowed origin rejected", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		corsMux(middleware.CORSConfig{
			AllowOrigins: []string{"https://app.example.com"},
		}).ServeHTTP(rec, preflight("https://evil.example.net", http.MethodPost))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disallowed method rejected", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		corsMux(middleware.CORSConfig{
			AllowMethods: []string{http.MethodGet},
		}).ServeHTTP(rec, preflight("https://app.example.com", http.MethodDelete))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("options without request method is not a preflight", func(t *testing.T) {
		t.Parallel()

		mux := router.New()
		mux.Use(middleware.CORS())
		mux.Options("/data", func(ctx handler.Context) handler.Response {
			return response.String("real options handler")
		})

		r := httptest.NewRequest(http.MethodOptions, "/data", nil)
		r.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "real options handler", rec.Body.String())
	})
}

func TestAllowOriginWildcard(t *testing.T) {
	t.Parallel()

	allow := middleware.AllowOriginWildcard("https://*.example.com", "http://localhost:3000")

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://app.example.com", true},
		{"https://deep.sub.example.com", true},
		{"https://example.com", false},
		{"https://.example.com", false},
		{"https://evil.com/?u=.example.com", false},
		{"http://localhost:3000", true},
		{"http://localhost:4000", false},
	}
	for _, tt := range tests {
		origin, ok := allow(tt.origin)
		assert.Equal(t, tt.allowed, ok, "origin %q", tt.origin)
		if tt.allowed {
			assert.Equal(t, tt.origin, origin)
		}
	}
}

func TestAllowOriginSubdomain(t *testing.T) {
	t.Parallel()

	allow := middleware.AllowOriginSubdomain("example.com")

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://example.com", true},
		{"https://app.example.com", true},
		{"https://app.example.com:8443", true},
		{"http://example.com", true},
		{"https://EXAMPLE.com", true},
		{"https://evilexample.com", false},
		{"https://example.com.evil.net", false},
		{"https://other.org", false},
		{"ftp://example.com", false},
		{"not-an-origin", false},
	}
	for _, tt := range tests {
		origin, ok := allow(tt.origin)
		assert.Equal(t, tt.allowed, ok, "origin %q", tt.origin)
		if tt.allowed {
			assert.Equal(t, tt.origin, origin)
		}
	}
}
