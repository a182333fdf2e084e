package server_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrCamelCode/potami/core/server"
)

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("creates server from defaults", func(t *testing.T) {
		t.Parallel()
		srv, err := server.NewFromConfig(server.DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("applies custom config values", func(t *testing.T) {
		t.Parallel()
		cfg := server.Config{
			Addr:            ":9000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    20 * time.Second,
			IdleTimeout:     30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxHeaderBytes:  2 << 20,
		}

		srv, err := server.NewFromConfig(cfg)
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("options override config values", func(t *testing.T) {
		t.Parallel()
		cfg := server.Config{
			Addr:            ":8080",
			ShutdownTimeout: 30 * time.Second,
		}

		srv, err := server.NewFromConfig(cfg, server.WithShutdownTimeout(10*time.Second))
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("fails without address", func(t *testing.T) {
		t.Parallel()
		srv, err := server.NewFromConfig(server.Config{})
		require.ErrorIs(t, err, server.ErrMissingAddress)
		assert.Nil(t, srv)
	})

	t.Run("tolerates zero timeouts", func(t *testing.T) {
		t.Parallel()
		srv, err := server.NewFromConfig(server.Config{Addr: ":8080"})
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("skips TLS when key file missing", func(t *testing.T) {
		t.Parallel()
		cfg := server.Config{
			Addr:        ":8080",
			TLSCertFile: "cert.pem",
		}

		srv, err := server.NewFromConfig(cfg)
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("fails with unreadable TLS files", func(t *testing.T) {
		t.Parallel()
		cfg := server.Config{
			Addr:        ":8080",
			TLSCertFile: "/nonexistent/cert.pem",
			TLSKeyFile:  "/nonexistent/key.pem",
		}

		srv, err := server.NewFromConfig(cfg)
		require.ErrorIs(t, err, server.ErrFailedLoadCert)
		assert.Nil(t, srv)
	})

	t.Run("loads TLS pair from files", func(t *testing.T) {
		t.Parallel()
		certFile, keyFile := generateTestCert(t)
		cfg := server.Config{
			Addr:        ":8443",
			TLSCertFile: certFile,
			TLSKeyFile:  keyFile,
		}

		srv, err := server.NewFromConfig(cfg)
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := server.DefaultConfig()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, server.DefaultReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, server.DefaultWriteTimeout, cfg.WriteTimeout)
	assert.Equal(t, server.DefaultIdleTimeout, cfg.IdleTimeout)
	assert.Equal(t, server.DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.Equal(t, server.DefaultMaxHeaderBytes, cfg.MaxHeaderBytes)
	assert.Empty(t, cfg.TLSCertFile)
	assert.Empty(t, cfg.TLSKeyFile)
}

func TestStartFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("serves until canceled", func(t *testing.T) {
		t.Parallel()

		addr := testAddr(t)
		cfg := server.DefaultConfig()
		cfg.Addr = addr

		ctx, cancel := context.WithCancel(context.Background())
		runErr := make(chan error, 1)
		go func() {
			runErr <- server.StartFromConfig(ctx, cfg, testHandler())
		}()

		resp := waitReady(t, http.DefaultClient, "http://"+addr+"/")
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		cancel()
		assert.NoError(t, <-runErr)
	})

	t.Run("propagates config errors", func(t *testing.T) {
		t.Parallel()

		err := server.StartFromConfig(context.Background(), server.Config{}, testHandler())
		assert.ErrorIs(t, err, server.ErrMissingAddress)
	})
}
