package server_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io"
	"math/big"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrCamelCode/potami/core/server"
)

// generateTestCert writes a self-signed certificate and key into a temp
// directory and returns their paths.
func generateTestCert(t *testing.T) (certFile, keyFile string) {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			CommonName: "localhost",
		},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              []string{"localhost"},
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1")},
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	require.NoError(t, err)

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})

	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})

	dir := t.TempDir()
	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(certFile, certPEM, 0o600))
	require.NoError(t, os.WriteFile(keyFile, keyPEM, 0o600))
	return certFile, keyFile
}

func TestDefaultTLSConfig(t *testing.T) {
	t.Parallel()

	cfg := server.DefaultTLSConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
	assert.NotEmpty(t, cfg.CipherSuites)
	assert.Contains(t, cfg.CipherSuites, uint16(tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256))
	assert.Contains(t, cfg.CipherSuites, uint16(tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256))
	assert.Contains(t, cfg.CurvePreferences, tls.X25519)
	assert.Contains(t, cfg.CurvePreferences, tls.CurveP256)
}

func TestModernTLSConfig(t *testing.T) {
	t.Parallel()

	cfg := server.ModernTLSConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, uint16(tls.VersionTLS13), cfg.MinVersion)
	assert.Empty(t, cfg.CipherSuites, "TLS 1.3 suites are not configurable")
	assert.Contains(t, cfg.CurvePreferences, tls.X25519)
}

func TestStrictTLSConfig(t *testing.T) {
	t.Parallel()

	cfg := server.StrictTLSConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, uint16(tls.VersionTLS13), cfg.MinVersion)
	assert.True(t, cfg.SessionTicketsDisabled)
	assert.Equal(t, tls.RenegotiateNever, cfg.Renegotiation)
}

func TestNewTLSConfig(t *testing.T) {
	t.Parallel()

	t.Run("default config", func(t *testing.T) {
		t.Parallel()
		cfg, err := server.NewTLSConfig()
		require.NoError(t, err)
		assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
	})

	t.Run("with min version", func(t *testing.T) {
		t.Parallel()
		cfg, err := server.NewTLSConfig(server.WithTLSMinVersion(tls.VersionTLS13))
		require.NoError(t, err)
		assert.Equal(t, uint16(tls.VersionTLS13), cfg.MinVersion)
	})

	t.Run("with server name", func(t *testing.T) {
		t.Parallel()
		cfg, err := server.NewTLSConfig(server.WithTLSServerName("example.com"))
		require.NoError(t, err)
		assert.Equal(t, "example.com", cfg.ServerName)
	})

	t.Run("with client auth", func(t *testing.T) {
		t.Parallel()
		cfg, err := server.NewTLSConfig(server.WithTLSClientAuth(tls.RequireAndVerifyClientCert))
		require.NoError(t, err)
		assert.Equal(t, tls.RequireAndVerifyClientCert, cfg.ClientAuth)
	})

	t.Run("with insecure skip verify", func(t *testing.T) {
		t.Parallel()
		cfg, err := server.NewTLSConfig(server.WithTLSInsecureSkipVerify())
		require.NoError(t, err)
		assert.True(t, cfg.InsecureSkipVerify)
	})

	t.Run("multiple options", func(t *testing.T) {
		t.Parallel()
		cfg, err := server.NewTLSConfig(
			server.WithTLSMinVersion(tls.VersionTLS13),
			server.WithTLSServerName("example.com"),
			server.WithTLSClientAuth(tls.RequestClientCert),
		)
		require.NoError(t, err)
		assert.Equal(t, uint16(tls.VersionTLS13), cfg.MinVersion)
		assert.Equal(t, "example.com", cfg.ServerName)
		assert.Equal(t, tls.RequestClientCert, cfg.ClientAuth)
	})

	t.Run("first failing option aborts", func(t *testing.T) {
		t.Parallel()
		cfg, err := server.NewTLSConfig(
			server.WithTLSServerName(""),
			server.WithTLSMinVersion(tls.VersionTLS13),
		)
		require.ErrorIs(t, err, server.ErrEmptyServerName)
		assert.Nil(t, cfg)
	})
}

func TestWithTLSCertificate(t *testing.T) {
	t.Parallel()

	t.Run("loads valid pair", func(t *testing.T) {
		t.Parallel()
		certFile, keyFile := generateTestCert(t)
		cfg, err := server.NewTLSConfig(server.WithTLSCertificate(certFile, keyFile))
		require.NoError(t, err)
		assert.Len(t, cfg.Certificates, 1)
	})

	t.Run("nonexistent files", func(t *testing.T) {
		t.Parallel()
		cfg, err := server.NewTLSConfig(server.WithTLSCertificate("nonexistent.pem", "nonexistent.key"))
		require.ErrorIs(t, err, server.ErrFailedLoadCert)
		assert.Nil(t, cfg)
	})

	t.Run("empty cert path", func(t *testing.T) {
		t.Parallel()
		_, err := server.NewTLSConfig(server.WithTLSCertificate("", "key.pem"))
		assert.ErrorIs(t, err, server.ErrEmptyCertPath)
	})

	t.Run("empty key path", func(t *testing.T) {
		t.Parallel()
		_, err := server.NewTLSConfig(server.WithTLSCertificate("cert.pem", ""))
		assert.ErrorIs(t, err, server.ErrEmptyCertPath)
	})
}

func TestTLSOptionValidation(t *testing.T) {
	t.Parallel()

	t.Run("invalid TLS version", func(t *testing.T) {
		t.Parallel()
		_, err := server.NewTLSConfig(server.WithTLSMinVersion(0x0300))
		assert.ErrorIs(t, err, server.ErrInvalidTLSVersion)
	})

	t.Run("valid TLS versions accepted", func(t *testing.T) {
		t.Parallel()
		versions := []uint16{tls.VersionTLS10, tls.VersionTLS11, tls.VersionTLS12, tls.VersionTLS13}
		for _, version := range versions {
			cfg, err := server.NewTLSConfig(server.WithTLSMinVersion(version))
			require.NoError(t, err)
			assert.Equal(t, version, cfg.MinVersion)
		}
	})

	t.Run("empty server name", func(t *testing.T) {
		t.Parallel()
		_, err := server.NewTLSConfig(server.WithTLSServerName(""))
		assert.ErrorIs(t, err, server.ErrEmptyServerName)
	})

	t.Run("invalid client auth type", func(t *testing.T) {
		t.Parallel()
		_, err := server.NewTLSConfig(server.WithTLSClientAuth(tls.ClientAuthType(99)))
		assert.ErrorIs(t, err, server.ErrInvalidClientAuthType)
	})

	t.Run("valid client auth types accepted", func(t *testing.T) {
		t.Parallel()
		authTypes := []tls.ClientAuthType{
			tls.NoClientCert,
			tls.RequestClientCert,
			tls.RequireAnyClientCert,
			tls.VerifyClientCertIfGiven,
			tls.RequireAndVerifyClientCert,
		}
		for _, authType := range authTypes {
			cfg, err := server.NewTLSConfig(server.WithTLSClientAuth(authType))
			require.NoError(t, err)
			assert.Equal(t, authType, cfg.ClientAuth)
		}
	})
}

func TestServeTLS(t *testing.T) {
	t.Parallel()

	certFile, keyFile := generateTestCert(t)
	tlsCfg, err := server.NewTLSConfig(server.WithTLSCertificate(certFile, keyFile))
	require.NoError(t, err)

	addr := testAddr(t)
	srv := server.New(addr, server.WithTLS(tlsCfg))

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() {
		runErr <- srv.Run(ctx, testHandler())()
	}()

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}

	resp := waitReady(t, client, "https://"+addr+"/")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))
	require.NotNil(t, resp.TLS)
	assert.GreaterOrEqual(t, resp.TLS.Version, uint16(tls.VersionTLS12))

	cancel()
	assert.NoError(t, <-runErr)
}
