package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrCamelCode/potami/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "192.0.2.10:4321",
			want:       "192.0.2.10",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.0.2.10",
			want:       "192.0.2.10",
		},
		{
			name:       "cloudflare header wins",
			headers:    map[string]string{"CF-Connecting-IP": "198.51.100.1", "X-Forwarded-For": "203.0.113.5"},
			remoteAddr: "192.0.2.10:4321",
			want:       "198.51.100.1",
		},
		{
			name:       "digitalocean header",
			headers:    map[string]string{"DO-Connecting-IP": "198.51.100.2"},
			remoteAddr: "192.0.2.10:4321",
			want:       "198.51.100.2",
		},
		{
			name:       "forwarded for single",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5"},
			remoteAddr: "192.0.2.10:4321",
			want:       "203.0.113.5",
		},
		{
			name:       "forwarded for chain keeps leftmost",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1, 10.0.0.2"},
			remoteAddr: "192.0.2.10:4321",
			want:       "203.0.113.5",
		},
		{
			name:       "real ip",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			remoteAddr: "192.0.2.10:4321",
			want:       "203.0.113.9",
		},
		{
			name:       "invalid header falls back to remote addr",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip"},
			remoteAddr: "192.0.2.10:4321",
			want:       "192.0.2.10",
		},
		{
			name:       "unspecified address rejected",
			headers:    map[string]string{"X-Real-IP": "0.0.0.0"},
			remoteAddr: "192.0.2.10:4321",
			want:       "192.0.2.10",
		},
		{
			name:       "ipv6 header",
			headers:    map[string]string{"X-Forwarded-For": "2001:db8::1"},
			remoteAddr: "192.0.2.10:4321",
			want:       "2001:db8::1",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[2001:db8::2]:8080",
			want:       "2001:db8::2",
		},
		{
			name:       "ipv4 mapped ipv6 normalized",
			headers:    map[string]string{"X-Real-IP": "::ffff:192.0.2.7"},
			remoteAddr: "192.0.2.10:4321",
			want:       "192.0.2.7",
		},
		{
			name:       "whitespace trimmed",
			headers:    map[string]string{"X-Forwarded-For": "  203.0.113.5  , 10.0.0.1"},
			remoteAddr: "192.0.2.10:4321",
			want:       "203.0.113.5",
		},
		{
			name:       "nothing valid",
			remoteAddr: "garbage",
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, clientip.GetIP(r))
		})
	}
}

func TestFromRemoteAddr(t *testing.T) {
	t.Parallel()

	t.Run("ignores proxy headers", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "192.0.2.10:4321"
		r.Header.Set("X-Forwarded-For", "203.0.113.5")
		r.Header.Set("CF-Connecting-IP", "198.51.100.1")

		assert.Equal(t, "192.0.2.10", clientip.FromRemoteAddr(r))
	})

	t.Run("handles bare host", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "2001:db8::2"

		assert.Equal(t, "2001:db8::2", clientip.FromRemoteAddr(r))
	})
}
