package clientip

import (
	"net"
	"net/http"
	"strings"
)

// proxyHeaders in priority order. CDN-set headers outrank generic proxy
// headers because intermediaries can append to the latter.
var proxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP extracts the client IP address from a request, consulting proxy
// headers in priority order before falling back to RemoteAddr. The
// result is a normalized IP string, or empty when no valid address can
// be determined.
func GetIP(r *http.Request) string {
	for _, header := range proxyHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		// X-Forwarded-For lists "client, proxy1, proxy2"; the leftmost
		// entry is the original client.
		if idx := strings.IndexByte(value, ','); idx >= 0 {
			value = value[:idx]
		}
		if ip := normalize(value); ip != "" {
			return ip
		}
	}

	return FromRemoteAddr(r)
}

// FromRemoteAddr extracts the IP from the socket address alone, ignoring
// proxy headers. Use it when the service is directly exposed and header
// values cannot be trusted.
func FromRemoteAddr(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return normalize(host)
	}
	return normalize(r.RemoteAddr)
}

// normalize validates and canonicalizes an IP string. Unspecified
// addresses (0.0.0.0, ::) are rejected since they never identify a
// client.
func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
