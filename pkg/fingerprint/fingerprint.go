package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"slices"
	"strings"

	"github.com/mrCamelCode/potami/pkg/clientip"
)

const (
	version = "v1:"
	// hashLen truncates SHA-256 to 128 bits, plenty for telling clients
	// apart while halving what session stores persist.
	hashLen = 16
	// encodedLen is len(version) plus the hex encoding of hashLen bytes.
	encodedLen = 35
)

// stableHeaders identify the client type by presence alone; values are
// ignored. Chrome sends Sec-Fetch-*, Firefox ships different Accept
// defaults, API clients send almost nothing. Volatile headers such as
// Cookie or Authorization stay out of the list.
var stableHeaders = []string{
	"User-Agent",
	"Accept",
	"Accept-Language",
	"Accept-Encoding",
	"Connection",
	"Upgrade-Insecure-Requests",
	"Sec-Fetch-Dest",
	"Sec-Fetch-Mode",
	"Sec-Fetch-Site",
	"Cache-Control",
}

// Generate derives a device fingerprint from request characteristics.
// The result is versioned, "v1:" plus 32 hex characters, so the scheme
// can evolve without invalidating stored values in bulk.
//
// The client IP is excluded by default because mobile networks and VPNs
// rotate addresses too often for it to be a stable signal. Options
// adjust the mix:
//
//	fp := fingerprint.Generate(r)                // defaults
//	fp := fingerprint.Generate(r, WithIP())      // bind to the address too
func Generate(r *http.Request, opts ...Option) string {
	settings := applyOptions(opts)

	var parts []string
	if settings.useUserAgent {
		parts = append(parts, r.UserAgent())
	}
	if settings.useAcceptHeaders {
		parts = append(parts,
			r.Header.Get("Accept"),
			r.Header.Get("Accept-Language"),
			r.Header.Get("Accept-Encoding"),
		)
	}
	if settings.useIP {
		parts = append(parts, clientip.GetIP(r))
	}
	if settings.useHeaderSet {
		parts = append(parts, headerSet(r))
	}

	// Missing headers contribute nothing rather than shifting the
	// remaining components around.
	parts = slices.DeleteFunc(parts, func(s string) bool { return s == "" })

	// The delimiter keeps adjacent components from sliding into each
	// other: ["ab","c"] and ["a","bc"] must not collide.
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return version + hex.EncodeToString(sum[:hashLen])
}

// Validate checks the current request against a stored fingerprint.
// It returns ErrInvalidFingerprint for malformed stored values and
// ErrMismatch when the request no longer matches.
//
// Validation must use the same options as generation; the paired
// helpers ValidateCookie and ValidateStrict get this right by
// construction.
func Validate(r *http.Request, stored string, opts ...Option) error {
	if len(stored) != encodedLen || !strings.HasPrefix(stored, version) {
		return ErrInvalidFingerprint
	}
	if Generate(r, opts...) != stored {
		return ErrMismatch
	}
	return nil
}

// Cookie is the profile for cookie-backed sessions: everything except
// the client IP. This is the right default for web applications.
func Cookie(r *http.Request) string {
	return Generate(r)
}

// ValidateCookie checks a fingerprint produced by Cookie.
func ValidateCookie(r *http.Request, stored string) error {
	return Validate(r, stored)
}

// Strict binds the fingerprint to the client IP as well. An address
// change then invalidates it, which locks out roaming mobile and VPN
// users; reserve this for flows that can re-authenticate gracefully.
func Strict(r *http.Request) string {
	return Generate(r, WithIP())
}

// ValidateStrict checks a fingerprint produced by Strict.
func ValidateStrict(r *http.Request, stored string) error {
	return Validate(r, stored, WithIP())
}

// headerSet reports which of the stable headers the request carries,
// in fixed order so the component hashes deterministically.
func headerSet(r *http.Request) string {
	present := make([]string, 0, len(stableHeaders))
	for _, name := range stableHeaders {
		if _, ok := r.Header[name]; ok {
			present = append(present, name)
		}
	}
	return strings.Join(present, ",")
}
