// Package fingerprint derives stable device identifiers from HTTP
// request characteristics.
//
// A fingerprint condenses the User-Agent, the Accept headers, and the
// set of stable browser headers present on a request into a short
// versioned hash. Sessions record it at creation and check it on later
// requests; a changed fingerprint suggests the session token moved to a
// different client.
//
//	fp := fingerprint.Cookie(r)
//	// persist fp alongside the session ...
//
//	if err := fingerprint.ValidateCookie(r, sess.Fingerprint); err != nil {
//		// token replay, or a legitimately changed browser
//	}
//
// # Profiles
//
// Cookie excludes the client IP and suits most web applications.
// Strict adds the IP for flows where an address change must invalidate
// the session, at the cost of false positives for mobile and VPN users.
// Generate with explicit options covers anything in between; validation
// must use the same options as generation.
//
// # Limits
//
// Fingerprints are a heuristic, not authentication. Browser upgrades
// rewrite User-Agent strings, privacy extensions strip headers, and
// identical corporate fleets collide. Treat a mismatch as a reason to
// re-authenticate, never as proof of an attack.
package fingerprint
