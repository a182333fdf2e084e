// Package clientip extracts the real client IP address from HTTP
// requests served behind proxies, load balancers, or CDNs.
//
// Headers are consulted in priority order, most trustworthy first:
//
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For (leftmost entry)
//  4. X-Real-IP
//  5. RemoteAddr
//
// Every candidate is parsed and normalized; invalid values and the
// unspecified addresses 0.0.0.0 and :: are skipped so a spoofed or
// broken header falls through to the next source. IPv6 addresses,
// including IPv4-mapped forms, are handled throughout:
//
//	ip := clientip.GetIP(r)
//	if ip == "" {
//		// no valid address, treat as unknown
//	}
//
// The result feeds rate limiting keys and request logs, so it favors
// returning something usable over strict proxy-chain verification.
// Deployments that cannot trust inbound headers should strip them at
// the edge.
package clientip
