// Package sessiontransport connects server-side sessions to HTTP clients.
// The Cookie transport stores the session token in a signed cookie and
// keeps the cookie's lifetime in lockstep with the session's expiration.
//
// # Wiring
//
//	cookies, err := cookie.New([]string{secret})
//	if err != nil {
//		log.Fatal(err)
//	}
//	sessions := session.NewManager(session.NewMemoryStore[AppData]())
//	transport := sessiontransport.NewCookie(sessions, cookies, "__session")
//
// # Request flow
//
// Load never fails for client-side reasons: a missing cookie, a forged
// signature, or an expired session all degrade to a fresh anonymous
// session bound to the request's IP, user agent, and device fingerprint.
// Handlers therefore always observe a usable session:
//
//	sess, err := transport.Load(ctx)
//	if err != nil {
//		return response.Error(err)
//	}
//	sess.SetData(AppData{LastSeen: time.Now()})
//	if err := transport.Save(ctx, sess); err != nil {
//		return response.Error(err)
//	}
//
// Save is cheap for idle sessions: unmodified sessions within the touch
// interval hit neither the store nor the response headers.
//
// # Authentication
//
// Authenticate and Logout rotate the token on every transition, so a
// token captured before login is useless afterwards:
//
//	sess, err := transport.Authenticate(ctx, userID)
//	...
//	sess, err = transport.Logout(ctx)
//
// Logout intentionally leaves a fresh anonymous session behind rather
// than nothing, keeping carts and preferences workable across sign-out.
// Use Delete to drop the visitor's state entirely.
//
// The middleware package loads sessions into request scope automatically;
// see middleware.Session.
package sessiontransport
