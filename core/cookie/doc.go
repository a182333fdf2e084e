// Package cookie manages HTTP cookies with signing, encryption, and
// one-time flash values on top of a shared set of default attributes.
//
// A Manager is created once with the application's secrets and handed to
// whatever writes cookies, typically a session transport:
//
//	manager, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Plain cookie, readable and writable by the client.
//	manager.Set(w, "theme", "dark")
//
//	// Signed cookie, readable by the client but tamper-evident.
//	manager.SetSigned(w, "user_id", "42")
//
//	// Encrypted cookie, opaque to the client.
//	manager.SetEncrypted(w, "state", token)
//
// # Defaults and per-call options
//
// New applies secure defaults (path "/", HttpOnly, SameSite=Lax) which can
// be adjusted globally at construction or per call:
//
//	manager, _ := cookie.New(secrets, cookie.WithSecure(true))
//	manager.Set(w, "banner", "seen", cookie.WithMaxAge(3600))
//
// Writes that would serialize above the size cap (4KB by default) fail
// with ErrCookieTooLarge rather than letting the browser truncate.
//
// # Key rotation
//
// All secrets are accepted when verifying signatures or decrypting; only
// the first secret issues new values. To rotate, prepend the new secret
// and drop the old one after existing cookies expire:
//
//	manager, _ := cookie.New([]string{newSecret, oldSecret})
//
// # Flash values
//
// Flash values are encrypted cookies deleted on first read, useful for
// redirect-then-render flows:
//
//	manager.SetFlash(w, "notice", "profile saved")
//
//	var notice string
//	if err := manager.GetFlash(w, r, "notice", &notice); err == nil {
//		// render notice; the cookie is already expired
//	}
//
// # Configuration
//
// Config maps every setting to COOKIE_* environment variables for use with
// the config package:
//
//	var cfg cookie.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//	manager, err := cookie.NewFromConfig(cfg)
package cookie
