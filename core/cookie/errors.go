package cookie

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSecret indicates the manager was created without any usable secret.
	ErrNoSecret = errors.New("no secret provided for cookie manager")

	// ErrSecretTooShort indicates a secret below the 32-character minimum
	// required for AES-256 keys.
	ErrSecretTooShort = errors.New("secret must be at least 32 characters long")

	// ErrCookieNotFound indicates the request carries no cookie with the
	// requested name.
	ErrCookieNotFound = errors.New("cookie not found in request")

	// ErrInvalidFormat indicates a cookie value that does not decode as the
	// expected signed or encrypted layout.
	ErrInvalidFormat = errors.New("invalid cookie format")

	// ErrInvalidSignature indicates signature verification failed for every
	// configured secret. The value was tampered with or signed elsewhere.
	ErrInvalidSignature = errors.New("cookie signature verification failed")

	// ErrDecryptionFailed indicates no configured secret could open the
	// encrypted value.
	ErrDecryptionFailed = errors.New("failed to decrypt cookie value")
)

// ErrCookieTooLarge reports a cookie whose serialized form exceeds the size
// cap. It carries the offending cookie's name and measured size.
type ErrCookieTooLarge struct {
	Name string
	Size int
	Max  int
}

func (e ErrCookieTooLarge) Error() string {
	return fmt.Sprintf("cookie %q size %d exceeds maximum %d bytes", e.Name, e.Size, e.Max)
}
