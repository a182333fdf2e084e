package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session is a server-side session with application-defined payload.
// The Data type parameter carries whatever the application attaches to a
// visitor: preferences, cart contents, onboarding state.
type Session[Data any] struct {
	// ID is the stable identifier; it never changes for the lifetime of
	// the session, even across token rotations.
	ID uuid.UUID

	// Token is the secret the client presents (cookie value). It rotates
	// on every authentication state change.
	Token string

	// UserID is uuid.Nil while the session is anonymous.
	UserID uuid.UUID

	// Fingerprint is an optional device fingerprint bound at creation.
	Fingerprint string

	IP        string
	UserAgent string

	// Data is the application payload, persisted by the store.
	Data Data

	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// DeletedAt marks the session for removal on the next Store call.
	DeletedAt time.Time

	// isModified tracks whether the session needs saving.
	isModified bool
}

// NewSessionParams carries the request attributes bound to a new session.
type NewSessionParams struct {
	Fingerprint string
	IP          string
	UserAgent   string
}

// New creates an anonymous session with a fresh ID and token, expiring
// after ttl. The session is marked modified so the next Store persists it.
func New[Data any](params NewSessionParams, ttl time.Duration) (Session[Data], error) {
	if params.IP == "" {
		return Session[Data]{}, ErrMissingIP
	}

	token, err := generateToken()
	if err != nil {
		return Session[Data]{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session[Data]{
		ID:          uuid.New(),
		Token:       token,
		UserID:      uuid.Nil,
		Fingerprint: params.Fingerprint,
		IP:          params.IP,
		UserAgent:   params.UserAgent,
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
		UpdatedAt:   now,
		isModified:  true,
	}, nil
}

// Authenticate binds the session to a user and rotates the token so the
// pre-login token cannot be replayed (session fixation). The ID stays
// stable. Optional data replaces the payload in the same step.
func (s *Session[Data]) Authenticate(userID uuid.UUID, data ...Data) error {
	if err := s.rotateToken(); err != nil {
		return err
	}
	s.UserID = userID
	if len(data) > 0 {
		s.Data = data[0]
	}
	s.UpdatedAt = time.Now()
	s.isModified = true
	return nil
}

// Refresh rotates the token without touching authentication state.
func (s *Session[Data]) Refresh() error {
	if err := s.rotateToken(); err != nil {
		return err
	}
	s.UpdatedAt = time.Now()
	s.isModified = true
	return nil
}

// Logout marks the session for deletion on the next Store call.
func (s *Session[Data]) Logout() {
	s.DeletedAt = time.Now()
	s.isModified = true
}

// SetData replaces the session payload.
func (s *Session[Data]) SetData(data Data) {
	s.Data = data
	s.UpdatedAt = time.Now()
	s.isModified = true
}

// Touch extends the expiration when at least touchInterval has passed
// since the last update. The interval throttles store writes for busy
// clients; zero extends on every call.
func (s *Session[Data]) Touch(ttl, touchInterval time.Duration) {
	if time.Since(s.UpdatedAt) >= touchInterval {
		now := time.Now()
		s.ExpiresAt = now.Add(ttl)
		s.UpdatedAt = now
		s.isModified = true
	}
}

// IsAuthenticated reports whether the session belongs to a known user.
func (s Session[Data]) IsAuthenticated() bool {
	return s.UserID != uuid.Nil && s.Token != ""
}

// IsDeleted reports whether the session is marked for deletion.
func (s Session[Data]) IsDeleted() bool {
	return !s.DeletedAt.IsZero()
}

// IsModified reports whether the session has unsaved changes.
func (s Session[Data]) IsModified() bool {
	return s.isModified
}

// IsExpired reports whether the session is past its expiration.
func (s Session[Data]) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

func (s *Session[Data]) rotateToken() error {
	token, err := generateToken()
	if err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}
	s.Token = token
	s.isModified = true
	return nil
}

// generateToken returns 32 bytes of crypto/rand entropy as unpadded
// base64url, safe for cookie values.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
