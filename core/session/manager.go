package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Manager drives the session lifecycle over a Store: creation, lookup
// with expiration checks, authentication with token rotation, and
// persistence with touch throttling.
type Manager[Data any] struct {
	store         Store[Data]
	ttl           time.Duration
	touchInterval time.Duration
}

// settings collects manager options before the generic Manager exists,
// keeping Option free of a type parameter.
type settings struct {
	ttl           time.Duration
	touchInterval time.Duration
}

// Option configures a Manager.
type Option func(*settings)

// WithTTL sets the session time-to-live. Default is 24 hours.
func WithTTL(ttl time.Duration) Option {
	return func(s *settings) {
		s.ttl = ttl
	}
}

// WithTouchInterval sets the minimum time between expiration extensions,
// throttling store writes for active clients. Zero extends on every
// Store call. Default is 5 minutes.
func WithTouchInterval(interval time.Duration) Option {
	return func(s *settings) {
		s.touchInterval = interval
	}
}

// NewManager creates a session manager backed by store.
func NewManager[Data any](store Store[Data], opts ...Option) *Manager[Data] {
	s := settings{
		ttl:           24 * time.Hour,
		touchInterval: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &Manager[Data]{
		store:         store,
		ttl:           s.ttl,
		touchInterval: s.touchInterval,
	}
}

// New creates an anonymous session with the manager's TTL. The session is
// not persisted until Store is called with it.
func (m *Manager[Data]) New(params NewSessionParams) (Session[Data], error) {
	return New[Data](params, m.ttl)
}

// GetByID loads a session and rejects it with ErrExpired when stale.
func (m *Manager[Data]) GetByID(ctx context.Context, id uuid.UUID) (Session[Data], error) {
	sess, err := m.store.GetByID(ctx, id)
	if err != nil {
		return Session[Data]{}, err
	}
	if sess.IsExpired() {
		return Session[Data]{}, ErrExpired
	}
	return *sess, nil
}

// GetByToken loads a session by its client token and rejects it with
// ErrExpired when stale.
func (m *Manager[Data]) GetByToken(ctx context.Context, token string) (Session[Data], error) {
	sess, err := m.store.GetByToken(ctx, token)
	if err != nil {
		return Session[Data]{}, err
	}
	if sess.IsExpired() {
		return Session[Data]{}, ErrExpired
	}
	return *sess, nil
}

// Authenticate binds sess to userID, rotating the token, and persists the
// result. Optional data replaces the payload in the same write.
func (m *Manager[Data]) Authenticate(ctx context.Context, sess Session[Data], userID uuid.UUID, data ...Data) (Session[Data], error) {
	if err := sess.Authenticate(userID, data...); err != nil {
		return Session[Data]{}, err
	}
	if err := m.store.Save(ctx, &sess); err != nil {
		return Session[Data]{}, errors.Join(ErrSaveSession, err)
	}
	return sess, nil
}

// Logout deletes sess from the store and returns a fresh anonymous
// session bound to the same client attributes. The new session is
// persisted so its token resolves on the next request.
func (m *Manager[Data]) Logout(ctx context.Context, sess Session[Data]) (Session[Data], error) {
	if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
		return Session[Data]{}, errors.Join(ErrDeleteSession, err)
	}

	anon, err := New[Data](NewSessionParams{
		Fingerprint: sess.Fingerprint,
		IP:          sess.IP,
		UserAgent:   sess.UserAgent,
	}, m.ttl)
	if err != nil {
		return Session[Data]{}, err
	}

	if err := m.store.Save(ctx, &anon); err != nil {
		return Session[Data]{}, errors.Join(ErrSaveSession, err)
	}
	return anon, nil
}

// Store persists sess according to its state: deleted sessions are
// removed from the store and ErrNotAuthenticated is returned so the
// transport clears its cookie; live sessions are touched and saved only
// when modified. The returned session carries the updated expiration.
func (m *Manager[Data]) Store(ctx context.Context, sess Session[Data]) (Session[Data], error) {
	if sess.IsDeleted() {
		if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return sess, errors.Join(ErrDeleteSession, err)
		}
		return sess, ErrNotAuthenticated
	}

	sess.Touch(m.ttl, m.touchInterval)

	if sess.IsModified() {
		if err := m.store.Save(ctx, &sess); err != nil {
			return sess, errors.Join(ErrSaveSession, err)
		}
	}
	return sess, nil
}

// Delete removes a session by ID regardless of its state.
func (m *Manager[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}

// CleanupExpired removes expired sessions from the store. Run it
// periodically on stores without native expiration (memory, Postgres).
func (m *Manager[Data]) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

// TTL returns the configured session time-to-live.
func (m *Manager[Data]) TTL() time.Duration {
	return m.ttl
}

// TouchInterval returns the configured touch throttle.
func (m *Manager[Data]) TouchInterval() time.Duration {
	return m.touchInterval
}
