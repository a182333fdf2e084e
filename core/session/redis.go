package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore persists sessions in Redis under two keys per session: the
// JSON record keyed by ID and a token index pointing at the ID. Both
// expire with the session, so Redis reclaims stale entries on its own and
// DeleteExpired is a no-op.
type RedisStore[Data any] struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*redisStoreSettings)

type redisStoreSettings struct {
	prefix string
}

// WithRedisKeyPrefix overrides the default "session:" key prefix, useful
// when several applications share one Redis database.
func WithRedisKeyPrefix(prefix string) RedisStoreOption {
	return func(s *redisStoreSettings) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore[Data any](client redis.UniversalClient, opts ...RedisStoreOption) (*RedisStore[Data], error) {
	if client == nil {
		return nil, fmt.Errorf("%w: nil redis client", ErrStoreUnavailable)
	}

	settings := redisStoreSettings{prefix: "session:"}
	for _, opt := range opts {
		opt(&settings)
	}

	return &RedisStore[Data]{
		client: client,
		prefix: settings.prefix,
	}, nil
}

// redisSession is the stored JSON shape, pinned with tags so the wire
// format survives renames of Session fields.
type redisSession[Data any] struct {
	ID          uuid.UUID `json:"id"`
	Token       string    `json:"token"`
	UserID      uuid.UUID `json:"user_id"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	IP          string    `json:"ip"`
	UserAgent   string    `json:"user_agent,omitempty"`
	Data        Data      `json:"data"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *RedisStore[Data]) idKey(id uuid.UUID) string {
	return s.prefix + "id:" + id.String()
}

func (s *RedisStore[Data]) tokenKey(token string) string {
	return s.prefix + "token:" + token
}

func (s *RedisStore[Data]) GetByID(ctx context.Context, id uuid.UUID) (*Session[Data], error) {
	payload, err := s.client.Get(ctx, s.idKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var record redisSession[Data]
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}

	sess := Session[Data]{
		ID:          record.ID,
		Token:       record.Token,
		UserID:      record.UserID,
		Fingerprint: record.Fingerprint,
		IP:          record.IP,
		UserAgent:   record.UserAgent,
		Data:        record.Data,
		ExpiresAt:   record.ExpiresAt,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
	return &sess, nil
}

func (s *RedisStore[Data]) GetByToken(ctx context.Context, token string) (*Session[Data], error) {
	raw, err := s.client.Get(ctx, s.tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrNotFound
	}

	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// The token index is written alongside the record but not atomically
	// with rotations, so reject index entries pointing at a rotated session.
	if sess.Token != token {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *RedisStore[Data]) Save(ctx context.Context, session *Session[Data]) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, session.ID)
	}

	record := redisSession[Data]{
		ID:          session.ID,
		Token:       session.Token,
		UserID:      session.UserID,
		Fingerprint: session.Fingerprint,
		IP:          session.IP,
		UserAgent:   session.UserAgent,
		Data:        session.Data,
		ExpiresAt:   session.ExpiresAt,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}

	// A rotation leaves the old token index behind; look it up so the
	// pipeline can remove it.
	var staleToken string
	if old, err := s.GetByID(ctx, session.ID); err == nil && old.Token != session.Token {
		staleToken = old.Token
	}

	pipe := s.client.TxPipeline()
	if staleToken != "" {
		pipe.Del(ctx, s.tokenKey(staleToken))
	}
	pipe.Set(ctx, s.idKey(session.ID), payload, ttl)
	pipe.Set(ctx, s.tokenKey(session.Token), session.ID.String(), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.idKey(id))
	pipe.Del(ctx, s.tokenKey(sess.Token))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteExpired is a no-op: both keys carry the session TTL and Redis
// expires them itself.
func (s *RedisStore[Data]) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
