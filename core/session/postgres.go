package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists sessions in a Postgres table with the payload as
// JSONB. The expected schema, with the default table name:
//
//	CREATE TABLE sessions (
//		id          UUID PRIMARY KEY,
//		token       TEXT NOT NULL UNIQUE,
//		user_id     UUID NOT NULL,
//		fingerprint TEXT NOT NULL DEFAULT '',
//		ip          TEXT NOT NULL,
//		user_agent  TEXT NOT NULL DEFAULT '',
//		data        JSONB NOT NULL DEFAULT '{}',
//		expires_at  TIMESTAMPTZ NOT NULL,
//		created_at  TIMESTAMPTZ NOT NULL,
//		updated_at  TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX sessions_expires_at_idx ON sessions (expires_at);
//
// Expired rows are only removed by DeleteExpired; schedule
// Manager.CleanupExpired to keep the table bounded.
type PostgresStore[Data any] struct {
	pool  *pgxpool.Pool
	table string
}

// PostgresStoreOption configures a PostgresStore.
type PostgresStoreOption func(*postgresStoreSettings)

type postgresStoreSettings struct {
	table string
}

// WithSessionTable overrides the default "sessions" table name. The name
// is interpolated into SQL, so it must come from trusted configuration.
func WithSessionTable(table string) PostgresStoreOption {
	return func(s *postgresStoreSettings) {
		s.table = table
	}
}

// NewPostgresStore creates a Postgres-backed session store.
func NewPostgresStore[Data any](pool *pgxpool.Pool, opts ...PostgresStoreOption) (*PostgresStore[Data], error) {
	if pool == nil {
		return nil, fmt.Errorf("%w: nil connection pool", ErrStoreUnavailable)
	}

	settings := postgresStoreSettings{table: "sessions"}
	for _, opt := range opts {
		opt(&settings)
	}

	return &PostgresStore[Data]{
		pool:  pool,
		table: settings.table,
	}, nil
}

const sessionColumns = "id, token, user_id, fingerprint, ip, user_agent, data, expires_at, created_at, updated_at"

func (s *PostgresStore[Data]) GetByID(ctx context.Context, id uuid.UUID) (*Session[Data], error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", sessionColumns, s.table)
	return s.getOne(ctx, query, id)
}

func (s *PostgresStore[Data]) GetByToken(ctx context.Context, token string) (*Session[Data], error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE token = $1", sessionColumns, s.table)
	return s.getOne(ctx, query, token)
}

func (s *PostgresStore[Data]) getOne(ctx context.Context, query string, arg any) (*Session[Data], error) {
	var (
		sess    Session[Data]
		payload []byte
	)
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&sess.ID,
		&sess.Token,
		&sess.UserID,
		&sess.Fingerprint,
		&sess.IP,
		&sess.UserAgent,
		&payload,
		&sess.ExpiresAt,
		&sess.CreatedAt,
		&sess.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &sess.Data); err != nil {
			return nil, fmt.Errorf("unmarshal session %s data: %w", sess.ID, err)
		}
	}
	return &sess, nil
}

func (s *PostgresStore[Data]) Save(ctx context.Context, session *Session[Data]) error {
	payload, err := json.Marshal(session.Data)
	if err != nil {
		return fmt.Errorf("marshal session %s data: %w", session.ID, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			token = EXCLUDED.token,
			user_id = EXCLUDED.user_id,
			fingerprint = EXCLUDED.fingerprint,
			ip = EXCLUDED.ip,
			user_agent = EXCLUDED.user_agent,
			data = EXCLUDED.data,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at`, s.table, sessionColumns)

	_, err = s.pool.Exec(ctx, query,
		session.ID,
		session.Token,
		session.UserID,
		session.Fingerprint,
		session.IP,
		session.UserAgent,
		payload,
		session.ExpiresAt,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PostgresStore[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.table)
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore[Data]) DeleteExpired(ctx context.Context) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE expires_at < $1", s.table)
	tag, err := s.pool.Exec(ctx, query, time.Now())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return tag.RowsAffected(), nil
}
