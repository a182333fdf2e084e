package session_test

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrCamelCode/potami/core/session"
)

// newPostgresStore provisions a throwaway table in the database named by
// POSTGRES_TEST_URL, skipping the test when the variable is unset.
func newPostgresStore(t *testing.T) *session.PostgresStore[payload] {
	t.Helper()

	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("POSTGRES_TEST_URL is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	table := fmt.Sprintf("sessions_test_%d", rand.Int63())
	ddl := fmt.Sprintf(`CREATE TABLE %s (
		id          UUID PRIMARY KEY,
		token       TEXT NOT NULL UNIQUE,
		user_id     UUID NOT NULL,
		fingerprint TEXT NOT NULL DEFAULT '',
		ip          TEXT NOT NULL,
		user_agent  TEXT NOT NULL DEFAULT '',
		data        JSONB NOT NULL DEFAULT '{}',
		expires_at  TIMESTAMPTZ NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`, table)
	_, err = pool.Exec(ctx, ddl)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DROP TABLE IF EXISTS "+table)
	})

	store, err := session.NewPostgresStore[payload](pool, session.WithSessionTable(table))
	require.NoError(t, err)
	return store
}

func TestNewPostgresStore(t *testing.T) {
	t.Parallel()

	_, err := session.NewPostgresStore[payload](nil)
	assert.ErrorIs(t, err, session.ErrStoreUnavailable)
}

func TestPostgresStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("roundtrip and upsert", func(t *testing.T) {
		t.Parallel()

		store := newPostgresStore(t)
		sess := newSession(t, time.Hour)
		sess.Data = payload{Theme: "dark"}
		require.NoError(t, store.Save(ctx, &sess))

		byToken, err := store.GetByToken(ctx, sess.Token)
		require.NoError(t, err)
		assert.Equal(t, sess.ID, byToken.ID)
		assert.Equal(t, "dark", byToken.Data.Theme)

		// Saving again updates in place rather than conflicting.
		sess.Data = payload{Theme: "light"}
		require.NoError(t, store.Save(ctx, &sess))

		byID, err := store.GetByID(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, "light", byID.Data.Theme)
	})

	t.Run("rotation invalidates old token", func(t *testing.T) {
		t.Parallel()

		store := newPostgresStore(t)
		sess := newSession(t, time.Hour)
		require.NoError(t, store.Save(ctx, &sess))

		oldToken := sess.Token
		require.NoError(t, sess.Refresh())
		require.NoError(t, store.Save(ctx, &sess))

		_, err := store.GetByToken(ctx, oldToken)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		store := newPostgresStore(t)
		sess := newSession(t, time.Hour)
		require.NoError(t, store.Save(ctx, &sess))

		require.NoError(t, store.Delete(ctx, sess.ID))
		assert.ErrorIs(t, store.Delete(ctx, sess.ID), session.ErrNotFound)
	})

	t.Run("delete expired", func(t *testing.T) {
		t.Parallel()

		store := newPostgresStore(t)
		live := newSession(t, time.Hour)
		stale := newSession(t, -time.Second)
		require.NoError(t, store.Save(ctx, &live))
		require.NoError(t, store.Save(ctx, &stale))

		removed, err := store.DeleteExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		_, err = store.GetByID(ctx, live.ID)
		assert.NoError(t, err)
	})
}
