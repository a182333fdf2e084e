package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreConsumeTokens(t *testing.T) {
	t.Parallel()

	cfg := Config{Capacity: 5, RefillRate: 1, RefillInterval: time.Hour}
	store := NewMemoryStore()
	ctx := context.Background()

	remaining, resetAt, err := store.ConsumeTokens(ctx, "k", 2, cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)
	assert.True(t, resetAt.After(time.Now()))

	// Over-consumption leaves a persistent deficit.
	remaining, _, err = store.ConsumeTokens(ctx, "k", 10, cfg)
	require.NoError(t, err)
	assert.Equal(t, -7, remaining)

	remaining, _, err = store.ConsumeTokens(ctx, "k", 1, cfg)
	require.NoError(t, err)
	assert.Equal(t, -8, remaining)
}

func TestMemoryStoreRefillCap(t *testing.T) {
	t.Parallel()

	cfg := Config{Capacity: 4, RefillRate: 2, RefillInterval: 20 * time.Millisecond}
	store := NewMemoryStore()
	ctx := context.Background()

	_, _, err := store.ConsumeTokens(ctx, "k", 4, cfg)
	require.NoError(t, err)

	// Many intervals pass; the bucket refills to capacity, never beyond.
	time.Sleep(200 * time.Millisecond)

	remaining, _, err := store.ConsumeTokens(ctx, "k", 0, cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, remaining)
}

func TestMemoryStoreOverflowGuard(t *testing.T) {
	t.Parallel()

	// A config whose idle refill would overflow naive arithmetic.
	cfg := Config{Capacity: 1 << 30, RefillRate: 1, RefillInterval: time.Nanosecond}
	store := NewMemoryStore()
	ctx := context.Background()

	_, _, err := store.ConsumeTokens(ctx, "k", 1, cfg)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	remaining, _, err := store.ConsumeTokens(ctx, "k", 0, cfg)
	require.NoError(t, err)
	assert.LessOrEqual(t, remaining, 1<<30)
	assert.Positive(t, remaining)
}

func TestMemoryStoreReset(t *testing.T) {
	t.Parallel()

	cfg := Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour}
	store := NewMemoryStore()
	ctx := context.Background()

	_, _, err := store.ConsumeTokens(ctx, "k", 1, cfg)
	require.NoError(t, err)

	require.NoError(t, store.Reset(ctx, "k"))

	remaining, _, err := store.ConsumeTokens(ctx, "k", 1, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining, "reset restores a full bucket")
}

func TestMemoryStoreCleanupRemovesStale(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(
		WithCleanupInterval(20*time.Millisecond),
		WithStaleAfter(10*time.Millisecond),
	)
	cfg := Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour}

	_, _, err := store.ConsumeTokens(context.Background(), "stale", 1, cfg)
	require.NoError(t, err)
	require.Equal(t, 1, store.size())

	go func() { _ = store.Start(context.Background()) }()
	defer store.Stop()

	assert.Eventually(t, func() bool {
		return store.size() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStoreDoubleStart(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(WithCleanupInterval(10 * time.Millisecond))

	go func() { _ = store.Start(context.Background()) }()
	defer store.Stop()

	// Give the first Start a moment to claim the loop.
	time.Sleep(20 * time.Millisecond)

	err := store.Start(context.Background())
	assert.Error(t, err)
}

func TestMemoryStoreStartRequiresInterval(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(WithCleanupInterval(0))
	assert.Error(t, store.Start(context.Background()))
}

func TestMemoryStoreStopUnblocksStart(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(WithCleanupInterval(10 * time.Millisecond))

	done := make(chan error, 1)
	go func() { done <- store.Start(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	store.Stop()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}
}
