package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, err := store.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, StateIdle, sess.State)

	require.NoError(t, store.BindPhone(ctx, sess.ID))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StatePaired, got.State)
	assert.False(t, got.PairedAt.IsZero())

	require.NoError(t, store.End(ctx, sess.ID))

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_SingleUse(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, store.BindPhone(ctx, sess.ID))

	// Phone thứ hai bị từ chối
	err = store.BindPhone(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionUnavailable)
}

func TestMemoryStore_BindUnknownSession(t *testing.T) {
	store := NewMemoryStore()

	err := store.BindPhone(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_EndIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, store.End(ctx, sess.ID))
	require.NoError(t, store.End(ctx, sess.ID))
	require.NoError(t, store.End(ctx, "never-existed"))
}

func TestMemoryStore_SweepIdle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	stale, err := store.Create(ctx)
	require.NoError(t, err)

	paired, err := store.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, store.BindPhone(ctx, paired.ID))

	// Cutoff trong tương lai: mọi Idle session đều stale
	swept, err := store.SweepIdle(ctx, time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []string{stale.ID}, swept)

	// Paired session không bị sweep
	_, err = store.Get(ctx, paired.ID)
	assert.NoError(t, err)

	_, err = store.Get(ctx, stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
