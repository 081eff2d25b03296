package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlacklistRevokeAndLookup(t *testing.T) {
	b := NewBlacklist(time.Hour)
	defer b.Stop()

	ctx := context.Background()
	expiresAt := time.Now().Add(time.Hour)

	revoked, err := b.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, revoked, "unknown token must not be revoked")

	require.NoError(t, b.Revoke(ctx, "tok-1", expiresAt))

	revoked, err = b.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, revoked, "revoked token must stay revoked until its expiry")
}

func TestBlacklistExpiryFiltering(t *testing.T) {
	b := NewBlacklist(time.Hour)
	defer b.Stop()

	current := time.Now()
	b.now = func() time.Time { return current }

	ctx := context.Background()
	require.NoError(t, b.Revoke(ctx, "tok-1", current.Add(30*time.Minute)))

	t.Run("Revoked before natural expiry", func(t *testing.T) {
		current = current.Add(29 * time.Minute)
		revoked, err := b.IsRevoked(ctx, "tok-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("Not reported revoked after natural expiry", func(t *testing.T) {
		current = current.Add(2 * time.Minute)
		revoked, err := b.IsRevoked(ctx, "tok-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestBlacklistSweepReclaimsMemory(t *testing.T) {
	b := NewBlacklist(time.Hour)
	defer b.Stop()

	current := time.Now()
	b.now = func() time.Time { return current }

	ctx := context.Background()
	require.NoError(t, b.Revoke(ctx, "tok-1", current.Add(10*time.Minute)))
	require.NoError(t, b.Revoke(ctx, "tok-2", current.Add(20*time.Minute)))
	assert.Equal(t, 2, b.Len())

	// Sweep before any expiry removes nothing.
	b.Sweep()
	assert.Equal(t, 2, b.Len())

	current = current.Add(15 * time.Minute)
	b.Sweep()
	assert.Equal(t, 1, b.Len(), "entries past expiry are purged")

	current = current.Add(10 * time.Minute)
	b.Sweep()
	assert.Equal(t, 0, b.Len(), "footprint returns to baseline")
}

func TestBlacklistConcurrentAccess(t *testing.T) {
	b := NewBlacklist(time.Hour)
	defer b.Stop()

	ctx := context.Background()
	expiresAt := time.Now().Add(time.Hour)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			_ = b.Revoke(ctx, "tok-concurrent", expiresAt)
		}
	}()
	for i := 0; i < 1000; i++ {
		_, err := b.IsRevoked(ctx, "tok-concurrent")
		require.NoError(t, err)
	}
	<-done

	revoked, err := b.IsRevoked(ctx, "tok-concurrent")
	require.NoError(t, err)
	assert.True(t, revoked)
}
