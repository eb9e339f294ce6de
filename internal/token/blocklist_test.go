package token

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBlocklist_RevokeAndCheck(t *testing.T) {
	bl := NewMemoryBlocklist()
	ctx := context.Background()

	revoked, err := bl.IsRevoked(ctx, "unknown-jti")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Minute))

	revoked, err = bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryBlocklist_EntryExpires(t *testing.T) {
	bl := NewMemoryBlocklist()
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "short-lived", 10*time.Millisecond))

	revoked, err := bl.IsRevoked(ctx, "short-lived")
	require.NoError(t, err)
	assert.True(t, revoked)

	time.Sleep(20 * time.Millisecond)

	// The underlying token is expired by now, so dropping the entry is safe.
	revoked, err = bl.IsRevoked(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Equal(t, 0, bl.Len(), "expired entry must be dropped on lookup")
}

func TestMemoryBlocklist_Prune(t *testing.T) {
	bl := NewMemoryBlocklist()
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "live", time.Hour))
	require.NoError(t, bl.Revoke(ctx, "dead-1", 5*time.Millisecond))
	require.NoError(t, bl.Revoke(ctx, "dead-2", 5*time.Millisecond))

	time.Sleep(10 * time.Millisecond)

	removed, err := bl.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, bl.Len())

	revoked, err := bl.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryBlocklist_RevokeExpiredTokenIsNoop(t *testing.T) {
	bl := NewMemoryBlocklist()
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "already-expired", -time.Minute))
	assert.Equal(t, 0, bl.Len())
}

func TestMemoryBlocklist_Concurrency(t *testing.T) {
	bl := NewMemoryBlocklist()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			jti := fmt.Sprintf("jti-%d", n)
			_ = bl.Revoke(ctx, jti, time.Minute)
			_, _ = bl.IsRevoked(ctx, jti)
			_, _ = bl.Prune(ctx)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, bl.Len())
}
