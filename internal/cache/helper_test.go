package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func TestGetSetJSON(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var missed cachedUser
	found, err := GetJSON(ctx, UserKey(1), &missed)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, UserKey(1), cachedUser{ID: 1, Username: "alice"}, UserTTL))

	var hit cachedUser
	found, err = GetJSON(ctx, UserKey(1), &hit)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "alice", hit.Username)

	// The entry ages out after its TTL.
	mr.FastForward(UserTTL + time.Second)
	found, err = GetJSON(ctx, UserKey(1), &hit)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetchCalls := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			fetchCalls++
			*dest = cachedUser{ID: 7, Username: "bob"}
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &first, UserTTL, fetch(&first)))
	assert.Equal(t, "bob", first.Username)
	assert.Equal(t, 1, fetchCalls)

	// Second read is served from the cache.
	var second cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &second, UserTTL, fetch(&second)))
	assert.Equal(t, "bob", second.Username)
	assert.Equal(t, 1, fetchCalls)

	// Invalidation forces the next read back to the source.
	InvalidateUser(ctx, 7)
	var third cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &third, UserTTL, fetch(&third)))
	assert.Equal(t, 2, fetchCalls)
}

func TestNilClientIsPassthrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var dest cachedUser
	found, err := GetJSON(ctx, UserKey(1), &dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, UserKey(1), cachedUser{ID: 1}, UserTTL))
	assert.NotPanics(t, func() { InvalidateUnreadCount(ctx, 1) })

	// Aside always falls through to the source.
	calls := 0
	require.NoError(t, Aside(ctx, UnreadCountKey(1), &dest, UnreadCountTTL, func() error {
		calls++
		return nil
	}))
	require.NoError(t, Aside(ctx, UnreadCountKey(1), &dest, UnreadCountTTL, func() error {
		calls++
		return nil
	}))
	assert.Equal(t, 2, calls)
}
