package repository

import (
	"context"
	"testing"

	"glimpse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_CreateIsIdempotent(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	a := &models.User{Username: "a", Email: "a@example.com", Password: "x"}
	b := &models.User{Username: "b", Email: "b@example.com", Password: "x"}
	require.NoError(t, db.Create(a).Error)
	require.NoError(t, db.Create(b).Error)

	require.NoError(t, repo.Create(ctx, a.ID, b.ID))
	require.NoError(t, repo.Create(ctx, a.ID, b.ID))

	var count int64
	db.Model(&models.Follow{}).Count(&count)
	assert.Equal(t, int64(1), count)

	exists, err := repo.Exists(ctx, a.ID, b.ID)
	assert.NoError(t, err)
	assert.True(t, exists)

	// The edge is directed: b does not follow a.
	exists, err = repo.Exists(ctx, b.ID, a.ID)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestFollowRepository_DeleteDirectedEdge(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	a := &models.User{Username: "a", Email: "a@example.com", Password: "x"}
	b := &models.User{Username: "b", Email: "b@example.com", Password: "x"}
	require.NoError(t, db.Create(a).Error)
	require.NoError(t, db.Create(b).Error)

	require.NoError(t, repo.Create(ctx, a.ID, b.ID))
	require.NoError(t, repo.Create(ctx, b.ID, a.ID))

	require.NoError(t, repo.Delete(ctx, a.ID, b.ID))

	exists, _ := repo.Exists(ctx, a.ID, b.ID)
	assert.False(t, exists)
	// The reverse edge survives.
	exists, _ = repo.Exists(ctx, b.ID, a.ID)
	assert.True(t, exists)

	// Deleting a missing edge is a no-op.
	assert.NoError(t, repo.Delete(ctx, a.ID, b.ID))
}

func TestFollowRepository_ListsAndCounts(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	target := &models.User{Username: "target", Email: "t@example.com", Password: "x"}
	f1 := &models.User{Username: "f1", Email: "f1@example.com", Password: "x"}
	f2 := &models.User{Username: "f2", Email: "f2@example.com", Password: "x"}
	for _, u := range []*models.User{target, f1, f2} {
		require.NoError(t, db.Create(u).Error)
	}

	require.NoError(t, repo.Create(ctx, f1.ID, target.ID))
	require.NoError(t, repo.Create(ctx, f2.ID, target.ID))
	require.NoError(t, repo.Create(ctx, target.ID, f1.ID))

	followers, err := repo.Followers(ctx, target.ID, target.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	for _, u := range followers {
		if u.ID == f1.ID {
			// The viewer (target) follows f1 back.
			assert.True(t, u.FollowedByViewer)
		} else {
			assert.False(t, u.FollowedByViewer)
		}
	}

	following, err := repo.Following(ctx, target.ID, target.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, f1.ID, following[0].ID)

	followerCount, followingCount, err := repo.Counts(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followerCount)
	assert.Equal(t, int64(1), followingCount)
}
