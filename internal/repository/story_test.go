package repository

import (
	"context"
	"testing"
	"time"

	"glimpse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createStory(t *testing.T, repo StoryRepository, userID uint, createdAt time.Time) *models.Story {
	t.Helper()
	story := &models.Story{
		UserID:    userID,
		Media:     "story.jpg",
		MediaType: models.MediaTypeImage,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(models.StoryTTL),
	}
	require.NoError(t, repo.Create(context.Background(), story))
	return story
}

func TestStoryRepository_ExpiryFiltering(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewStoryRepository(db)
	ctx := context.Background()
	now := time.Now()

	user := &models.User{Username: "u", Email: "u@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)

	active := createStory(t, repo, user.ID, now.Add(-1*time.Hour))
	expired := createStory(t, repo, user.ID, now.Add(-25*time.Hour))

	stories, err := repo.ActiveByUser(ctx, user.ID, now)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, active.ID, stories[0].ID)

	// An expired story reads as not found; the row still exists.
	_, err = repo.GetByID(ctx, expired.ID, now)
	assert.Error(t, err)
	var count int64
	db.Model(&models.Story{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestStoryRepository_ActiveByUserOrder(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewStoryRepository(db)
	ctx := context.Background()
	now := time.Now()

	user := &models.User{Username: "u", Email: "u@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)

	second := createStory(t, repo, user.ID, now.Add(-1*time.Hour))
	first := createStory(t, repo, user.ID, now.Add(-2*time.Hour))

	stories, err := repo.ActiveByUser(ctx, user.ID, now)
	require.NoError(t, err)
	require.Len(t, stories, 2)
	// Oldest first: the viewer steps forward in creation order.
	assert.Equal(t, first.ID, stories[0].ID)
	assert.Equal(t, second.ID, stories[1].ID)
}

func TestStoryRepository_Bubbles(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewStoryRepository(db)
	followRepo := NewFollowRepository(db)
	ctx := context.Background()
	now := time.Now()

	viewer := &models.User{Username: "viewer", Email: "v@example.com", Password: "x"}
	followed := &models.User{Username: "followed", Email: "f@example.com", Password: "x"}
	stranger := &models.User{Username: "stranger", Email: "s@example.com", Password: "x"}
	for _, u := range []*models.User{viewer, followed, stranger} {
		require.NoError(t, db.Create(u).Error)
	}
	require.NoError(t, followRepo.Create(ctx, viewer.ID, followed.ID))

	createStory(t, repo, viewer.ID, now.Add(-3*time.Hour))
	createStory(t, repo, followed.ID, now.Add(-2*time.Hour))
	latest := createStory(t, repo, followed.ID, now.Add(-1*time.Hour))
	createStory(t, repo, stranger.ID, now.Add(-1*time.Hour))
	// Expired stories never produce a bubble.
	createStory(t, repo, followed.ID, now.Add(-30*time.Hour))

	bubbles, err := repo.Bubbles(ctx, viewer.ID, now)
	require.NoError(t, err)
	require.Len(t, bubbles, 2)

	byUser := make(map[uint]*models.Story, len(bubbles))
	for _, b := range bubbles {
		byUser[b.UserID] = b
	}
	assert.Contains(t, byUser, viewer.ID)
	require.Contains(t, byUser, followed.ID)
	assert.NotContains(t, byUser, stranger.ID)
	// The bubble is the followed user's latest active story.
	assert.Equal(t, latest.ID, byUser[followed.ID].ID)
}

func TestStoryRepository_RecordViewUpsert(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewStoryRepository(db)
	ctx := context.Background()
	now := time.Now()

	owner := &models.User{Username: "owner", Email: "o@example.com", Password: "x"}
	viewer := &models.User{Username: "viewer", Email: "v@example.com", Password: "x"}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(viewer).Error)

	story := createStory(t, repo, owner.ID, now.Add(-1*time.Hour))

	require.NoError(t, repo.RecordView(ctx, story.ID, viewer.ID, now))
	require.NoError(t, repo.RecordView(ctx, story.ID, viewer.ID, now.Add(time.Minute)))

	counts, err := repo.ViewCounts(ctx, []uint{story.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, counts[story.ID])

	views, err := repo.Views(ctx, story.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, viewer.ID, views[0].ViewerID)
}

func TestStoryRepository_UpsertReaction(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewStoryRepository(db)
	ctx := context.Background()
	now := time.Now()

	owner := &models.User{Username: "owner", Email: "o@example.com", Password: "x"}
	reactor := &models.User{Username: "reactor", Email: "r@example.com", Password: "x"}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(reactor).Error)

	story := createStory(t, repo, owner.ID, now.Add(-1*time.Hour))

	require.NoError(t, repo.UpsertReaction(ctx, story.ID, reactor.ID, "❤️"))
	require.NoError(t, repo.UpsertReaction(ctx, story.ID, reactor.ID, "🔥"))

	reactions, err := repo.Reactions(ctx, story.ID)
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, "🔥", reactions[0].Reaction)
}
