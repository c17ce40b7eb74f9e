package service

import (
	"context"
	"testing"
	"time"

	"glimpse/internal/models"
	"glimpse/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoryService_ViewStory(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewStoryService(repository.NewStoryRepository(db))
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	viewer := createUser(t, db, "viewer")

	first, err := svc.CreateStory(ctx, CreateStoryInput{UserID: owner.ID, Media: "one.jpg", MediaType: models.MediaTypeImage})
	require.NoError(t, err)
	// Force ordering: the second story is newer.
	db.Model(first).Update("created_at", time.Now().Add(-time.Hour))
	second, err := svc.CreateStory(ctx, CreateStoryInput{UserID: owner.ID, Media: "two.jpg", MediaType: models.MediaTypeImage})
	require.NoError(t, err)

	page, err := svc.ViewStory(ctx, viewer.ID, owner.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, first.ID, page.Story.ID)
	assert.Equal(t, 0, page.Index)
	assert.Equal(t, 2, page.Total)

	page, err = svc.ViewStory(ctx, viewer.ID, owner.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, second.ID, page.Story.ID)

	// Stepping past the last story is the redirect case.
	_, err = svc.ViewStory(ctx, viewer.ID, owner.ID, 2)
	assert.ErrorIs(t, err, ErrStoryIndexOutOfRange)

	// A user with no active stories behaves the same.
	_, err = svc.ViewStory(ctx, owner.ID, viewer.ID, 0)
	assert.ErrorIs(t, err, ErrStoryIndexOutOfRange)
}

func TestStoryService_ViewRecording(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewStoryService(repository.NewStoryRepository(db))
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	viewer := createUser(t, db, "viewer")

	story, err := svc.CreateStory(ctx, CreateStoryInput{UserID: owner.ID, Media: "s.jpg", MediaType: models.MediaTypeImage})
	require.NoError(t, err)

	// The owner opening their own story never records a view.
	_, err = svc.ViewStory(ctx, owner.ID, owner.ID, 0)
	require.NoError(t, err)
	var viewCount int64
	db.Model(&models.StoryView{}).Count(&viewCount)
	assert.Equal(t, int64(0), viewCount)

	// Another user viewing twice records one view.
	_, err = svc.ViewStory(ctx, viewer.ID, owner.ID, 0)
	require.NoError(t, err)
	_, err = svc.ViewStory(ctx, viewer.ID, owner.ID, 0)
	require.NoError(t, err)
	db.Model(&models.StoryView{}).Count(&viewCount)
	assert.Equal(t, int64(1), viewCount)

	stories, err := svc.OwnerStories(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, story.ID, stories[0].ID)
	assert.Equal(t, 1, stories[0].ViewsCount)
}

func TestStoryService_Expiry(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewStoryService(repository.NewStoryRepository(db))
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	_, err := svc.CreateStory(ctx, CreateStoryInput{UserID: owner.ID, Media: "s.jpg", MediaType: models.MediaTypeImage})
	require.NoError(t, err)

	// Advance the clock past the TTL: the story disappears from every read.
	svc.now = func() time.Time { return time.Now().Add(models.StoryTTL + time.Minute) }

	_, err = svc.ViewStory(ctx, owner.ID, owner.ID, 0)
	assert.ErrorIs(t, err, ErrStoryIndexOutOfRange)

	bubbles, err := svc.Bubbles(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, bubbles)
}

func TestStoryService_Reactions(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewStoryService(repository.NewStoryRepository(db))
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	reactor := createUser(t, db, "reactor")

	story, err := svc.CreateStory(ctx, CreateStoryInput{UserID: owner.ID, Media: "s.jpg", MediaType: models.MediaTypeImage})
	require.NoError(t, err)

	assert.Error(t, svc.React(ctx, reactor.ID, story.ID, "👍"))
	require.NoError(t, svc.React(ctx, reactor.ID, story.ID, "❤️"))
	require.NoError(t, svc.React(ctx, reactor.ID, story.ID, "😂"))

	// Reaction list is owner-only.
	_, err = svc.Reactions(ctx, reactor.ID, story.ID)
	assert.Error(t, err)

	reactions, err := svc.Reactions(ctx, owner.ID, story.ID)
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, "😂", reactions[0].Reaction)

	// View list is owner-only too.
	_, err = svc.Views(ctx, reactor.ID, story.ID)
	assert.Error(t, err)
	_, err = svc.Views(ctx, owner.ID, story.ID)
	assert.NoError(t, err)
}
