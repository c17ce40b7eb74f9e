package service

import (
	"context"
	"testing"

	"glimpse/internal/database"
	"glimpse/internal/models"
	"glimpse/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func newPostService(db *gorm.DB) (*PostService, *NotificationService) {
	notifier := NewNotificationService(repository.NewNotificationRepository(db))
	svc := NewPostService(
		repository.NewPostRepository(db),
		repository.NewCommentRepository(db),
		notifier,
		nil,
	)
	return svc, notifier
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{Username: name, Email: name + "@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestPostService_CreatePost(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newPostService(db)
	ctx := context.Background()
	author := createUser(t, db, "author")

	t.Run("caption only", func(t *testing.T) {
		post, err := svc.CreatePost(ctx, CreatePostInput{UserID: author.ID, Content: "hello world"})
		require.NoError(t, err)
		assert.Equal(t, "hello world", post.Content)
		assert.Empty(t, post.Media)
	})

	t.Run("with media positions", func(t *testing.T) {
		post, err := svc.CreatePost(ctx, CreatePostInput{
			UserID: author.ID,
			Media: []CreatePostMediaInput{
				{Filename: "a.jpg", MediaType: models.MediaTypeImage},
				{Filename: "b.mp4", MediaType: models.MediaTypeVideo},
			},
		})
		require.NoError(t, err)
		require.Len(t, post.Media, 2)
		assert.Equal(t, 0, post.Media[0].Position)
		assert.Equal(t, "a.jpg", post.Media[0].Filename)
		assert.Equal(t, 1, post.Media[1].Position)
	})

	t.Run("empty post rejected", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: author.ID, Content: "   "})
		assert.Error(t, err)
	})

	t.Run("too many media files rejected", func(t *testing.T) {
		var files []CreatePostMediaInput
		for i := 0; i < 11; i++ {
			files = append(files, CreatePostMediaInput{Filename: "f.jpg", MediaType: models.MediaTypeImage})
		}
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: author.ID, Media: files})
		assert.Error(t, err)
	})
}

func TestPostService_ToggleLike(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newPostService(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	liker := createUser(t, db, "liker")

	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: author.ID, Content: "post"})
	require.NoError(t, err)

	// First toggle likes and notifies the author.
	liked, err := svc.ToggleLike(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, 1, liked.LikesCount)

	var notifCount int64
	db.Model(&models.Notification{}).Where("user_id = ? AND type = ?", author.ID, models.NotificationTypeLike).Count(&notifCount)
	assert.Equal(t, int64(1), notifCount)

	// Second toggle unlikes; the notification is never reversed.
	unliked, err := svc.ToggleLike(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, unliked.Liked)
	assert.Equal(t, 0, unliked.LikesCount)

	db.Model(&models.Notification{}).Where("user_id = ? AND type = ?", author.ID, models.NotificationTypeLike).Count(&notifCount)
	assert.Equal(t, int64(1), notifCount)
}

func TestPostService_LikeOwnPostDoesNotNotify(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newPostService(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: author.ID, Content: "post"})
	require.NoError(t, err)

	_, err = svc.ToggleLike(ctx, author.ID, post.ID)
	require.NoError(t, err)

	var notifCount int64
	db.Model(&models.Notification{}).Count(&notifCount)
	assert.Equal(t, int64(0), notifCount)
}

func TestPostService_Comments(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newPostService(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	commenter := createUser(t, db, "commenter")

	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: author.ID, Content: "post"})
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, commenter.ID, post.ID, "  ")
	assert.Error(t, err)

	comment, err := svc.AddComment(ctx, commenter.ID, post.ID, "first")
	require.NoError(t, err)
	assert.Equal(t, commenter.ID, comment.User.ID)

	_, err = svc.AddComment(ctx, author.ID, post.ID, "second")
	require.NoError(t, err)

	comments, err := svc.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)

	// Only the other user's comment notified the author.
	var notifCount int64
	db.Model(&models.Notification{}).Where("user_id = ? AND type = ?", author.ID, models.NotificationTypeComment).Count(&notifCount)
	assert.Equal(t, int64(1), notifCount)

	got, err := svc.GetPost(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CommentsCount)
}

func TestPostService_OwnerOnlyMutations(t *testing.T) {
	db := setupServiceDB(t)
	svc, _ := newPostService(db)
	ctx := context.Background()

	author := createUser(t, db, "author")
	intruder := createUser(t, db, "intruder")

	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: author.ID, Content: "original"})
	require.NoError(t, err)

	_, err = svc.UpdatePost(ctx, UpdatePostInput{UserID: intruder.ID, PostID: post.ID, Content: "hacked"})
	assert.Error(t, err)

	err = svc.DeletePost(ctx, intruder.ID, post.ID)
	assert.Error(t, err)

	updated, err := svc.UpdatePost(ctx, UpdatePostInput{UserID: author.ID, PostID: post.ID, Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	require.NoError(t, svc.DeletePost(ctx, author.ID, post.ID))
	_, err = svc.GetPost(ctx, post.ID, 0)
	assert.Error(t, err)
}
