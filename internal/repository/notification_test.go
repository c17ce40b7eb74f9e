package repository

import (
	"context"
	"testing"

	"glimpse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_UnreadLifecycle(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	recipient := &models.User{Username: "recipient", Email: "r@example.com", Password: "x"}
	sender := &models.User{Username: "sender", Email: "s@example.com", Password: "x"}
	require.NoError(t, db.Create(recipient).Error)
	require.NoError(t, db.Create(sender).Error)

	postID := uint(7)
	require.NoError(t, repo.Create(ctx, &models.Notification{
		UserID: recipient.ID, SenderID: sender.ID,
		Type: models.NotificationTypeLike, PostID: &postID,
	}))
	require.NoError(t, repo.Create(ctx, &models.Notification{
		UserID: recipient.ID, SenderID: sender.ID,
		Type: models.NotificationTypeFollow,
	}))

	count, err := repo.UnreadCount(ctx, recipient.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	list, err := repo.ListByRecipient(ctx, recipient.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, sender.ID, list[0].Sender.ID)

	require.NoError(t, repo.MarkAllRead(ctx, recipient.ID))
	count, err = repo.UnreadCount(ctx, recipient.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Marking an already-read set again is a no-op.
	assert.NoError(t, repo.MarkAllRead(ctx, recipient.ID))
}
