package service

import (
	"context"
	"testing"

	"glimpse/internal/models"
	"glimpse/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMessageService(db *gorm.DB) *MessageService {
	notifier := NewNotificationService(repository.NewNotificationRepository(db))
	return NewMessageService(
		repository.NewMessageRepository(db),
		repository.NewUserRepository(db),
		notifier,
	)
}

func TestMessageService_Send(t *testing.T) {
	db := setupServiceDB(t)
	svc := newMessageService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	// Whitespace-only content is rejected with no row inserted.
	_, err := svc.Send(ctx, alice.ID, bob.ID, "   \n\t ")
	assert.Error(t, err)
	var rowCount int64
	db.Model(&models.Message{}).Count(&rowCount)
	assert.Equal(t, int64(0), rowCount)

	_, err = svc.Send(ctx, alice.ID, alice.ID, "note to self")
	assert.Error(t, err)

	_, err = svc.Send(ctx, alice.ID, 9999, "hello void")
	assert.Error(t, err)

	message, err := svc.Send(ctx, alice.ID, bob.ID, "  hi bob  ")
	require.NoError(t, err)
	assert.Equal(t, "hi bob", message.Content)

	// The receiver got a message notification.
	var notifCount int64
	db.Model(&models.Notification{}).Where("user_id = ? AND type = ?", bob.ID, models.NotificationTypeMessage).Count(&notifCount)
	assert.Equal(t, int64(1), notifCount)
}

func TestMessageService_FetchCursor(t *testing.T) {
	db := setupServiceDB(t)
	svc := newMessageService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	m1, err := svc.Send(ctx, alice.ID, bob.ID, "one")
	require.NoError(t, err)
	m2, err := svc.Send(ctx, bob.ID, alice.ID, "two")
	require.NoError(t, err)

	messages, err := svc.Fetch(ctx, alice.ID, bob.ID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, m1.ID, messages[0].ID)

	// Polling from the last seen ID returns only what followed it.
	messages, err = svc.Fetch(ctx, alice.ID, bob.ID, m1.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, m2.ID, messages[0].ID)

	messages, err = svc.Fetch(ctx, alice.ID, bob.ID, m2.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}
