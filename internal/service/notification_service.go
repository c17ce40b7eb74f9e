package service

import (
	"context"

	"glimpse/internal/cache"
	"glimpse/internal/middleware"
	"glimpse/internal/models"
	"glimpse/internal/observability"
	"glimpse/internal/repository"
)

type NotificationService struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// Notify records that sender performed an action affecting recipient.
// Self-actions are skipped. Insert failures are logged and swallowed:
// a lost notification must never fail the action that produced it.
func (s *NotificationService) Notify(ctx context.Context, recipientID, senderID uint, notifType models.NotificationType, postID *uint) {
	if recipientID == senderID {
		return
	}
	notification := &models.Notification{
		UserID:   recipientID,
		SenderID: senderID,
		Type:     notifType,
		PostID:   postID,
	}
	if err := s.notifRepo.Create(ctx, notification); err != nil {
		observability.NotificationInsertFailures.WithLabelValues(string(notifType)).Inc()
		middleware.Logger.ErrorContext(ctx, "notification insert failed",
			"type", string(notifType),
			"recipient_id", recipientID,
			"sender_id", senderID,
			"error", err)
		return
	}
	cache.InvalidateUnreadCount(ctx, recipientID)
}

// List returns the recipient's notifications newest first and marks them
// all read as a side effect of viewing.
func (s *NotificationService) List(ctx context.Context, userID uint) ([]*models.Notification, error) {
	notifications, err := s.notifRepo.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.notifRepo.MarkAllRead(ctx, userID); err != nil {
		return nil, err
	}
	cache.InvalidateUnreadCount(ctx, userID)
	return notifications, nil
}

// UnreadCount returns the number of unread notifications, cached briefly
// since clients poll it.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	key := cache.UnreadCountKey(userID)
	err := cache.Aside(ctx, key, &count, cache.UnreadCountTTL, func() error {
		var fetchErr error
		count, fetchErr = s.notifRepo.UnreadCount(ctx, userID)
		return fetchErr
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
