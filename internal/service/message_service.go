package service

import (
	"context"
	"strings"

	"glimpse/internal/models"
	"glimpse/internal/repository"
)

type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	notifier    *NotificationService
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	notifier *NotificationService,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// Send appends a message to the conversation and notifies the receiver.
// Whitespace-only content is rejected with no row inserted.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	if senderID == receiverID {
		return nil, models.NewValidationError("You cannot message yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, receiverID, senderID, models.NotificationTypeMessage, nil)
	return message, nil
}

// Fetch returns the conversation between userID and otherID with message
// ID strictly greater than afterID, ascending. Clients pass the highest ID
// they have seen as the cursor and poll.
func (s *MessageService) Fetch(ctx context.Context, userID, otherID uint, afterID uint) ([]*models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		return nil, err
	}
	return s.messageRepo.Between(ctx, userID, otherID, afterID)
}
