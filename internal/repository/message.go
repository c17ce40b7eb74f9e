// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"glimpse/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct message data operations.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	// Between returns messages exchanged between two users with ID greater
	// than afterID, ascending. The auto-increment ID serves as the polling
	// cursor.
	Between(ctx context.Context, userA, userB uint, afterID uint) ([]*models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) Between(ctx context.Context, userA, userB uint, afterID uint) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.WithContext(ctx).
		Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND id > ?",
			userA, userB, userB, userA, afterID).
		Order("id ASC").
		Find(&messages).Error
	return messages, err
}
