// Package models contains data structures for the application's domain models.
package models

import "time"

// NotificationType classifies what event produced a notification.
type NotificationType string

const (
	// NotificationTypeLike is emitted when another user likes a post.
	NotificationTypeLike NotificationType = "like"
	// NotificationTypeComment is emitted when another user comments on a post.
	NotificationTypeComment NotificationType = "comment"
	// NotificationTypeFollow is emitted when another user follows the recipient.
	NotificationTypeFollow NotificationType = "follow"
	// NotificationTypeMessage is emitted when another user sends a direct message.
	NotificationTypeMessage NotificationType = "message"
)

// Notification is a single feed event for a recipient. Self-actions and
// unlikes never produce one.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"` // recipient
	SenderID  uint             `gorm:"not null" json:"sender_id"`
	Sender    User             `gorm:"foreignKey:SenderID" json:"sender"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	PostID    *uint            `json:"post_id,omitempty"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
