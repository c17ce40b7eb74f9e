// Package models contains data structures for the application's domain models.
package models

import "time"

// Message is one entry in the append-only direct-message log between two
// users. ID is the monotonic cursor clients poll with.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Sender     User      `gorm:"foreignKey:SenderID" json:"sender"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
