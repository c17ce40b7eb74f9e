// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Media type values for post and story attachments.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Post represents a post in the Glimpse application.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	// Media rows are cascade-deleted with the post; file cleanup is best-effort.
	Media []PostMedia `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"media"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked bool `gorm:"->" json:"liked"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	Comments      []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostMedia is a single media attachment on a post, ordered by Position.
type PostMedia struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Filename  string    `gorm:"not null" json:"filename"`
	MediaType string    `gorm:"type:varchar(10);not null" json:"media_type"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}
